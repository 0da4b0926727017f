package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trumpetcoach/backend/internal/pitch"
)

// DetectPitchRequest is the JSON body for POST /api/pitch/detect.
type DetectPitchRequest struct {
	Samples    []float64 `json:"samples" binding:"required"`
	SampleRate float64   `json:"sampleRate" binding:"required"`
}

// DetectPitch handles POST /api/pitch/detect: runs YIN over one window of
// microphone samples and returns the estimated fundamental.
func DetectPitch(c *gin.Context) {
	var req DetectPitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := pitch.Detect(req.Samples, req.SampleRate)
	c.JSON(http.StatusOK, result)
}
