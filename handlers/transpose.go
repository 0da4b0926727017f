package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trumpetcoach/backend/internal/transpose"
)

// TransposeRequest is the JSON body for POST /api/transpose.
type TransposeRequest struct {
	MidiConcert []int `json:"midiConcert" binding:"required"`
}

// TransposeResponse reports the written-pitch equivalent of each concert
// pitch, for a B-flat trumpet.
type TransposeResponse struct {
	MidiWritten []int `json:"midiWritten"`
}

// Transpose handles POST /api/transpose: converts concert pitch MIDI
// numbers to written pitch for a B-flat trumpet.
func Transpose(c *gin.Context) {
	var req TransposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	written := make([]int, len(req.MidiConcert))
	for i, m := range req.MidiConcert {
		written[i] = transpose.ConcertToWritten(m, transpose.BbTrumpet)
	}
	c.JSON(http.StatusOK, TransposeResponse{MidiWritten: written})
}
