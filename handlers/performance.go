package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"trumpetcoach/backend/internal/analyzer"
	"trumpetcoach/backend/internal/models"
)

// AnalyzePerformanceRequest is the JSON body for POST /api/performance/analyze.
// PitchTolCents and TimingTolBeats are optional; a non-positive (including
// omitted) value falls back to the spec default of 50 cents / 0.3 beats.
type AnalyzePerformanceRequest struct {
	Score          models.Score         `json:"score" binding:"required"`
	Played         []models.PlayedNote  `json:"played"`
	PitchTolCents  float64              `json:"pitchTolCents"`
	TimingTolBeats float64              `json:"timingTolBeats"`
	PitchTrail     []models.PitchResult `json:"pitchTrail"`
}

// AnalyzePerformanceResponse wraps the analysis with a correlation id so a
// client can reference a specific take in later requests.
type AnalyzePerformanceResponse struct {
	TakeID   string                      `json:"takeId"`
	Analysis models.PerformanceAnalysis  `json:"analysis"`
}

// AnalyzePerformance handles POST /api/performance/analyze: matches a
// recorded take against its reference score and returns the performance
// analysis tagged with a fresh take id.
func AnalyzePerformance(c *gin.Context) {
	var req AnalyzePerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	analysis := analyzer.Analyze(req.Score, req.Played, req.PitchTolCents, req.TimingTolBeats, req.PitchTrail)
	c.JSON(http.StatusOK, AnalyzePerformanceResponse{
		TakeID:   uuid.NewString(),
		Analysis: analysis,
	})
}
