package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trumpetcoach/backend/internal/exercise"
	"trumpetcoach/backend/internal/models"
)

// GenerateExerciseRequest is the JSON body for POST /api/exercise/generate.
type GenerateExerciseRequest struct {
	ExerciseType models.ExerciseType `json:"exerciseType" binding:"required"`
	Key          string              `json:"key" binding:"required"`
	Tempo        float64             `json:"tempo"`
	Difficulty   int                 `json:"difficulty"`
	MidiLow      int                 `json:"midiLow" binding:"required"`
	MidiHigh     int                 `json:"midiHigh" binding:"required"`
}

// GenerateExercise handles POST /api/exercise/generate: synthesizes a
// practice Score for one of the named drill types.
func GenerateExercise(c *gin.Context) {
	var req GenerateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Tempo <= 0 {
		req.Tempo = 100
	}

	score, err := exercise.Generate(req.ExerciseType, req.Key, req.Tempo, req.Difficulty, req.MidiLow, req.MidiHigh)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, score)
}
