package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trumpetcoach/backend/internal/midiexport"
	"trumpetcoach/backend/internal/musicxml"
)

// ParseScoreRequest is the JSON body for POST /api/score/parse.
type ParseScoreRequest struct {
	MusicXML string `json:"musicXml" binding:"required"`
}

// ParseScore handles POST /api/score/parse: stream-parses a MusicXML
// document and returns the resulting Score.
func ParseScore(c *gin.Context) {
	var req ParseScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	score, err := musicxml.Parse(req.MusicXML)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, score)
}

// ScoreMidiRequest is the JSON body for POST /api/score/midi.
type ScoreMidiRequest struct {
	MusicXML string `json:"musicXml" binding:"required"`
}

// ScoreMidi handles POST /api/score/midi: parses MusicXML and streams back
// a Standard MIDI File rendering of the written pitches.
func ScoreMidi(c *gin.Context) {
	var req ScoreMidiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	score, err := musicxml.Parse(req.MusicXML)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	midiBytes, err := midiexport.Export(score)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "audio/midi", midiBytes)
}
