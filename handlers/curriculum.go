package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"trumpetcoach/backend/internal/curriculum"
)

// GetCurriculum handles GET /api/curriculum: returns every stage.
func GetCurriculum(c *gin.Context) {
	c.JSON(http.StatusOK, curriculum.Load())
}

// GetCurriculumStage handles GET /api/curriculum/:stage: returns a single
// stage by its number.
func GetCurriculumStage(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("stage"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stage must be a number"})
		return
	}
	stage, ok := curriculum.Stage(n)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such stage"})
		return
	}
	c.JSON(http.StatusOK, stage)
}
