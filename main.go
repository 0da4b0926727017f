package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"trumpetcoach/backend/handlers"
)

func main() {
	r := gin.Default()

	// CORS — origins configurable via CORS_ORIGINS env var (comma-separated).
	// Defaults to * for local development; set a specific origin in production.
	originsEnv := os.Getenv("CORS_ORIGINS")
	if originsEnv == "" {
		originsEnv = "*"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins: strings.Split(originsEnv, ","),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/score/parse", handlers.ParseScore)
		api.POST("/score/midi", handlers.ScoreMidi)
		api.POST("/pitch/detect", handlers.DetectPitch)
		api.POST("/performance/analyze", handlers.AnalyzePerformance)
		api.POST("/exercise/generate", handlers.GenerateExercise)
		api.GET("/curriculum", handlers.GetCurriculum)
		api.GET("/curriculum/:stage", handlers.GetCurriculumStage)
		api.POST("/transpose", handlers.Transpose)
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatalf("server failed to start: %v", err)
	}
}
