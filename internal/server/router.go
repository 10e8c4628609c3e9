package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/soundgrid/sequencer-backend/internal/graph"
)

type RouterConfig struct {
	GraphQLHandler *graph.Handler

	// SampleDir is served under /samples so stored sample URLs resolve.
	SampleDir      string
	AllowedOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", HealthCheck)
	router.POST("/graphql", cfg.GraphQLHandler.ServeGraphQL)
	router.Static("/samples", cfg.SampleDir)

	return router
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
