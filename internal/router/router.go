package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/forkful/recipe-catalog/backend/internal/api"
	"github.com/forkful/recipe-catalog/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(recipeHandler *api.RecipeHandler, corsOrigin string) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(corsOrigin))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api")
	recipeHandler.RegisterRoutes(apiGroup)

	return router
}
