package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/forkful/recipe-catalog/backend/internal/filter"
	"github.com/forkful/recipe-catalog/backend/internal/service"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type RecipeHandler struct {
	recipes *service.RecipeService
	log     *zap.Logger
}

func NewRecipeHandler(recipes *service.RecipeService, log *zap.Logger) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, log: log}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/search", h.SearchRecipes)
	}
}

// ListRecipes handles GET /api/recipes?page=&limit=.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	page := intQuery(c, "page", defaultPage)
	limit := intQuery(c, "limit", defaultLimit)

	result, err := h.recipes.List(c.Request.Context(), page, limit)
	if err != nil {
		h.log.Error("failed to list recipes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		Page:  result.Page,
		Limit: result.Limit,
		Total: result.Total,
		Data:  result.Data,
	})
}

// SearchRecipes handles GET /api/recipes/search. All parameters are optional;
// malformed comparison syntax on rating/total_time/calories is ignored, never
// rejected.
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	f := filter.FromQuery(map[string]string{
		"title":      c.Query("title"),
		"cuisine":    c.Query("cuisine"),
		"rating":     c.Query("rating"),
		"total_time": c.Query("total_time"),
		"calories":   c.Query("calories"),
	})

	recipes, err := h.recipes.Search(c.Request.Context(), f)
	if err != nil {
		h.log.Error("failed to search recipes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search recipes"})
		return
	}

	c.JSON(http.StatusOK, SearchResponse{Data: recipes})
}

// intQuery falls back to def on absent or non-numeric input. Values below 1
// are clamped by the service, not here, so the response reflects the
// effective paging actually used.
func intQuery(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return v
}
