package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/dto"
	"reviewhub/internal/service"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// RegisterRoutes registers category routes: reads are public, writes run
// behind the admin gate (AdminOrReadOnly).
func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup, adminGate ...gin.HandlerFunc) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.List)

		write := categories.Group("", adminGate...)
		write.POST("", h.Create)
		write.DELETE("/:slug", h.Delete)
	}
}

// List returns categories ordered by name
// GET /api/v1/categories?limit=20&offset=0&search=<name>
func (h *CategoryHandler) List(c *gin.Context) {
	limit, offset := parseLimitOffset(c)
	categories, err := h.categoryService.List(limit, offset, c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Create adds a category, admin only
// POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// Delete removes a category by slug, admin only. Titles in the category
// survive with a null category.
// DELETE /api/v1/categories/:slug
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryService.Delete(c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
