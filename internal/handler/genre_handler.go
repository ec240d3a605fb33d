package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/dto"
	"reviewhub/internal/service"
)

type GenreHandler struct {
	genreService service.GenreService
}

func NewGenreHandler(genreService service.GenreService) *GenreHandler {
	return &GenreHandler{genreService: genreService}
}

// RegisterRoutes registers genre routes: reads are public, writes run
// behind the admin gate.
func (h *GenreHandler) RegisterRoutes(router *gin.RouterGroup, adminGate ...gin.HandlerFunc) {
	genres := router.Group("/genres")
	{
		genres.GET("", h.List)

		write := genres.Group("", adminGate...)
		write.POST("", h.Create)
		write.DELETE("/:slug", h.Delete)
	}
}

// List returns genres ordered by name
// GET /api/v1/genres?limit=20&offset=0&search=<name>
func (h *GenreHandler) List(c *gin.Context) {
	limit, offset := parseLimitOffset(c)
	genres, err := h.genreService.List(limit, offset, c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, genres)
}

// Create adds a genre, admin only
// POST /api/v1/genres
func (h *GenreHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre, err := h.genreService.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, genre)
}

// Delete removes a genre by slug, admin only
// DELETE /api/v1/genres/:slug
func (h *GenreHandler) Delete(c *gin.Context) {
	if err := h.genreService.Delete(c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
