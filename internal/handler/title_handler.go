package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/dto"
	"reviewhub/internal/repository"
	"reviewhub/internal/service"
)

type TitleHandler struct {
	titleService service.TitleService
}

func NewTitleHandler(titleService service.TitleService) *TitleHandler {
	return &TitleHandler{titleService: titleService}
}

// RegisterRoutes registers title routes: reads are public and
// rating-augmented, writes run behind the admin gate.
func (h *TitleHandler) RegisterRoutes(router *gin.RouterGroup, adminGate ...gin.HandlerFunc) {
	titles := router.Group("/titles")
	{
		titles.GET("", h.List)
		titles.GET("/:title_id", h.Get)

		write := titles.Group("", adminGate...)
		write.POST("", h.Create)
		write.PATCH("/:title_id", h.Update)
		write.DELETE("/:title_id", h.Delete)
	}
}

func parseTitleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("title_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title id"})
		return 0, false
	}
	return id, true
}

// List returns rating-augmented titles with optional filters
// GET /api/v1/titles?category=<slug>&genre=<slug>&name=<substr>&year=<n>&limit=20&offset=0
func (h *TitleHandler) List(c *gin.Context) {
	filter := repository.TitleFilter{
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
		Name:         c.Query("name"),
	}
	if yearParam := c.Query("year"); yearParam != "" {
		year, err := strconv.Atoi(yearParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year filter"})
			return
		}
		filter.Year = &year
	}

	limit, offset := parseLimitOffset(c)
	titles, err := h.titleService.List(filter, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, titles)
}

// Get retrieves one title with its computed rating
// GET /api/v1/titles/:title_id
func (h *TitleHandler) Get(c *gin.Context) {
	titleID, ok := parseTitleID(c)
	if !ok {
		return
	}

	title, err := h.titleService.Get(titleID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, title)
}

// Create adds a title, admin only
// POST /api/v1/titles
func (h *TitleHandler) Create(c *gin.Context) {
	var req dto.CreateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, err := h.titleService.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, title)
}

// Update partially updates a title, admin only
// PATCH /api/v1/titles/:title_id
func (h *TitleHandler) Update(c *gin.Context) {
	titleID, ok := parseTitleID(c)
	if !ok {
		return
	}

	var req dto.UpdateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, err := h.titleService.Update(titleID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, title)
}

// Delete removes a title and, by cascade, its reviews and their comments,
// admin only
// DELETE /api/v1/titles/:title_id
func (h *TitleHandler) Delete(c *gin.Context) {
	titleID, ok := parseTitleID(c)
	if !ok {
		return
	}

	if err := h.titleService.Delete(titleID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
