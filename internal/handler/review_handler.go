package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/dto"
	"reviewhub/internal/middleware"
	"reviewhub/internal/service"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// RegisterRoutes registers the review routes nested under a title. Reads
// are public; creation requires authentication; update/delete go through
// the object-level author-or-privileged policy inside the service.
func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup, authRequired gin.HandlerFunc) {
	reviews := router.Group("/titles/:title_id/reviews")
	{
		reviews.GET("", h.List)
		reviews.GET("/:review_id", h.Get)

		reviews.POST("", authRequired, h.Create)
		reviews.PATCH("/:review_id", authRequired, h.Update)
		reviews.DELETE("/:review_id", authRequired, h.Delete)
	}
}

func parseReviewID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return 0, false
	}
	return id, true
}

// List returns all reviews for a title
// GET /api/v1/titles/:title_id/reviews?limit=20&offset=0
func (h *ReviewHandler) List(c *gin.Context) {
	titleID, ok := parseTitleID(c)
	if !ok {
		return
	}

	limit, offset := parseLimitOffset(c)
	reviews, err := h.reviewService.List(titleID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// Create posts the caller's review for a title; a second review for the
// same title is a conflict
// POST /api/v1/titles/:title_id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	titleID, ok := parseTitleID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.Create(middleware.GetIdentity(c), titleID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// Get retrieves one review under a title
// GET /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Get(c *gin.Context) {
	titleID, ok := parseTitleID(c)
	if !ok {
		return
	}
	reviewID, ok := parseReviewID(c)
	if !ok {
		return
	}

	review, err := h.reviewService.Get(titleID, reviewID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// Update partially updates a review (author, moderator or admin)
// PATCH /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Update(c *gin.Context) {
	titleID, ok := parseTitleID(c)
	if !ok {
		return
	}
	reviewID, ok := parseReviewID(c)
	if !ok {
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.Update(middleware.GetIdentity(c), titleID, reviewID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// Delete removes a review (author, moderator or admin); its comments
// cascade away
// DELETE /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Delete(c *gin.Context) {
	titleID, ok := parseTitleID(c)
	if !ok {
		return
	}
	reviewID, ok := parseReviewID(c)
	if !ok {
		return
	}

	if err := h.reviewService.Delete(middleware.GetIdentity(c), titleID, reviewID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
