package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/dto"
	"reviewhub/internal/middleware"
	"reviewhub/internal/service"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterRoutes registers the comment routes nested under a review.
func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup, authRequired gin.HandlerFunc) {
	comments := router.Group("/titles/:title_id/reviews/:review_id/comments")
	{
		comments.GET("", h.List)
		comments.GET("/:comment_id", h.Get)

		comments.POST("", authRequired, h.Create)
		comments.PATCH("/:comment_id", authRequired, h.Update)
		comments.DELETE("/:comment_id", authRequired, h.Delete)
	}
}

func parseCommentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("comment_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return 0, false
	}
	return id, true
}

// parseCommentPath pulls the full title/review parent chain off the path.
func parseCommentPath(c *gin.Context) (titleID, reviewID int64, ok bool) {
	titleID, ok = parseTitleID(c)
	if !ok {
		return 0, 0, false
	}
	reviewID, ok = parseReviewID(c)
	if !ok {
		return 0, 0, false
	}
	return titleID, reviewID, true
}

// List returns all comments under a review
// GET /api/v1/titles/:title_id/reviews/:review_id/comments?limit=20&offset=0
func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, ok := parseCommentPath(c)
	if !ok {
		return
	}

	limit, offset := parseLimitOffset(c)
	comments, err := h.commentService.List(titleID, reviewID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// Create posts a comment under a review; no per-author limit
// POST /api/v1/titles/:title_id/reviews/:review_id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	titleID, reviewID, ok := parseCommentPath(c)
	if !ok {
		return
	}

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.Create(middleware.GetIdentity(c), titleID, reviewID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Get retrieves one comment
// GET /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Get(c *gin.Context) {
	titleID, reviewID, ok := parseCommentPath(c)
	if !ok {
		return
	}
	commentID, ok := parseCommentID(c)
	if !ok {
		return
	}

	comment, err := h.commentService.Get(titleID, reviewID, commentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Update edits a comment (author, moderator or admin)
// PATCH /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Update(c *gin.Context) {
	titleID, reviewID, ok := parseCommentPath(c)
	if !ok {
		return
	}
	commentID, ok := parseCommentID(c)
	if !ok {
		return
	}

	var req dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.Update(middleware.GetIdentity(c), titleID, reviewID, commentID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Delete removes a comment (author, moderator or admin)
// DELETE /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) {
	titleID, reviewID, ok := parseCommentPath(c)
	if !ok {
		return
	}
	commentID, ok := parseCommentID(c)
	if !ok {
		return
	}

	if err := h.commentService.Delete(middleware.GetIdentity(c), titleID, reviewID, commentID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
