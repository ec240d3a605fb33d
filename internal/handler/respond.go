package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/service"
)

// respondError is the single place domain error kinds become HTTP statuses.
// Validation and conflict errors go out with a field-scoped message;
// authorization failures stay generic so a denied request leaks nothing
// about whether the object exists; anything unrecognized is a 500 with no
// internals attached.
func respondError(c *gin.Context, err error) {
	var scoreErr *service.ScoreRangeError
	if errors.As(err, &scoreErr) {
		fieldError(c, http.StatusBadRequest, "score", scoreErr.Error())
		return
	}

	switch {
	case errors.Is(err, service.ErrTitleNotFound),
		errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrGenreNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrReviewExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrBadCode):
		fieldError(c, http.StatusBadRequest, "confirmation_code", err.Error())
	case errors.Is(err, service.ErrUsernameEmailMismatch),
		errors.Is(err, service.ErrReservedUsername),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrUsernameTaken):
		fieldError(c, http.StatusBadRequest, "username", err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		fieldError(c, http.StatusBadRequest, "email", err.Error())
	case errors.Is(err, service.ErrSlugTaken):
		fieldError(c, http.StatusBadRequest, "slug", err.Error())
	case errors.Is(err, service.ErrUnknownCategory):
		fieldError(c, http.StatusBadRequest, "category", err.Error())
	case errors.Is(err, service.ErrUnknownGenre):
		fieldError(c, http.StatusBadRequest, "genre", err.Error())
	case errors.Is(err, service.ErrBadYear):
		fieldError(c, http.StatusBadRequest, "year", err.Error())

	case errors.Is(err, service.ErrConflictingUpdate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": service.ErrForbidden.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func fieldError(c *gin.Context, status int, field, message string) {
	c.JSON(status, gin.H{"field": field, "error": message})
}

const (
	defaultLimit = 20
	maxLimit     = 100
)

// parseLimitOffset reads limit/offset pagination params with defaults.
func parseLimitOffset(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
