package service

import (
	"errors"
	"fmt"
)

// Domain error kinds. Handlers map these to HTTP statuses with errors.Is /
// errors.As; nothing below the handler layer knows about status codes.
var (
	// Not-found kinds. Title and review not-found are distinct on purpose:
	// a review id under the wrong title must not read as a missing title.
	ErrTitleNotFound    = errors.New("title not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")

	// Conflict: the (author, title) pair already has a review.
	ErrReviewExists = errors.New("you already reviewed this title")

	// Validation kinds, surfaced with field-scoped messages.
	ErrBadCode               = errors.New("invalid confirmation code")
	ErrUsernameEmailMismatch = errors.New("username and email do not match an existing registration")
	ErrReservedUsername      = errors.New("username 'me' is reserved")
	ErrInvalidUsername       = errors.New("username may contain only letters, digits and @/./+/-/_")
	ErrUsernameTaken         = errors.New("username already in use")
	ErrEmailTaken            = errors.New("email already in use")
	ErrSlugTaken             = errors.New("slug already in use")
	ErrUnknownCategory       = errors.New("unknown category slug")
	ErrUnknownGenre          = errors.New("unknown genre slug")
	ErrBadYear               = errors.New("invalid year")

	// Authorization denial carries no detail about the target object.
	ErrForbidden = errors.New("you do not have permission to perform this action")

	// A storage constraint tripped during an update, outside the explicit
	// pre-check path. Downgraded to a generic client error.
	ErrConflictingUpdate = errors.New("update conflicts with existing data")
)

// ScoreRangeError reports a score outside the configured bounds. It is a
// type rather than a sentinel so the message can name the allowed range.
type ScoreRangeError struct {
	Min int
	Max int
}

func (e *ScoreRangeError) Error() string {
	return fmt.Sprintf("score must be between %d and %d", e.Min, e.Max)
}
