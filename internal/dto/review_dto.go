package dto

import (
	"time"

	"reviewhub/internal/models"
)

// CreateReviewRequest for posting a review under a title. Score bounds are
// configured server-side, so range validation happens in the service where
// the configured bounds are known.
type CreateReviewRequest struct {
	Text  string `json:"text" binding:"required,max=5000"`
	Score *int   `json:"score" binding:"required"`
}

// UpdateReviewRequest: partial review update by the author or a privileged
// role.
type UpdateReviewRequest struct {
	Text  *string `json:"text" binding:"omitempty,max=5000"`
	Score *int    `json:"score"`
}

type ReviewResponse struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromModelToReviewResponse converts a Review model to ReviewResponse DTO
func FromModelToReviewResponse(review *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:        review.ID,
		Author:    review.Author.Username,
		Text:      review.Text,
		Score:     review.Score,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}
