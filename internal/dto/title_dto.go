package dto

import "reviewhub/internal/models"

// CreateTitleRequest: admin-only title creation. Category and genres are
// referenced by slug. Year is a pointer so that a missing field can be told
// apart from year zero.
type CreateTitleRequest struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Year        *int     `json:"year" binding:"required"`
	Description string   `json:"description" binding:"max=1000"`
	Category    string   `json:"category"`
	Genre       []string `json:"genre"`
}

// UpdateTitleRequest: partial title update; nil fields stay untouched.
type UpdateTitleRequest struct {
	Name        *string   `json:"name" binding:"omitempty,max=256"`
	Year        *int      `json:"year"`
	Description *string   `json:"description" binding:"omitempty,max=1000"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

// TitleResponse carries the derived rating on every read path: the rounded
// mean of review scores, or null when the title has no reviews yet.
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *int              `json:"rating"`
	Description string            `json:"description,omitempty"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

// FromModelToTitleResponse converts a Title model plus its computed rating
// to a TitleResponse DTO.
func FromModelToTitleResponse(title *models.Title, rating *int) *TitleResponse {
	genres := make([]GenreResponse, 0, len(title.Genres))
	for i := range title.Genres {
		genres = append(genres, *GenreFromModel(&title.Genres[i]))
	}

	var category *CategoryResponse
	if title.Category != nil {
		category = CategoryFromModel(title.Category)
	}

	return &TitleResponse{
		ID:          title.ID,
		Name:        title.Name,
		Year:        title.Year,
		Rating:      rating,
		Description: title.Description,
		Genre:       genres,
		Category:    category,
	}
}
