package dto

import "reviewhub/internal/models"

// CreateCategoryRequest doubles for genres; both are slug-identified
// reference entities with a display name.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50"`
}

type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func CategoryFromModel(c *models.Category) *CategoryResponse {
	return &CategoryResponse{
		Name: c.Name,
		Slug: c.Slug,
	}
}

type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func GenreFromModel(g *models.Genre) *GenreResponse {
	return &GenreResponse{
		Name: g.Name,
		Slug: g.Slug,
	}
}
