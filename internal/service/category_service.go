package service

import (
	"strings"

	"reviewhub/internal/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"
)

type CategoryService interface {
	List(limit, offset int, search string) (*dto.PaginatedResponse, error)
	Create(req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(slug string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) List(limit, offset int, search string) (*dto.PaginatedResponse, error) {
	categories, total, err := s.categoryRepo.List(limit, offset, search)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, *dto.CategoryFromModel(&categories[i]))
	}
	return dto.NewPaginatedResponse(responses, total, limit, offset), nil
}

func (s *categoryService) Create(req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	category := &models.Category{
		Name: strings.TrimSpace(req.Name),
		Slug: req.Slug,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return dto.CategoryFromModel(category), nil
}

// Delete removes the category; titles referencing it keep existing with a
// null category.
func (s *categoryService) Delete(slug string) error {
	affected, err := s.categoryRepo.DeleteBySlug(slug)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
