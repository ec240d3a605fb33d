package service

import (
	"strings"

	"reviewhub/internal/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"
)

type GenreService interface {
	List(limit, offset int, search string) (*dto.PaginatedResponse, error)
	Create(req dto.CreateCategoryRequest) (*dto.GenreResponse, error)
	Delete(slug string) error
}

type genreService struct {
	genreRepo repository.GenreRepository
}

func NewGenreService(genreRepo repository.GenreRepository) GenreService {
	return &genreService{genreRepo: genreRepo}
}

func (s *genreService) List(limit, offset int, search string) (*dto.PaginatedResponse, error) {
	genres, total, err := s.genreRepo.List(limit, offset, search)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GenreResponse, 0, len(genres))
	for i := range genres {
		responses = append(responses, *dto.GenreFromModel(&genres[i]))
	}
	return dto.NewPaginatedResponse(responses, total, limit, offset), nil
}

func (s *genreService) Create(req dto.CreateCategoryRequest) (*dto.GenreResponse, error) {
	genre := &models.Genre{
		Name: strings.TrimSpace(req.Name),
		Slug: req.Slug,
	}
	if err := s.genreRepo.Create(genre); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return dto.GenreFromModel(genre), nil
}

func (s *genreService) Delete(slug string) error {
	affected, err := s.genreRepo.DeleteBySlug(slug)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrGenreNotFound
	}
	return nil
}
