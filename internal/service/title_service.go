package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"reviewhub/internal/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"
)

type TitleService interface {
	List(filter repository.TitleFilter, limit, offset int) (*dto.PaginatedResponse, error)
	Get(titleID int64) (*dto.TitleResponse, error)
	Create(req dto.CreateTitleRequest) (*dto.TitleResponse, error)
	Update(titleID int64, req dto.UpdateTitleRequest) (*dto.TitleResponse, error)
	Delete(titleID int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	reviewRepo   repository.ReviewRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	reviewRepo repository.ReviewRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		reviewRepo:   reviewRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
	}
}

// roundRating converts a mean score to the integer rating exposed on read
// paths. Ties round half to even: a 1.5 mean reads as 2, a 2.5 mean as 2.
func roundRating(average float64) int {
	return int(math.RoundToEven(average))
}

func validateYear(year int) error {
	if year < 0 {
		return fmt.Errorf("%w: %d is negative", ErrBadYear, year)
	}
	if current := time.Now().Year(); year > current {
		return fmt.Errorf("%w: %d is beyond %d", ErrBadYear, year, current)
	}
	return nil
}

// List returns rating-augmented titles. The ratings for the whole page come
// from one grouped aggregate query, recomputed per read and never stored.
func (s *titleService) List(filter repository.TitleFilter, limit, offset int) (*dto.PaginatedResponse, error) {
	titles, total, err := s.titleRepo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(titles))
	for i := range titles {
		ids = append(ids, titles[i].ID)
	}
	averages, err := s.reviewRepo.AverageScores(ids)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		var rating *int
		if avg, ok := averages[titles[i].ID]; ok {
			rounded := roundRating(avg)
			rating = &rounded
		}
		responses = append(responses, *dto.FromModelToTitleResponse(&titles[i], rating))
	}
	return dto.NewPaginatedResponse(responses, total, limit, offset), nil
}

func (s *titleService) Get(titleID int64) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(titleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	avg, count, err := s.reviewRepo.AverageScore(titleID)
	if err != nil {
		return nil, err
	}
	var rating *int
	if count > 0 {
		rounded := roundRating(avg)
		rating = &rounded
	}
	return dto.FromModelToTitleResponse(title, rating), nil
}

func (s *titleService) Create(req dto.CreateTitleRequest) (*dto.TitleResponse, error) {
	if err := validateYear(*req.Year); err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        req.Name,
		Year:        *req.Year,
		Description: req.Description,
	}

	if req.Category != "" {
		category, err := s.categoryRepo.FindBySlug(req.Category)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnknownCategory
			}
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	if len(req.Genre) > 0 {
		genres, err := s.resolveGenres(req.Genre)
		if err != nil {
			return nil, err
		}
		title.Genres = genres
	}

	if err := s.titleRepo.Create(title); err != nil {
		return nil, err
	}
	// A new title has no reviews, so its rating is null.
	return dto.FromModelToTitleResponse(title, nil), nil
}

func (s *titleService) Update(titleID int64, req dto.UpdateTitleRequest) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(titleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if err := validateYear(*req.Year); err != nil {
			return nil, err
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = *req.Description
	}
	if req.Category != nil {
		if *req.Category == "" {
			title.CategoryID = nil
			title.Category = nil
		} else {
			category, err := s.categoryRepo.FindBySlug(*req.Category)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrUnknownCategory
				}
				return nil, err
			}
			title.CategoryID = &category.ID
			title.Category = category
		}
	}

	if err := s.titleRepo.Save(title); err != nil {
		return nil, err
	}

	if req.Genre != nil {
		genres, err := s.resolveGenres(*req.Genre)
		if err != nil {
			return nil, err
		}
		if err := s.titleRepo.ReplaceGenres(title, genres); err != nil {
			return nil, err
		}
		title.Genres = genres
	}

	return s.Get(titleID)
}

// Delete removes the title; its reviews and their comments cascade away at
// the schema level.
func (s *titleService) Delete(titleID int64) error {
	title, err := s.titleRepo.GetByID(titleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return s.titleRepo.Delete(title)
}

func (s *titleService) resolveGenres(slugs []string) ([]models.Genre, error) {
	genres, err := s.genreRepo.FindBySlugs(slugs)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(slugs) {
		return nil, ErrUnknownGenre
	}
	return genres, nil
}
