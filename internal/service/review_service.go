package service

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"reviewhub/internal/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/policy"
	"reviewhub/internal/repository"
)

// ReviewService enforces the one-review-per-author-per-title invariant and
// the object-level mutation policy. The invariant is backed by a unique
// index, so a concurrent duplicate that slips past the pre-check still
// comes back as a conflict, never as a second row.
type ReviewService interface {
	List(titleID int64, limit, offset int) (*dto.PaginatedResponse, error)
	Create(actor policy.Identity, titleID int64, req dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	Get(titleID, reviewID int64) (*dto.ReviewResponse, error)
	Update(actor policy.Identity, titleID, reviewID int64, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	Delete(actor policy.Identity, titleID, reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
	minScore   int
	maxScore   int
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository, minScore, maxScore int) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
		minScore:   minScore,
		maxScore:   maxScore,
	}
}

func (s *reviewService) validateScore(score int) error {
	if score < s.minScore || score > s.maxScore {
		return &ScoreRangeError{Min: s.minScore, Max: s.maxScore}
	}
	return nil
}

// requireTitle resolves the parent title or reports the title-specific
// not-found kind.
func (s *reviewService) requireTitle(titleID int64) error {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return nil
}

func (s *reviewService) List(titleID int64, limit, offset int) (*dto.PaginatedResponse, error) {
	if err := s.requireTitle(titleID); err != nil {
		return nil, err
	}

	reviews, total, err := s.reviewRepo.ListByTitle(titleID, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *dto.FromModelToReviewResponse(&reviews[i]))
	}
	return dto.NewPaginatedResponse(responses, total, limit, offset), nil
}

func (s *reviewService) Create(actor policy.Identity, titleID int64, req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if !policy.CanCreate(actor) {
		return nil, ErrForbidden
	}
	if err := s.requireTitle(titleID); err != nil {
		return nil, err
	}
	if err := s.validateScore(*req.Score); err != nil {
		return nil, err
	}

	if _, err := s.reviewRepo.GetByTitleAndAuthor(titleID, actor.ID); err == nil {
		return nil, ErrReviewExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &models.Review{
		AuthorID: actor.ID,
		TitleID:  titleID,
		Text:     req.Text,
		Score:    *req.Score,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		if repository.IsUniqueViolation(err) {
			// Concurrent request from the same author won the insert.
			return nil, ErrReviewExists
		}
		return nil, err
	}

	// Reload with the author association for the response.
	review, err := s.reviewRepo.GetByTitleAndAuthor(titleID, actor.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Get(titleID, reviewID int64) (*dto.ReviewResponse, error) {
	if err := s.requireTitle(titleID); err != nil {
		return nil, err
	}
	review, err := s.reviewRepo.GetByTitleAndID(titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Update(actor policy.Identity, titleID, reviewID int64, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	if err := s.requireTitle(titleID); err != nil {
		return nil, err
	}
	review, err := s.reviewRepo.GetByTitleAndID(titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	if !policy.AuthorOrPrivilegedOrReadOnly(actor, http.MethodPatch, review.AuthorID) {
		return nil, ErrForbidden
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		if err := s.validateScore(*req.Score); err != nil {
			return nil, err
		}
		review.Score = *req.Score
	}

	if err := s.reviewRepo.Save(review); err != nil {
		if repository.IsUniqueViolation(err) {
			// Constraint tripped during the update itself; surface a generic
			// client error rather than the storage failure.
			return nil, ErrConflictingUpdate
		}
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Delete(actor policy.Identity, titleID, reviewID int64) error {
	if err := s.requireTitle(titleID); err != nil {
		return err
	}
	review, err := s.reviewRepo.GetByTitleAndID(titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	if !policy.AuthorOrPrivilegedOrReadOnly(actor, http.MethodDelete, review.AuthorID) {
		return ErrForbidden
	}
	return s.reviewRepo.Delete(review)
}
