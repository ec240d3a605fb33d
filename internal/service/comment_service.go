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

// CommentService mirrors the review rules minus uniqueness and scoring:
// any number of comments per (author, review).
type CommentService interface {
	List(titleID, reviewID int64, limit, offset int) (*dto.PaginatedResponse, error)
	Create(actor policy.Identity, titleID, reviewID int64, text string) (*dto.CommentResponse, error)
	Get(titleID, reviewID, commentID int64) (*dto.CommentResponse, error)
	Update(actor policy.Identity, titleID, reviewID, commentID int64, text string) (*dto.CommentResponse, error)
	Delete(actor policy.Identity, titleID, reviewID, commentID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
	titleRepo   repository.TitleRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	reviewRepo repository.ReviewRepository,
	titleRepo repository.TitleRepository,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
		titleRepo:   titleRepo,
	}
}

// requireReview resolves the parent chain, keeping the title and review
// not-found kinds distinct.
func (s *commentService) requireReview(titleID, reviewID int64) (*models.Review, error) {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}
	review, err := s.reviewRepo.GetByTitleAndID(titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

func (s *commentService) List(titleID, reviewID int64, limit, offset int) (*dto.PaginatedResponse, error) {
	review, err := s.requireReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comments, total, err := s.commentRepo.ListByReview(review.ID, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *dto.FromModelToCommentResponse(&comments[i]))
	}
	return dto.NewPaginatedResponse(responses, total, limit, offset), nil
}

func (s *commentService) Create(actor policy.Identity, titleID, reviewID int64, text string) (*dto.CommentResponse, error) {
	if !policy.CanCreate(actor) {
		return nil, ErrForbidden
	}
	review, err := s.requireReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		AuthorID: actor.ID,
		ReviewID: review.ID,
		Text:     text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	// Reload with the author association for the response.
	comment, err = s.commentRepo.GetByReviewAndID(review.ID, comment.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Get(titleID, reviewID, commentID int64) (*dto.CommentResponse, error) {
	review, err := s.requireReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByReviewAndID(review.ID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Update(actor policy.Identity, titleID, reviewID, commentID int64, text string) (*dto.CommentResponse, error) {
	review, err := s.requireReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByReviewAndID(review.ID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	if !policy.AuthorOrPrivilegedOrReadOnly(actor, http.MethodPatch, comment.AuthorID) {
		return nil, ErrForbidden
	}

	comment.Text = text
	if err := s.commentRepo.Save(comment); err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Delete(actor policy.Identity, titleID, reviewID, commentID int64) error {
	review, err := s.requireReview(titleID, reviewID)
	if err != nil {
		return err
	}
	comment, err := s.commentRepo.GetByReviewAndID(review.ID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if !policy.AuthorOrPrivilegedOrReadOnly(actor, http.MethodDelete, comment.AuthorID) {
		return ErrForbidden
	}
	return s.commentRepo.Delete(comment)
}
