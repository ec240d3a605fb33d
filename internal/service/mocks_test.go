package service

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"

	"reviewhub/internal/models"
	"reviewhub/internal/repository"
)

// uniqueViolation fabricates the postgres error a tripped unique constraint
// produces.
func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505"}
}

// Shared repository mocks for the service tests in this package.

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Save(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(limit, offset int, search string) ([]models.User, int64, error) {
	args := m.Called(limit, offset, search)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

type MockTitleRepository struct {
	mock.Mock
}

func (m *MockTitleRepository) Create(title *models.Title) error {
	args := m.Called(title)
	return args.Error(0)
}

func (m *MockTitleRepository) Save(title *models.Title) error {
	args := m.Called(title)
	return args.Error(0)
}

func (m *MockTitleRepository) Delete(title *models.Title) error {
	args := m.Called(title)
	return args.Error(0)
}

func (m *MockTitleRepository) ReplaceGenres(title *models.Title, genres []models.Genre) error {
	args := m.Called(title, genres)
	return args.Error(0)
}

func (m *MockTitleRepository) GetByID(id int64) (*models.Title, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Title), args.Error(1)
}

func (m *MockTitleRepository) List(filter repository.TitleFilter, limit, offset int) ([]models.Title, int64, error) {
	args := m.Called(filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Title), args.Get(1).(int64), args.Error(2)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) Save(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByTitleAndID(titleID, reviewID int64) (*models.Review, error) {
	args := m.Called(titleID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByTitleAndAuthor(titleID int64, authorID string) (*models.Review, error) {
	args := m.Called(titleID, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByTitle(titleID int64, limit, offset int) ([]models.Review, int64, error) {
	args := m.Called(titleID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) AverageScore(titleID int64) (float64, int64, error) {
	args := m.Called(titleID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) AverageScores(titleIDs []int64) (map[int64]float64, error) {
	args := m.Called(titleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]float64), args.Error(1)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Save(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByReviewAndID(reviewID, commentID int64) (*models.Comment, error) {
	args := m.Called(reviewID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByReview(reviewID int64, limit, offset int) ([]models.Comment, int64, error) {
	args := m.Called(reviewID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindBySlug(slug string) (*models.Category, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(limit, offset int, search string) ([]models.Category, int64, error) {
	args := m.Called(limit, offset, search)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryRepository) DeleteBySlug(slug string) (int64, error) {
	args := m.Called(slug)
	return args.Get(0).(int64), args.Error(1)
}

type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) Create(genre *models.Genre) error {
	args := m.Called(genre)
	return args.Error(0)
}

func (m *MockGenreRepository) FindBySlug(slug string) (*models.Genre, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

func (m *MockGenreRepository) FindBySlugs(slugs []string) ([]models.Genre, error) {
	args := m.Called(slugs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *MockGenreRepository) List(limit, offset int, search string) ([]models.Genre, int64, error) {
	args := m.Called(limit, offset, search)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Genre), args.Get(1).(int64), args.Error(2)
}

func (m *MockGenreRepository) DeleteBySlug(slug string) (int64, error) {
	args := m.Called(slug)
	return args.Get(0).(int64), args.Error(1)
}

// recordingSender captures outgoing mail instead of delivering it.
type recordingSender struct {
	sent []sentMail
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (s *recordingSender) Send(to, subject, body string) error {
	s.sent = append(s.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

// stubLimiter returns a fixed answer from Allow.
type stubLimiter struct {
	allow bool
}

func (l stubLimiter) Allow(ctx context.Context, email string) bool {
	return l.allow
}
