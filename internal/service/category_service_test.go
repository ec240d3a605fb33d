package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reviewhub/internal/dto"
	"reviewhub/internal/models"
)

func TestCategoryCreate_TrimsName(t *testing.T) {
	mockCategoryRepo := new(MockCategoryRepository)
	svc := NewCategoryService(mockCategoryRepo)

	mockCategoryRepo.On("Create", mock.MatchedBy(func(c *models.Category) bool {
		return c.Name == "Movies" && c.Slug == "movies"
	})).Return(nil)

	resp, err := svc.Create(dto.CreateCategoryRequest{Name: "  Movies  ", Slug: "movies"})

	assert.NoError(t, err)
	assert.Equal(t, "Movies", resp.Name)
	mockCategoryRepo.AssertExpectations(t)
}

func TestCategoryCreate_DuplicateSlug(t *testing.T) {
	mockCategoryRepo := new(MockCategoryRepository)
	svc := NewCategoryService(mockCategoryRepo)

	mockCategoryRepo.On("Create", mock.AnythingOfType("*models.Category")).Return(uniqueViolation())

	resp, err := svc.Create(dto.CreateCategoryRequest{Name: "Movies", Slug: "movies"})

	assert.ErrorIs(t, err, ErrSlugTaken)
	assert.Nil(t, resp)
}

func TestCategoryDelete_NotFound(t *testing.T) {
	mockCategoryRepo := new(MockCategoryRepository)
	svc := NewCategoryService(mockCategoryRepo)

	mockCategoryRepo.On("DeleteBySlug", "ghost").Return(int64(0), nil)

	err := svc.Delete("ghost")

	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryDelete_Success(t *testing.T) {
	mockCategoryRepo := new(MockCategoryRepository)
	svc := NewCategoryService(mockCategoryRepo)

	mockCategoryRepo.On("DeleteBySlug", "movies").Return(int64(1), nil)

	err := svc.Delete("movies")

	assert.NoError(t, err)
}

func TestGenreCreate_DuplicateSlug(t *testing.T) {
	mockGenreRepo := new(MockGenreRepository)
	svc := NewGenreService(mockGenreRepo)

	mockGenreRepo.On("Create", mock.AnythingOfType("*models.Genre")).Return(uniqueViolation())

	resp, err := svc.Create(dto.CreateCategoryRequest{Name: "Drama", Slug: "drama"})

	assert.ErrorIs(t, err, ErrSlugTaken)
	assert.Nil(t, resp)
}

func TestGenreDelete_NotFound(t *testing.T) {
	mockGenreRepo := new(MockGenreRepository)
	svc := NewGenreService(mockGenreRepo)

	mockGenreRepo.On("DeleteBySlug", "ghost").Return(int64(0), nil)

	err := svc.Delete("ghost")

	assert.ErrorIs(t, err, ErrGenreNotFound)
}

func TestGenreList_PaginatedEnvelope(t *testing.T) {
	mockGenreRepo := new(MockGenreRepository)
	svc := NewGenreService(mockGenreRepo)

	genres := []models.Genre{{Name: "Drama", Slug: "drama"}}
	mockGenreRepo.On("List", 20, 0, "dra").Return(genres, int64(1), nil)

	resp, err := svc.List(20, 0, "dra")

	assert.NoError(t, err)
	assert.Equal(t, int64(1), resp.Count)
	results := resp.Results.([]dto.GenreResponse)
	assert.Equal(t, "drama", results[0].Slug)
}
