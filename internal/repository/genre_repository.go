package repository

import (
	"reviewhub/internal/models"

	"gorm.io/gorm"
)

type GenreRepository interface {
	Create(genre *models.Genre) error
	FindBySlug(slug string) (*models.Genre, error)
	FindBySlugs(slugs []string) ([]models.Genre, error)
	List(limit, offset int, search string) ([]models.Genre, int64, error)
	DeleteBySlug(slug string) (int64, error)
}

type genreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) Create(genre *models.Genre) error {
	return r.db.Create(genre).Error
}

func (r *genreRepository) FindBySlug(slug string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.Where("slug = ?", slug).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *genreRepository) FindBySlugs(slugs []string) ([]models.Genre, error) {
	var genres []models.Genre
	if err := r.db.Where("slug IN ?", slugs).Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *genreRepository) List(limit, offset int, search string) ([]models.Genre, int64, error) {
	var genres []models.Genre
	var total int64

	query := r.db.Model(&models.Genre{})
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("name asc").
		Limit(limit).
		Offset(offset).
		Find(&genres).Error
	if err != nil {
		return nil, 0, err
	}

	return genres, total, nil
}

func (r *genreRepository) DeleteBySlug(slug string) (int64, error) {
	result := r.db.Where("slug = ?", slug).Delete(&models.Genre{})
	return result.RowsAffected, result.Error
}
