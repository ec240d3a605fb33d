package repository

import (
	"reviewhub/internal/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *models.Category) error
	FindBySlug(slug string) (*models.Category, error)
	List(limit, offset int, search string) ([]models.Category, int64, error)
	DeleteBySlug(slug string) (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepository) FindBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// List returns categories ordered by name. Search matches a name substring.
func (r *categoryRepository) List(limit, offset int, search string) ([]models.Category, int64, error) {
	var categories []models.Category
	var total int64

	query := r.db.Model(&models.Category{})
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
		Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}

// DeleteBySlug removes the category; titles keep existing with a null
// category via the SET NULL constraint. Returns the rows affected.
func (r *categoryRepository) DeleteBySlug(slug string) (int64, error) {
	result := r.db.Where("slug = ?", slug).Delete(&models.Category{})
	return result.RowsAffected, result.Error
}
