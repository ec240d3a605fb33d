package repository

import (
	"reviewhub/internal/models"

	"gorm.io/gorm"
)

// TitleFilter narrows title listings. Zero values mean "no filter".
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string // substring match
	Year         *int
}

type TitleRepository interface {
	Create(title *models.Title) error
	Save(title *models.Title) error
	Delete(title *models.Title) error
	ReplaceGenres(title *models.Title, genres []models.Genre) error
	GetByID(id int64) (*models.Title, error)
	List(filter TitleFilter, limit, offset int) ([]models.Title, int64, error)
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) Create(title *models.Title) error {
	return r.db.Create(title).Error
}

func (r *titleRepository) Save(title *models.Title) error {
	return r.db.Omit("Genres", "Category").Save(title).Error
}

// Delete removes the title; reviews cascade at the schema level and their
// comments cascade in turn.
func (r *titleRepository) Delete(title *models.Title) error {
	return r.db.Select("Genres").Delete(title).Error
}

func (r *titleRepository) ReplaceGenres(title *models.Title, genres []models.Genre) error {
	return r.db.Model(title).Association("Genres").Replace(genres)
}

func (r *titleRepository) GetByID(id int64) (*models.Title, error) {
	var title models.Title
	err := r.db.
		Preload("Category").
		Preload("Genres").
		First(&title, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &title, nil
}

// List returns titles ordered by name with limit/offset pagination,
// filtered by category slug, genre slug, name substring and year.
func (r *titleRepository) List(filter TitleFilter, limit, offset int) ([]models.Title, int64, error) {
	var titles []models.Title
	var total int64

	query := r.db.Model(&models.Title{})
	if filter.CategorySlug != "" {
		query = query.
			Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		query = query.
			Joins("JOIN title_genres tg ON tg.title_id = titles.id").
			Joins("JOIN genres ON genres.id = tg.genre_id").
			Where("genres.slug = ?", filter.GenreSlug)
	}
	if filter.Name != "" {
		query = query.Where("titles.name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Year != nil {
		query = query.Where("titles.year = ?", *filter.Year)
	}

	if err := query.Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Category").
		Preload("Genres").
		Distinct().
		Order("titles.name asc").
		Limit(limit).
		Offset(offset).
		Find(&titles).Error
	if err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}
