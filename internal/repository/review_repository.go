package repository

import (
	"reviewhub/internal/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *models.Review) error
	Save(review *models.Review) error
	Delete(review *models.Review) error
	GetByTitleAndID(titleID, reviewID int64) (*models.Review, error)
	GetByTitleAndAuthor(titleID int64, authorID string) (*models.Review, error)
	ListByTitle(titleID int64, limit, offset int) ([]models.Review, int64, error)
	AverageScore(titleID int64) (float64, int64, error)
	AverageScores(titleIDs []int64) (map[int64]float64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *reviewRepository) Save(review *models.Review) error {
	return r.db.Omit("Author", "Title").Save(review).Error
}

func (r *reviewRepository) Delete(review *models.Review) error {
	return r.db.Delete(review).Error
}

// GetByTitleAndID scopes the lookup to the parent title so that a review id
// under the wrong title reads as review-not-found, not as someone else's
// review.
func (r *reviewRepository) GetByTitleAndID(titleID, reviewID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("id = ? AND title_id = ?", reviewID, titleID).
		Preload("Author").
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) GetByTitleAndAuthor(titleID int64, authorID string) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("title_id = ? AND author_id = ?", titleID, authorID).
		Preload("Author").
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByTitle(titleID int64, limit, offset int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	if err := r.db.Model(&models.Review{}).Where("title_id = ?", titleID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("title_id = ?", titleID).
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// AverageScore runs the aggregate-mean pass for one title. The count lets
// callers tell "no reviews" apart from a genuine zero average.
func (r *reviewRepository) AverageScore(titleID int64) (float64, int64, error) {
	var agg struct {
		Average float64
		Count   int64
	}

	err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(score), 0) as average, COUNT(*) as count").
		Where("title_id = ?", titleID).
		Scan(&agg).Error
	if err != nil {
		return 0, 0, err
	}

	return agg.Average, agg.Count, nil
}

// AverageScores is the grouped form used by title listings: one query for
// the whole page instead of an aggregate per row. Titles without reviews
// are absent from the result.
func (r *reviewRepository) AverageScores(titleIDs []int64) (map[int64]float64, error) {
	if len(titleIDs) == 0 {
		return map[int64]float64{}, nil
	}

	var rows []struct {
		TitleID int64
		Average float64
	}

	err := r.db.Model(&models.Review{}).
		Select("title_id, AVG(score) as average").
		Where("title_id IN ?", titleIDs).
		Group("title_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	averages := make(map[int64]float64, len(rows))
	for _, row := range rows {
		averages[row.TitleID] = row.Average
	}
	return averages, nil
}
