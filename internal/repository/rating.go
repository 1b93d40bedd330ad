package repository

import (
	"context"
	"errors"

	"skillswap/internal/cache"
	"skillswap/internal/models"

	"gorm.io/gorm"
)

// RatingSummary is the aggregated rating figure for a user.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// RatingRepository defines persistence operations for swap ratings.
type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	GetBySwapAndRater(ctx context.Context, swapID, raterID uint) (*models.Rating, error)
	ListBySwap(ctx context.Context, swapID uint) ([]models.Rating, error)
	ListForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Rating, int64, error)
	ListAll(ctx context.Context) ([]models.Rating, error)
	SummaryForUser(ctx context.Context, userID uint) (*RatingSummary, error)
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository returns a new RatingRepository implementation.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError("You have already rated this swap")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUserRating(ctx, rating.RatedID)
	return nil
}

func (r *ratingRepository) GetBySwapAndRater(ctx context.Context, swapID, raterID uint) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).
		Where("swap_request_id = ? AND rater_id = ?", swapID, raterID).
		First(&rating).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &rating, nil
}

func (r *ratingRepository) ListBySwap(ctx context.Context, swapID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.WithContext(ctx).
		Where("swap_request_id = ?", swapID).
		Find(&ratings).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ratings, nil
}

func (r *ratingRepository) ListForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Rating, int64, error) {
	var ratings []models.Rating
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Rating{}).Where("rated_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	if err := q.Preload("Rater").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ratings).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return ratings, total, nil
}

func (r *ratingRepository) ListAll(ctx context.Context) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.WithContext(ctx).
		Preload("Rater").
		Preload("Rated").
		Order("id ASC").
		Find(&ratings).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ratings, nil
}

// SummaryForUser aggregates received ratings on demand. The figure is
// cached and invalidated whenever a new rating lands for the user.
func (r *ratingRepository) SummaryForUser(ctx context.Context, userID uint) (*RatingSummary, error) {
	var summary RatingSummary
	key := cache.UserRatingKey(userID)

	err := cache.CacheAside(ctx, key, &summary, cache.RatingTTL, func() error {
		row := struct {
			Average float64
			Count   int64
		}{}
		if err := r.db.WithContext(ctx).Model(&models.Rating{}).
			Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
			Where("rated_id = ?", userID).
			Scan(&row).Error; err != nil {
			return models.NewInternalError(err)
		}
		summary.Average = row.Average
		summary.Count = row.Count
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &summary, nil
}
