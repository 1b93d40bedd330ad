package repository

import (
	"context"
	"errors"

	"skillswap/internal/cache"
	"skillswap/internal/models"

	"gorm.io/gorm"
)

// AnnouncementRepository defines persistence operations for announcements.
type AnnouncementRepository interface {
	Create(ctx context.Context, a *models.Announcement) error
	GetByID(ctx context.Context, id uint) (*models.Announcement, error)
	Update(ctx context.Context, a *models.Announcement) error
	Delete(ctx context.Context, id uint) error
	ListActive(ctx context.Context) ([]models.Announcement, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.Announcement, int64, error)
}

type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository returns a new AnnouncementRepository implementation.
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(ctx context.Context, a *models.Announcement) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateAnnouncements(ctx)
	return nil
}

func (r *announcementRepository) GetByID(ctx context.Context, id uint) (*models.Announcement, error) {
	var a models.Announcement
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Announcement", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &a, nil
}

func (r *announcementRepository) Update(ctx context.Context, a *models.Announcement) error {
	if err := r.db.WithContext(ctx).Save(a).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateAnnouncements(ctx)
	return nil
}

func (r *announcementRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Announcement{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Announcement", id)
	}
	cache.InvalidateAnnouncements(ctx)
	return nil
}

// ListActive is the hot path behind the banner on every page load, so the
// result set is cached.
func (r *announcementRepository) ListActive(ctx context.Context) ([]models.Announcement, error) {
	var announcements []models.Announcement

	err := cache.CacheAside(ctx, cache.AnnouncementsKey, &announcements, cache.AnnouncementsTTL, func() error {
		if err := r.db.WithContext(ctx).
			Where("is_active = ?", true).
			Order("created_at DESC").
			Find(&announcements).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return announcements, nil
}

func (r *announcementRepository) ListAll(ctx context.Context, limit, offset int) ([]models.Announcement, int64, error) {
	var announcements []models.Announcement
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Announcement{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	if err := q.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&announcements).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return announcements, total, nil
}
