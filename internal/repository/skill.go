package repository

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// SkillRepository defines persistence operations for skill listings.
type SkillRepository interface {
	Create(ctx context.Context, skill *models.Skill) error
	GetByID(ctx context.Context, id uint) (*models.Skill, error)
	Update(ctx context.Context, skill *models.Skill) error
	Delete(ctx context.Context, id uint) error
	ListByUser(ctx context.Context, userID uint) ([]models.Skill, error)
	ListPending(ctx context.Context, limit, offset int) ([]models.Skill, int64, error)
	ListApproved(ctx context.Context, skillType models.SkillType, search string, limit, offset int) ([]models.Skill, int64, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.Skill, int64, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	CountPending(ctx context.Context) (int64, error)
}

type skillRepository struct {
	db *gorm.DB
}

// NewSkillRepository returns a new SkillRepository implementation.
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) Create(ctx context.Context, skill *models.Skill) error {
	if err := r.db.WithContext(ctx).Create(skill).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *skillRepository) GetByID(ctx context.Context, id uint) (*models.Skill, error) {
	var skill models.Skill
	if err := r.db.WithContext(ctx).Preload("User").First(&skill, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Skill", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &skill, nil
}

func (r *skillRepository) Update(ctx context.Context, skill *models.Skill) error {
	if err := r.db.WithContext(ctx).Save(skill).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *skillRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Skill{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Skill", id)
	}
	return nil
}

func (r *skillRepository) ListByUser(ctx context.Context, userID uint) ([]models.Skill, error) {
	var skills []models.Skill
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&skills).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return skills, nil
}

// ListPending returns skills awaiting moderation, oldest first so the
// moderation queue is worked in submission order.
func (r *skillRepository) ListPending(ctx context.Context, limit, offset int) ([]models.Skill, int64, error) {
	var skills []models.Skill
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Skill{}).
		Where("is_approved = ? AND is_rejected = ?", false, false)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	if err := q.Preload("User").
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&skills).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return skills, total, nil
}

// ListAll returns every skill regardless of moderation state, with the
// owner preloaded for the admin overview.
func (r *skillRepository) ListAll(ctx context.Context, limit, offset int) ([]models.Skill, int64, error) {
	var skills []models.Skill
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Skill{})

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	if err := q.Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&skills).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return skills, total, nil
}

func (r *skillRepository) ListApproved(ctx context.Context, skillType models.SkillType, search string, limit, offset int) ([]models.Skill, int64, error) {
	var skills []models.Skill
	var total int64

	// approved listings from reachable owners only
	q := r.db.WithContext(ctx).Model(&models.Skill{}).
		Joins("JOIN users ON users.id = skills.user_id").
		Where("skills.is_approved = ?", true).
		Where("users.is_banned = ?", false).
		Where("users.is_under_supervision = ?", false).
		Where("users.is_public = ?", true)
	if skillType != "" {
		q = q.Where("skills.type = ?", skillType)
	}
	if search != "" {
		q = q.Where("LOWER(skills.name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	if err := q.Preload("User").
		Order("skills.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&skills).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return skills, total, nil
}

func (r *skillRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Skill{}).
		Where("user_id = ?", userID).
		Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

func (r *skillRepository) CountPending(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Skill{}).
		Where("is_approved = ? AND is_rejected = ?", false, false).
		Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}
