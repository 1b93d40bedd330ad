package repository

import (
	"context"
	"errors"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// SwapRepository defines persistence operations for swap requests.
type SwapRepository interface {
	Create(ctx context.Context, req *models.SwapRequest) error
	GetByID(ctx context.Context, id uint) (*models.SwapRequest, error)
	UpdateStatus(ctx context.Context, id uint, status models.SwapStatus) error
	ListByUser(ctx context.Context, userID uint, status models.SwapStatus, limit, offset int) ([]models.SwapRequest, int64, error)
	ListAll(ctx context.Context) ([]models.SwapRequest, error)
	Recent(ctx context.Context, limit int) ([]models.SwapRequest, error)
	HasPendingDuplicate(ctx context.Context, requesterID, wantedSkillID uint) (bool, error)
	CountByStatus(ctx context.Context, status models.SwapStatus) (int64, error)
	CountSentByUser(ctx context.Context, userID uint) (int64, error)
	CountReceivedByUser(ctx context.Context, userID uint) (int64, error)
	CountCompletedByUser(ctx context.Context, userID uint) (int64, error)
}

type swapRepository struct {
	db *gorm.DB
}

// NewSwapRepository returns a new SwapRepository implementation.
func NewSwapRepository(db *gorm.DB) SwapRepository {
	return &swapRepository{db: db}
}

func (r *swapRepository) Create(ctx context.Context, req *models.SwapRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *swapRepository) GetByID(ctx context.Context, id uint) (*models.SwapRequest, error) {
	var req models.SwapRequest
	if err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Provider").
		Preload("OfferedSkill").
		Preload("WantedSkill").
		First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Swap request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

func (r *swapRepository) UpdateStatus(ctx context.Context, id uint, status models.SwapStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Swap request", id)
	}
	return nil
}

// ListByUser returns swaps the user participates in, newest first,
// optionally filtered by status.
func (r *swapRepository) ListByUser(ctx context.Context, userID uint, status models.SwapStatus, limit, offset int) ([]models.SwapRequest, int64, error) {
	var reqs []models.SwapRequest
	var total int64

	q := r.db.WithContext(ctx).Model(&models.SwapRequest{}).
		Where("requester_id = ? OR provider_id = ?", userID, userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	if err := q.
		Preload("Requester").
		Preload("Provider").
		Preload("OfferedSkill").
		Preload("WantedSkill").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reqs).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return reqs, total, nil
}

func (r *swapRepository) ListAll(ctx context.Context) ([]models.SwapRequest, error) {
	var reqs []models.SwapRequest
	if err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Provider").
		Preload("OfferedSkill").
		Preload("WantedSkill").
		Order("id ASC").
		Find(&reqs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}

func (r *swapRepository) Recent(ctx context.Context, limit int) ([]models.SwapRequest, error) {
	var reqs []models.SwapRequest
	if err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Provider").
		Preload("WantedSkill").
		Order("created_at DESC").
		Limit(limit).
		Find(&reqs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}

// HasPendingDuplicate reports whether the requester already has a pending
// request for the same wanted skill.
func (r *swapRepository) HasPendingDuplicate(ctx context.Context, requesterID, wantedSkillID uint) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.SwapRequest{}).
		Where("requester_id = ? AND wanted_skill_id = ? AND status = ?",
			requesterID, wantedSkillID, models.SwapStatusPending).
		Count(&n).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return n > 0, nil
}

func (r *swapRepository) CountByStatus(ctx context.Context, status models.SwapStatus) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&models.SwapRequest{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

func (r *swapRepository) CountSentByUser(ctx context.Context, userID uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.SwapRequest{}).
		Where("requester_id = ?", userID).
		Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

func (r *swapRepository) CountReceivedByUser(ctx context.Context, userID uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.SwapRequest{}).
		Where("provider_id = ?", userID).
		Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

func (r *swapRepository) CountCompletedByUser(ctx context.Context, userID uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.SwapRequest{}).
		Where("(requester_id = ? OR provider_id = ?) AND status = ?",
			userID, userID, models.SwapStatusCompleted).
		Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}
