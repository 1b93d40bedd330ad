// Package service contains the business logic sitting between the HTTP
// handlers and the repositories.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"skillswap/internal/models"
	"skillswap/internal/repository"
)

// DefaultRejectionReason is used when an admin rejects a skill without
// giving a reason.
const DefaultRejectionReason = "Does not meet community guidelines"

// SkillService provides skill listing and moderation business logic.
type SkillService struct {
	skillRepo        repository.SkillRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
}

// NewSkillService returns a new SkillService.
func NewSkillService(skillRepo repository.SkillRepository, userRepo repository.UserRepository, notificationRepo repository.NotificationRepository) *SkillService {
	return &SkillService{
		skillRepo:        skillRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

// Submit creates a new pending skill listing for the user. Users under
// supervision cannot add skills.
func (s *SkillService) Submit(ctx context.Context, userID uint, name string, skillType models.SkillType, description string) (*models.Skill, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsUnderSupervision {
		return nil, models.NewForbiddenError("Your account is under supervision and cannot add skills")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("Skill name is required")
	}
	if len(name) > 120 {
		return nil, models.NewValidationError("Skill name must not exceed 120 characters")
	}
	if !skillType.Valid() {
		return nil, models.NewValidationError("Skill type must be 'offered' or 'wanted'")
	}

	skill := &models.Skill{
		UserID:      userID,
		Name:        name,
		Type:        skillType,
		Description: strings.TrimSpace(description),
	}
	if err := s.skillRepo.Create(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// Resubmit lets the owner edit a rejected skill and put it back into the
// moderation queue. Only rejected skills can be resubmitted; the previous
// rejection reason is cleared.
func (s *SkillService) Resubmit(ctx context.Context, userID, skillID uint, name string, skillType models.SkillType, description string) (*models.Skill, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsUnderSupervision {
		return nil, models.NewForbiddenError("Your account is under supervision and cannot resubmit skills")
	}

	skill, err := s.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		return nil, err
	}
	if skill.UserID != userID {
		return nil, models.NewForbiddenError("You can only resubmit your own skills")
	}
	if !skill.IsRejected {
		return nil, models.NewValidationError("Only rejected skills can be resubmitted")
	}

	name = strings.TrimSpace(name)
	if name != "" {
		skill.Name = name
	}
	if skillType != "" {
		if !skillType.Valid() {
			return nil, models.NewValidationError("Skill type must be 'offered' or 'wanted'")
		}
		skill.Type = skillType
	}
	if description != "" {
		skill.Description = strings.TrimSpace(description)
	}

	skill.IsApproved = false
	skill.IsRejected = false
	skill.RejectionReason = ""
	skill.RejectedAt = nil
	skill.User = nil

	if err := s.skillRepo.Update(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// Delete removes the owner's skill. Supervised users can only remove
// rejected skills.
func (s *SkillService) Delete(ctx context.Context, userID, skillID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	skill, err := s.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		return err
	}
	if skill.UserID != userID {
		return models.NewForbiddenError("You can only delete your own skills")
	}
	if user.IsUnderSupervision && !skill.IsRejected {
		return models.NewForbiddenError("Your account is under supervision and cannot delete active skills")
	}

	return s.skillRepo.Delete(ctx, skillID)
}

// ListMine returns all of the user's skills regardless of moderation state.
func (s *SkillService) ListMine(ctx context.Context, userID uint) ([]models.Skill, error) {
	return s.skillRepo.ListByUser(ctx, userID)
}

// Browse returns approved skills for the public listing.
func (s *SkillService) Browse(ctx context.Context, skillType models.SkillType, search string, limit, offset int) ([]models.Skill, int64, error) {
	if skillType != "" && !skillType.Valid() {
		return nil, 0, models.NewValidationError("Skill type must be 'offered' or 'wanted'")
	}
	return s.skillRepo.ListApproved(ctx, skillType, search, limit, offset)
}

// PendingQueue returns skills awaiting moderation, oldest first.
func (s *SkillService) PendingQueue(ctx context.Context, limit, offset int) ([]models.Skill, int64, error) {
	return s.skillRepo.ListPending(ctx, limit, offset)
}

// Approve marks a pending or rejected skill as approved.
func (s *SkillService) Approve(ctx context.Context, skillID uint) (*models.Skill, error) {
	skill, err := s.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		return nil, err
	}
	if skill.IsApproved {
		return nil, models.NewValidationError("Skill is already approved")
	}

	skill.IsApproved = true
	skill.IsRejected = false
	skill.RejectionReason = ""
	skill.RejectedAt = nil
	skill.User = nil

	if err := s.skillRepo.Update(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// Reject marks a skill as rejected with a reason and notifies the owner.
// The row is kept so the owner can see the reason and resubmit.
func (s *SkillService) Reject(ctx context.Context, skillID uint, reason string) (*models.Skill, error) {
	skill, err := s.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		return nil, err
	}
	if skill.IsRejected {
		return nil, models.NewValidationError("Skill is already rejected")
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultRejectionReason
	}

	now := time.Now()
	skill.IsApproved = false
	skill.IsRejected = true
	skill.RejectionReason = reason
	skill.RejectedAt = &now
	skill.User = nil

	if err := s.skillRepo.Update(ctx, skill); err != nil {
		return nil, err
	}

	notifyUser(ctx, s.notificationRepo, skill.UserID,
		"Skill Rejected",
		fmt.Sprintf("Your skill %q was rejected. Reason: %s", skill.Name, reason),
		models.NotificationWarning)

	return skill, nil
}

// notifyUser inserts a notification row, logging instead of failing the
// caller when the insert does not land.
func notifyUser(ctx context.Context, repo repository.NotificationRepository, userID uint, title, message string, typ models.NotificationType) {
	err := repo.Create(ctx, &models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    typ,
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to create notification",
			"user_id", userID, "title", title, "err", err)
	}
}
