package service

import (
	"context"
	"log/slog"
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/repository"
)

// PlatformStats is the admin dashboard aggregate block.
type PlatformStats struct {
	TotalUsers     int64 `json:"total_users"`
	BannedUsers    int64 `json:"banned_users"`
	PendingSkills  int64 `json:"pending_skills"`
	TotalSwaps     int64 `json:"total_swaps"`
	PendingSwaps   int64 `json:"pending_swaps"`
	CompletedSwaps int64 `json:"completed_swaps"`
}

// AdminService provides user moderation and platform administration logic.
type AdminService struct {
	userRepo         repository.UserRepository
	skillRepo        repository.SkillRepository
	swapRepo         repository.SwapRepository
	notificationRepo repository.NotificationRepository
	announcementRepo repository.AnnouncementRepository
}

// NewAdminService returns a new AdminService.
func NewAdminService(userRepo repository.UserRepository, skillRepo repository.SkillRepository, swapRepo repository.SwapRepository, notificationRepo repository.NotificationRepository, announcementRepo repository.AnnouncementRepository) *AdminService {
	return &AdminService{
		userRepo:         userRepo,
		skillRepo:        skillRepo,
		swapRepo:         swapRepo,
		notificationRepo: notificationRepo,
		announcementRepo: announcementRepo,
	}
}

// SetBanned bans or unbans a user. Admin accounts cannot be banned.
func (s *AdminService) SetBanned(ctx context.Context, targetID uint, banned bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin {
		return nil, models.NewValidationError("Admin accounts cannot be banned")
	}
	if user.IsBanned == banned {
		if banned {
			return nil, models.NewValidationError("User is already banned")
		}
		return nil, models.NewValidationError("User is not banned")
	}

	user.IsBanned = banned
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetSupervision places a user under supervision or lifts it. The user is
// notified either way so the restriction does not come as a surprise.
func (s *AdminService) SetSupervision(ctx context.Context, targetID uint, supervised bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin {
		return nil, models.NewValidationError("Admin accounts cannot be supervised")
	}
	if user.IsUnderSupervision == supervised {
		if supervised {
			return nil, models.NewValidationError("User is already under supervision")
		}
		return nil, models.NewValidationError("User is not under supervision")
	}

	user.IsUnderSupervision = supervised
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if supervised {
		notifyUser(ctx, s.notificationRepo, user.ID,
			"Account Under Supervision",
			"Your account has been placed under supervision. You cannot add, edit or delete skills or create swap requests until it is lifted.",
			models.NotificationWarning)
	} else {
		notifyUser(ctx, s.notificationRepo, user.ID,
			"Supervision Lifted",
			"The supervision on your account has been lifted. All features are available again.",
			models.NotificationSuccess)
	}

	return user, nil
}

// Stats aggregates the platform-wide dashboard figures.
func (s *AdminService) Stats(ctx context.Context) (*PlatformStats, error) {
	var stats PlatformStats
	var err error

	if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.BannedUsers, err = s.userRepo.CountBanned(ctx); err != nil {
		return nil, err
	}
	if stats.PendingSkills, err = s.skillRepo.CountPending(ctx); err != nil {
		return nil, err
	}
	if stats.TotalSwaps, err = s.swapRepo.CountByStatus(ctx, ""); err != nil {
		return nil, err
	}
	if stats.PendingSwaps, err = s.swapRepo.CountByStatus(ctx, models.SwapStatusPending); err != nil {
		return nil, err
	}
	if stats.CompletedSwaps, err = s.swapRepo.CountByStatus(ctx, models.SwapStatusCompleted); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListUsers returns a page of member accounts for the moderation screen.
func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	return s.userRepo.ListMembers(ctx, limit, offset)
}

// ListSkills returns a page of every skill with its owner, approved,
// pending and rejected alike.
func (s *AdminService) ListSkills(ctx context.Context, limit, offset int) ([]models.Skill, int64, error) {
	return s.skillRepo.ListAll(ctx, limit, offset)
}

// QuickMessage sends a one-off notification to each selected user. Unknown
// recipients are logged and skipped; the count of reached users is returned.
func (s *AdminService) QuickMessage(ctx context.Context, userIDs []uint, title, message string) (int, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Message from Admin"
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return 0, models.NewValidationError("Message is required")
	}
	if len(userIDs) == 0 {
		return 0, models.NewValidationError("At least one recipient is required")
	}

	sent := 0
	for _, id := range userIDs {
		user, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			slog.WarnContext(ctx, "quick message recipient not found", "user_id", id, "err", err)
			continue
		}
		notifyUser(ctx, s.notificationRepo, user.ID, title, message, models.NotificationInfo)
		sent++
	}
	return sent, nil
}

// RecentUsers returns the latest registrations for the admin dashboard.
func (s *AdminService) RecentUsers(ctx context.Context, limit int) ([]models.User, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.userRepo.Recent(ctx, limit)
}

// RecentSwaps returns the latest swap requests for the admin dashboard.
func (s *AdminService) RecentSwaps(ctx context.Context, limit int) ([]models.SwapRequest, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.swapRepo.Recent(ctx, limit)
}

// CreateAnnouncement publishes a platform-wide banner.
func (s *AdminService) CreateAnnouncement(ctx context.Context, title, content string) (*models.Announcement, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return nil, models.NewValidationError("Announcement title is required")
	}
	if content == "" {
		return nil, models.NewValidationError("Announcement content is required")
	}

	a := &models.Announcement{Title: title, Content: content, IsActive: true}
	if err := s.announcementRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAnnouncement edits a banner's text or toggles its active flag.
func (s *AdminService) UpdateAnnouncement(ctx context.Context, id uint, title, content *string, isActive *bool) (*models.Announcement, error) {
	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return nil, models.NewValidationError("Announcement title cannot be empty")
		}
		a.Title = trimmed
	}
	if content != nil {
		trimmed := strings.TrimSpace(*content)
		if trimmed == "" {
			return nil, models.NewValidationError("Announcement content cannot be empty")
		}
		a.Content = trimmed
	}
	if isActive != nil {
		a.IsActive = *isActive
	}

	if err := s.announcementRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteAnnouncement removes a banner entirely.
func (s *AdminService) DeleteAnnouncement(ctx context.Context, id uint) error {
	return s.announcementRepo.Delete(ctx, id)
}

// ActiveAnnouncements returns the banners every user sees.
func (s *AdminService) ActiveAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	return s.announcementRepo.ListActive(ctx)
}

// AllAnnouncements returns every banner, active or not, for admin review.
func (s *AdminService) AllAnnouncements(ctx context.Context, limit, offset int) ([]models.Announcement, int64, error) {
	return s.announcementRepo.ListAll(ctx, limit, offset)
}
