package service

import (
	"context"
	"strings"

	"skillswap/internal/cache"
	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

// UserStats is the aggregate profile figure block shown on dashboards.
type UserStats struct {
	SkillsCount    int64   `json:"skills_count"`
	SwapsSent      int64   `json:"swaps_sent"`
	SwapsReceived  int64   `json:"swaps_received"`
	SwapsCompleted int64   `json:"swaps_completed"`
	AverageRating  float64 `json:"average_rating"`
	RatingsCount   int64   `json:"ratings_count"`
}

// ProfileUpdate carries the editable fields of a user profile. Nil fields
// are left untouched.
type ProfileUpdate struct {
	Name              *string `json:"name"`
	Location          *string `json:"location"`
	Bio               *string `json:"bio"`
	AvailabilityDays  *string `json:"availability_days"`
	AvailabilityStart *string `json:"availability_start_time"`
	AvailabilityEnd   *string `json:"availability_end_time"`
	IsPublic          *bool   `json:"is_public"`
}

// UserService provides profile and directory business logic.
type UserService struct {
	userRepo   repository.UserRepository
	skillRepo  repository.SkillRepository
	swapRepo   repository.SwapRepository
	ratingRepo repository.RatingRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, skillRepo repository.SkillRepository, swapRepo repository.SwapRepository, ratingRepo repository.RatingRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		skillRepo:  skillRepo,
		swapRepo:   swapRepo,
		ratingRepo: ratingRepo,
	}
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetPublicProfile returns another user's profile if it is browsable.
// The owner can always view their own profile through this path.
func (s *UserService) GetPublicProfile(ctx context.Context, viewerID, targetID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if viewerID != targetID {
		if user.IsBanned || !user.IsPublic {
			return nil, models.NewNotFoundError("User", targetID)
		}
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of the update to the user.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if err := validation.ValidateName(*update.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Name = strings.TrimSpace(*update.Name)
	}
	if update.Location != nil {
		user.Location = strings.TrimSpace(*update.Location)
	}
	if update.Bio != nil {
		user.Bio = strings.TrimSpace(*update.Bio)
	}
	if update.AvailabilityDays != nil {
		user.AvailabilityDays = strings.TrimSpace(*update.AvailabilityDays)
	}
	if update.AvailabilityStart != nil {
		user.AvailabilityStart = strings.TrimSpace(*update.AvailabilityStart)
	}
	if update.AvailabilityEnd != nil {
		user.AvailabilityEnd = strings.TrimSpace(*update.AvailabilityEnd)
	}
	if update.IsPublic != nil {
		user.IsPublic = *update.IsPublic
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Browse lists public profiles with their approved skills, optionally
// filtered by a name or location search term.
func (s *UserService) Browse(ctx context.Context, search string, limit, offset int) ([]models.User, int64, error) {
	return s.userRepo.ListPublic(ctx, search, limit, offset)
}

// RatingSummary returns the user's aggregated received rating.
func (s *UserService) RatingSummary(ctx context.Context, userID uint) (*repository.RatingSummary, error) {
	return s.ratingRepo.SummaryForUser(ctx, userID)
}

// Ratings returns the feedback left about a user.
func (s *UserService) Ratings(ctx context.Context, userID uint, limit, offset int) ([]models.Rating, int64, error) {
	return s.ratingRepo.ListForUser(ctx, userID, limit, offset)
}

// Stats aggregates the user's dashboard figures. The block is cached per
// user and invalidated alongside the profile cache.
func (s *UserService) Stats(ctx context.Context, userID uint) (*UserStats, error) {
	var stats UserStats
	key := cache.UserStatsKey(userID)

	err := cache.CacheAside(ctx, key, &stats, cache.StatsTTL, func() error {
		var err error
		if stats.SkillsCount, err = s.skillRepo.CountByUser(ctx, userID); err != nil {
			return err
		}
		if stats.SwapsSent, err = s.swapRepo.CountSentByUser(ctx, userID); err != nil {
			return err
		}
		if stats.SwapsReceived, err = s.swapRepo.CountReceivedByUser(ctx, userID); err != nil {
			return err
		}
		if stats.SwapsCompleted, err = s.swapRepo.CountCompletedByUser(ctx, userID); err != nil {
			return err
		}
		summary, err := s.ratingRepo.SummaryForUser(ctx, userID)
		if err != nil {
			return err
		}
		stats.AverageRating = summary.Average
		stats.RatingsCount = summary.Count
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &stats, nil
}
