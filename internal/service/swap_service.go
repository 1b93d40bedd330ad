package service

import (
	"context"
	"fmt"

	"skillswap/internal/middleware"
	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

// SwapService provides the swap request lifecycle business logic.
type SwapService struct {
	swapRepo         repository.SwapRepository
	skillRepo        repository.SkillRepository
	userRepo         repository.UserRepository
	ratingRepo       repository.RatingRepository
	notificationRepo repository.NotificationRepository
}

// NewSwapService returns a new SwapService.
func NewSwapService(swapRepo repository.SwapRepository, skillRepo repository.SkillRepository, userRepo repository.UserRepository, ratingRepo repository.RatingRepository, notificationRepo repository.NotificationRepository) *SwapService {
	return &SwapService{
		swapRepo:         swapRepo,
		skillRepo:        skillRepo,
		userRepo:         userRepo,
		ratingRepo:       ratingRepo,
		notificationRepo: notificationRepo,
	}
}

// Create opens a new pending swap request: the requester offers one of
// their approved skills in exchange for another user's approved skill.
func (s *SwapService) Create(ctx context.Context, requesterID, offeredSkillID, wantedSkillID uint, message string) (*models.SwapRequest, error) {
	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if requester.IsUnderSupervision {
		return nil, models.NewForbiddenError("Your account is under supervision and cannot create swap requests")
	}

	offered, err := s.skillRepo.GetByID(ctx, offeredSkillID)
	if err != nil {
		return nil, err
	}
	if offered.UserID != requesterID {
		return nil, models.NewForbiddenError("You can only offer your own skills")
	}
	if !offered.IsApproved {
		return nil, models.NewValidationError("Offered skill must be approved")
	}
	if offered.Type != models.SkillTypeOffered {
		return nil, models.NewValidationError("Offered skill must be listed as offered")
	}

	wanted, err := s.skillRepo.GetByID(ctx, wantedSkillID)
	if err != nil {
		return nil, err
	}
	if !wanted.IsApproved {
		return nil, models.NewValidationError("Wanted skill must be approved")
	}
	if wanted.UserID == requesterID {
		return nil, models.NewValidationError("Cannot request a swap with yourself")
	}

	provider, err := s.userRepo.GetByID(ctx, wanted.UserID)
	if err != nil {
		return nil, err
	}
	if provider.IsBanned {
		return nil, models.NewValidationError("This user is not available for swaps")
	}
	if provider.IsUnderSupervision {
		return nil, models.NewForbiddenError("This user cannot accept swap requests right now")
	}

	dup, err := s.swapRepo.HasPendingDuplicate(ctx, requesterID, wantedSkillID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, models.NewConflictError("You already have a pending request for this skill")
	}

	req := &models.SwapRequest{
		RequesterID:    requesterID,
		ProviderID:     provider.ID,
		OfferedSkillID: offered.ID,
		WantedSkillID:  wanted.ID,
		Status:         models.SwapStatusPending,
		Message:        message,
	}
	if err := s.swapRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	middleware.SwapTransitions.WithLabelValues(string(models.SwapStatusPending)).Inc()

	notifyUser(ctx, s.notificationRepo, provider.ID,
		"New Swap Request",
		fmt.Sprintf("You have received a new skill swap request for %q", wanted.Name),
		models.NotificationInfo)

	return s.swapRepo.GetByID(ctx, req.ID)
}

// Accept moves a pending request to accepted. Only the provider may accept.
func (s *SwapService) Accept(ctx context.Context, userID, swapID uint) (*models.SwapRequest, error) {
	req, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if req.ProviderID != userID {
		return nil, models.NewForbiddenError("Only the provider can accept a swap request")
	}
	if req.Status != models.SwapStatusPending {
		return nil, models.NewValidationError("Only pending swap requests can be accepted")
	}

	if err := s.swapRepo.UpdateStatus(ctx, swapID, models.SwapStatusAccepted); err != nil {
		return nil, err
	}
	middleware.SwapTransitions.WithLabelValues(string(models.SwapStatusAccepted)).Inc()

	notifyUser(ctx, s.notificationRepo, req.RequesterID,
		"Swap Request Accepted",
		fmt.Sprintf("Your request for %q has been accepted!", wantedSkillName(req)),
		models.NotificationSuccess)

	return s.swapRepo.GetByID(ctx, swapID)
}

// Reject moves a pending request to rejected. Only the provider may reject.
func (s *SwapService) Reject(ctx context.Context, userID, swapID uint) (*models.SwapRequest, error) {
	req, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if req.ProviderID != userID {
		return nil, models.NewForbiddenError("Only the provider can reject a swap request")
	}
	if req.Status != models.SwapStatusPending {
		return nil, models.NewValidationError("Only pending swap requests can be rejected")
	}

	if err := s.swapRepo.UpdateStatus(ctx, swapID, models.SwapStatusRejected); err != nil {
		return nil, err
	}
	middleware.SwapTransitions.WithLabelValues(string(models.SwapStatusRejected)).Inc()

	notifyUser(ctx, s.notificationRepo, req.RequesterID,
		"Swap Request Rejected",
		fmt.Sprintf("Your request for %q has been rejected.", wantedSkillName(req)),
		models.NotificationWarning)

	return s.swapRepo.GetByID(ctx, swapID)
}

// Cancel withdraws a pending request. Only the requester may cancel.
func (s *SwapService) Cancel(ctx context.Context, userID, swapID uint) (*models.SwapRequest, error) {
	req, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if req.RequesterID != userID {
		return nil, models.NewForbiddenError("Only the requester can cancel a swap request")
	}
	if req.Status != models.SwapStatusPending {
		return nil, models.NewValidationError("Only pending swap requests can be cancelled")
	}

	if err := s.swapRepo.UpdateStatus(ctx, swapID, models.SwapStatusCancelled); err != nil {
		return nil, err
	}
	middleware.SwapTransitions.WithLabelValues(string(models.SwapStatusCancelled)).Inc()

	return s.swapRepo.GetByID(ctx, swapID)
}

// Complete marks an accepted swap as done. Either participant can complete;
// the other side is notified so they can leave a rating.
func (s *SwapService) Complete(ctx context.Context, userID, swapID uint) (*models.SwapRequest, error) {
	req, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !req.Participant(userID) {
		return nil, models.NewForbiddenError("Only a participant can complete a swap")
	}
	if req.Status != models.SwapStatusAccepted {
		return nil, models.NewValidationError("Only accepted swaps can be completed")
	}

	if err := s.swapRepo.UpdateStatus(ctx, swapID, models.SwapStatusCompleted); err != nil {
		return nil, err
	}
	middleware.SwapTransitions.WithLabelValues(string(models.SwapStatusCompleted)).Inc()

	notifyUser(ctx, s.notificationRepo, req.Counterparty(userID),
		"Swap Completed",
		fmt.Sprintf("Your swap for %q has been marked as completed. You can now rate your partner.", wantedSkillName(req)),
		models.NotificationSuccess)

	return s.swapRepo.GetByID(ctx, swapID)
}

// Rate records feedback about the counterparty of a completed swap. A
// participant can rate a given swap only once.
func (s *SwapService) Rate(ctx context.Context, raterID, swapID uint, stars int, feedback string) (*models.Rating, error) {
	if err := validation.ValidateRating(stars); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	req, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !req.Participant(raterID) {
		return nil, models.NewForbiddenError("Only a participant can rate this swap")
	}
	if req.Status != models.SwapStatusCompleted {
		return nil, models.NewValidationError("Only completed swaps can be rated")
	}

	existing, err := s.ratingRepo.GetBySwapAndRater(ctx, swapID, raterID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("You have already rated this swap")
	}

	rating := &models.Rating{
		SwapRequestID: swapID,
		RaterID:       raterID,
		RatedID:       req.Counterparty(raterID),
		Rating:        stars,
		Feedback:      feedback,
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// Get returns a swap request visible to one of its participants.
func (s *SwapService) Get(ctx context.Context, userID, swapID uint) (*models.SwapRequest, error) {
	req, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !req.Participant(userID) {
		return nil, models.NewForbiddenError("You are not a participant of this swap request")
	}
	return req, nil
}

// List returns the user's swap requests, optionally filtered by status.
func (s *SwapService) List(ctx context.Context, userID uint, status models.SwapStatus, limit, offset int) ([]models.SwapRequest, int64, error) {
	if status != "" {
		switch status {
		case models.SwapStatusPending, models.SwapStatusAccepted, models.SwapStatusRejected,
			models.SwapStatusCancelled, models.SwapStatusCompleted:
		default:
			return nil, 0, models.NewValidationError("Unknown swap status filter")
		}
	}
	return s.swapRepo.ListByUser(ctx, userID, status, limit, offset)
}

func wantedSkillName(req *models.SwapRequest) string {
	if req.WantedSkill != nil {
		return req.WantedSkill.Name
	}
	return "your skill"
}
