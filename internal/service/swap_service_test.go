package service

import (
	"context"
	"testing"

	"skillswap/internal/models"
	"skillswap/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	requesterID uint = 1
	providerID  uint = 2
)

func swapUsers() *userRepoStub {
	return &userRepoStub{getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
		return normalUser(id), nil
	}}
}

func swapSkills() *skillRepoStub {
	return &skillRepoStub{getByIDFn: func(_ context.Context, id uint) (*models.Skill, error) {
		switch id {
		case 10:
			return &models.Skill{ID: 10, UserID: requesterID, Name: "Guitar", Type: models.SkillTypeOffered, IsApproved: true}, nil
		case 20:
			return &models.Skill{ID: 20, UserID: providerID, Name: "Piano", Type: models.SkillTypeOffered, IsApproved: true}, nil
		}
		return nil, models.NewNotFoundError("Skill", id)
	}}
}

func pendingSwap(id uint) *models.SwapRequest {
	return &models.SwapRequest{
		ID:             id,
		RequesterID:    requesterID,
		ProviderID:     providerID,
		OfferedSkillID: 10,
		WantedSkillID:  20,
		Status:         models.SwapStatusPending,
		WantedSkill:    &models.Skill{ID: 20, Name: "Piano"},
	}
}

func newSwapService(swaps repository.SwapRepository, notes *notificationRepoStub) *SwapService {
	return NewSwapService(swaps, swapSkills(), swapUsers(), &ratingRepoStub{}, notes)
}

func TestSwapService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path notifies the provider", func(t *testing.T) {
		var note *models.Notification
		swaps := &swapRepoStub{
			hasPendingDuplicateFn: func(context.Context, uint, uint) (bool, error) { return false, nil },
			createFn: func(_ context.Context, req *models.SwapRequest) error {
				req.ID = 100
				return nil
			},
			getByIDFn: func(_ context.Context, id uint) (*models.SwapRequest, error) {
				return pendingSwap(id), nil
			},
		}
		svc := newSwapService(swaps, &notificationRepoStub{
			createFn: func(_ context.Context, n *models.Notification) error {
				note = n
				return nil
			},
		})

		req, err := svc.Create(ctx, requesterID, 10, 20, "Trade lessons?")
		require.NoError(t, err)
		assert.Equal(t, models.SwapStatusPending, req.Status)

		require.NotNil(t, note)
		assert.Equal(t, providerID, note.UserID)
		assert.Equal(t, "New Swap Request", note.Title)
		assert.Contains(t, note.Message, `"Piano"`)
	})

	t.Run("cannot offer someone else's skill", func(t *testing.T) {
		svc := newSwapService(&swapRepoStub{}, noopNotifications())

		_, err := svc.Create(ctx, providerID, 10, 20, "")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "FORBIDDEN", appErr.Code)
	})

	t.Run("cannot offer a skill listed as wanted", func(t *testing.T) {
		svc := NewSwapService(&swapRepoStub{},
			&skillRepoStub{getByIDFn: func(_ context.Context, id uint) (*models.Skill, error) {
				return &models.Skill{ID: id, UserID: requesterID, Name: "Violin", Type: models.SkillTypeWanted, IsApproved: true}, nil
			}},
			swapUsers(), &ratingRepoStub{}, noopNotifications())

		_, err := svc.Create(ctx, requesterID, 11, 20, "")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("cannot swap with yourself", func(t *testing.T) {
		svc := newSwapService(&swapRepoStub{}, noopNotifications())

		_, err := svc.Create(ctx, requesterID, 10, 10, "")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("duplicate pending request conflicts", func(t *testing.T) {
		svc := newSwapService(&swapRepoStub{
			hasPendingDuplicateFn: func(context.Context, uint, uint) (bool, error) { return true, nil },
		}, noopNotifications())

		_, err := svc.Create(ctx, requesterID, 10, 20, "")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "CONFLICT", appErr.Code)
	})

	t.Run("supervised requester is blocked", func(t *testing.T) {
		svc := NewSwapService(&swapRepoStub{}, swapSkills(),
			&userRepoStub{getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
				return supervisedUser(id), nil
			}},
			&ratingRepoStub{}, noopNotifications())

		_, err := svc.Create(ctx, requesterID, 10, 20, "")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "FORBIDDEN", appErr.Code)
	})

	t.Run("supervised provider is blocked too", func(t *testing.T) {
		svc := NewSwapService(&swapRepoStub{}, swapSkills(),
			&userRepoStub{getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
				u := normalUser(id)
				if id == providerID {
					u.IsUnderSupervision = true
				}
				return u, nil
			}},
			&ratingRepoStub{}, noopNotifications())

		_, err := svc.Create(ctx, requesterID, 10, 20, "")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "FORBIDDEN", appErr.Code)
	})
}

func TestSwapService_Transitions(t *testing.T) {
	ctx := context.Background()

	stubFor := func(current *models.SwapRequest, updated *models.SwapStatus) *swapRepoStub {
		return &swapRepoStub{
			getByIDFn: func(_ context.Context, id uint) (*models.SwapRequest, error) {
				return current, nil
			},
			updateStatusFn: func(_ context.Context, _ uint, status models.SwapStatus) error {
				*updated = status
				current.Status = status
				return nil
			},
		}
	}

	t.Run("provider accepts and requester is notified", func(t *testing.T) {
		var updated models.SwapStatus
		var note *models.Notification
		svc := newSwapService(stubFor(pendingSwap(100), &updated), &notificationRepoStub{
			createFn: func(_ context.Context, n *models.Notification) error {
				note = n
				return nil
			},
		})

		_, err := svc.Accept(ctx, providerID, 100)
		require.NoError(t, err)
		assert.Equal(t, models.SwapStatusAccepted, updated)

		require.NotNil(t, note)
		assert.Equal(t, requesterID, note.UserID)
		assert.Equal(t, "Swap Request Accepted", note.Title)
		assert.Contains(t, note.Message, "has been accepted!")
	})

	t.Run("requester cannot accept", func(t *testing.T) {
		var updated models.SwapStatus
		svc := newSwapService(stubFor(pendingSwap(100), &updated), noopNotifications())

		_, err := svc.Accept(ctx, requesterID, 100)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "FORBIDDEN", appErr.Code)
	})

	t.Run("reject notifies the requester", func(t *testing.T) {
		var updated models.SwapStatus
		var note *models.Notification
		svc := newSwapService(stubFor(pendingSwap(100), &updated), &notificationRepoStub{
			createFn: func(_ context.Context, n *models.Notification) error {
				note = n
				return nil
			},
		})

		_, err := svc.Reject(ctx, providerID, 100)
		require.NoError(t, err)
		assert.Equal(t, models.SwapStatusRejected, updated)
		require.NotNil(t, note)
		assert.Equal(t, "Swap Request Rejected", note.Title)
		assert.Contains(t, note.Message, "has been rejected.")
	})

	t.Run("only the requester can cancel", func(t *testing.T) {
		var updated models.SwapStatus
		svc := newSwapService(stubFor(pendingSwap(100), &updated), noopNotifications())

		_, err := svc.Cancel(ctx, providerID, 100)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "FORBIDDEN", appErr.Code)

		_, err = svc.Cancel(ctx, requesterID, 100)
		require.NoError(t, err)
		assert.Equal(t, models.SwapStatusCancelled, updated)
	})

	t.Run("either participant completes an accepted swap", func(t *testing.T) {
		swap := pendingSwap(100)
		swap.Status = models.SwapStatusAccepted
		var updated models.SwapStatus
		var note *models.Notification
		svc := newSwapService(stubFor(swap, &updated), &notificationRepoStub{
			createFn: func(_ context.Context, n *models.Notification) error {
				note = n
				return nil
			},
		})

		_, err := svc.Complete(ctx, requesterID, 100)
		require.NoError(t, err)
		assert.Equal(t, models.SwapStatusCompleted, updated)
		require.NotNil(t, note)
		assert.Equal(t, providerID, note.UserID)
	})

	t.Run("pending swap cannot be completed", func(t *testing.T) {
		var updated models.SwapStatus
		svc := newSwapService(stubFor(pendingSwap(100), &updated), noopNotifications())

		_, err := svc.Complete(ctx, providerID, 100)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("accepting twice fails", func(t *testing.T) {
		swap := pendingSwap(100)
		swap.Status = models.SwapStatusAccepted
		var updated models.SwapStatus
		svc := newSwapService(stubFor(swap, &updated), noopNotifications())

		_, err := svc.Accept(ctx, providerID, 100)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}

func TestSwapService_Rate(t *testing.T) {
	ctx := context.Background()

	completedSwap := func() *models.SwapRequest {
		swap := pendingSwap(100)
		swap.Status = models.SwapStatusCompleted
		return swap
	}

	t.Run("rates the counterparty once", func(t *testing.T) {
		var created *models.Rating
		svc := NewSwapService(
			&swapRepoStub{getByIDFn: func(context.Context, uint) (*models.SwapRequest, error) {
				return completedSwap(), nil
			}},
			swapSkills(), swapUsers(),
			&ratingRepoStub{
				getBySwapAndRater: func(context.Context, uint, uint) (*models.Rating, error) { return nil, nil },
				createFn: func(_ context.Context, r *models.Rating) error {
					created = r
					return nil
				},
			},
			noopNotifications(),
		)

		rating, err := svc.Rate(ctx, requesterID, 100, 5, "Great partner")
		require.NoError(t, err)
		assert.Equal(t, providerID, rating.RatedID)
		require.NotNil(t, created)
	})

	t.Run("second rating conflicts", func(t *testing.T) {
		svc := NewSwapService(
			&swapRepoStub{getByIDFn: func(context.Context, uint) (*models.SwapRequest, error) {
				return completedSwap(), nil
			}},
			swapSkills(), swapUsers(),
			&ratingRepoStub{
				getBySwapAndRater: func(context.Context, uint, uint) (*models.Rating, error) {
					return &models.Rating{ID: 1}, nil
				},
			},
			noopNotifications(),
		)

		_, err := svc.Rate(ctx, requesterID, 100, 4, "")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "CONFLICT", appErr.Code)
	})

	t.Run("non-participant cannot rate", func(t *testing.T) {
		svc := NewSwapService(
			&swapRepoStub{getByIDFn: func(context.Context, uint) (*models.SwapRequest, error) {
				return completedSwap(), nil
			}},
			swapSkills(), swapUsers(), &ratingRepoStub{}, noopNotifications())

		_, err := svc.Rate(ctx, 99, 100, 4, "")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "FORBIDDEN", appErr.Code)
	})

	t.Run("uncompleted swap cannot be rated", func(t *testing.T) {
		svc := NewSwapService(
			&swapRepoStub{getByIDFn: func(context.Context, uint) (*models.SwapRequest, error) {
				return pendingSwap(100), nil
			}},
			swapSkills(), swapUsers(), &ratingRepoStub{}, noopNotifications())

		_, err := svc.Rate(ctx, requesterID, 100, 4, "")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("stars out of range", func(t *testing.T) {
		svc := newSwapService(&swapRepoStub{}, noopNotifications())

		_, err := svc.Rate(ctx, requesterID, 100, 6, "")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}
