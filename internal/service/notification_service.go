package service

import (
	"context"

	"skillswap/internal/models"
	"skillswap/internal/repository"
)

// NotificationService exposes a user's notification feed.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService returns a new NotificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uint, unreadOnly bool, limit, offset int) ([]models.Notification, int64, error) {
	return s.notificationRepo.ListByUser(ctx, userID, unreadOnly, limit, offset)
}

// UnreadCount returns the number of unread notifications for the badge.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkRead marks one of the user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	return s.notificationRepo.MarkRead(ctx, notificationID, userID)
}

// MarkAllRead marks every unread notification of the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// Delete removes one of the user's notifications.
func (s *NotificationService) Delete(ctx context.Context, userID, notificationID uint) error {
	return s.notificationRepo.Delete(ctx, notificationID, userID)
}
