package models

import "time"

// NotificationType is the display category of a notification.
type NotificationType string

const (
	// NotificationInfo is the default informational category.
	NotificationInfo NotificationType = "info"
	// NotificationSuccess marks positive events (request accepted, swap done).
	NotificationSuccess NotificationType = "success"
	// NotificationWarning marks moderation events (skill rejected, supervision).
	NotificationWarning NotificationType = "warning"
	// NotificationError marks failures surfaced to the user.
	NotificationError NotificationType = "error"
)

// Valid reports whether t is a known notification type.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationInfo, NotificationSuccess, NotificationWarning, NotificationError:
		return true
	}
	return false
}

// Notification is a per-user message produced by moderation and swap
// lifecycle events. Delivery is poll-based; rows are the only channel.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"user_id"`
	Title     string           `gorm:"size:200;not null" json:"title"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	Type      NotificationType `gorm:"type:varchar(20);not null;default:'info'" json:"type"`
	IsRead    bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}
