// Package models contains data structures for the application's domain models.
package models

import (
	"strings"
	"time"
)

// User represents a member of the skill exchange.
type User struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	Email              string     `gorm:"unique;not null" json:"email"`
	Password           string     `gorm:"not null" json:"-"`
	Name               string     `gorm:"not null" json:"name"`
	Location           string     `json:"location"`
	Bio                string     `json:"bio"`
	ProfilePhoto       string     `json:"profile_photo"`
	AvailabilityDays   string     `json:"availability_days"`
	AvailabilityStart  string     `json:"availability_start_time"`
	AvailabilityEnd    string     `json:"availability_end_time"`
	IsPublic           bool       `gorm:"default:true" json:"is_public"`
	IsAdmin            bool       `gorm:"default:false" json:"is_admin"`
	IsBanned           bool       `gorm:"default:false" json:"is_banned"`
	IsUnderSupervision bool       `gorm:"default:false" json:"is_under_supervision"`
	LastLogin          *time.Time `json:"last_login"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	Skills []Skill `gorm:"foreignKey:UserID" json:"skills,omitempty"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// Availability renders the stored day/time descriptor as a display string,
// e.g. "Mon, Wed, Fri 18:00-20:00". Empty parts are omitted.
func (u *User) Availability() string {
	days := strings.TrimSpace(u.AvailabilityDays)
	var window string
	if u.AvailabilityStart != "" && u.AvailabilityEnd != "" {
		window = u.AvailabilityStart + "-" + u.AvailabilityEnd
	}
	switch {
	case days != "" && window != "":
		return days + " " + window
	case days != "":
		return days
	default:
		return window
	}
}
