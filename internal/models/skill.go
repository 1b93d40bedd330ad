package models

import "time"

// SkillType distinguishes listings a user offers from ones they want to learn.
type SkillType string

const (
	// SkillTypeOffered marks a skill the owner can teach.
	SkillTypeOffered SkillType = "offered"
	// SkillTypeWanted marks a skill the owner wants to learn.
	SkillTypeWanted SkillType = "wanted"
)

// Valid reports whether t is one of the two known skill types.
func (t SkillType) Valid() bool {
	return t == SkillTypeOffered || t == SkillTypeWanted
}

// Skill is a single offered-or-wanted listing owned by a user.
// A skill is pending until an admin approves or rejects it; a rejected
// skill keeps its row (and reason) so the owner can resubmit it.
// IsApproved and IsRejected are never both true.
type Skill struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"not null;index" json:"user_id"`
	Name            string     `gorm:"size:120;not null" json:"skill_name"`
	Type            SkillType  `gorm:"type:varchar(20);not null;index" json:"skill_type"`
	Description     string     `gorm:"type:text" json:"description"`
	IsApproved      bool       `gorm:"default:false;index" json:"is_approved"`
	IsRejected      bool       `gorm:"default:false" json:"is_rejected"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason"`
	RejectedAt      *time.Time `json:"rejected_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM
func (Skill) TableName() string {
	return "skills"
}

// Pending reports whether the skill is still awaiting moderation.
func (s *Skill) Pending() bool {
	return !s.IsApproved && !s.IsRejected
}
