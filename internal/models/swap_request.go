package models

import "time"

// SwapStatus represents the lifecycle state of a swap request.
type SwapStatus string

const (
	// SwapStatusPending indicates the provider has not responded yet.
	SwapStatusPending SwapStatus = "pending"
	// SwapStatusAccepted indicates the provider accepted the request.
	SwapStatusAccepted SwapStatus = "accepted"
	// SwapStatusRejected indicates the provider rejected the request.
	SwapStatusRejected SwapStatus = "rejected"
	// SwapStatusCancelled indicates the requester withdrew the request.
	SwapStatusCancelled SwapStatus = "cancelled"
	// SwapStatusCompleted indicates a participant marked the exchange done.
	SwapStatusCompleted SwapStatus = "completed"
)

// SwapRequest is a proposal to exchange the requester's offered skill for
// the provider's skill. The requester must own the offered skill and the
// provider must own the wanted skill.
type SwapRequest struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	RequesterID    uint       `gorm:"not null;index" json:"requester_id"`
	ProviderID     uint       `gorm:"not null;index" json:"provider_id"`
	OfferedSkillID uint       `gorm:"not null" json:"offered_skill_id"`
	WantedSkillID  uint       `gorm:"not null;index" json:"wanted_skill_id"`
	Status         SwapStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Message        string     `gorm:"type:text" json:"message"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Requester    *User  `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Provider     *User  `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
	OfferedSkill *Skill `gorm:"foreignKey:OfferedSkillID" json:"offered_skill,omitempty"`
	WantedSkill  *Skill `gorm:"foreignKey:WantedSkillID" json:"wanted_skill,omitempty"`
}

// TableName specifies the table name for GORM
func (SwapRequest) TableName() string {
	return "swap_requests"
}

// Participant reports whether userID is the requester or the provider.
func (r *SwapRequest) Participant(userID uint) bool {
	return r.RequesterID == userID || r.ProviderID == userID
}

// Counterparty returns the other participant's user id.
func (r *SwapRequest) Counterparty(userID uint) uint {
	if r.RequesterID == userID {
		return r.ProviderID
	}
	return r.RequesterID
}
