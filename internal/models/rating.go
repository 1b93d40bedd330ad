package models

import "time"

// Rating is feedback left by one participant of a completed swap about the
// other. A rater can rate a given swap request only once.
type Rating struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SwapRequestID uint      `gorm:"not null;uniqueIndex:idx_ratings_swap_rater" json:"swap_request_id"`
	RaterID       uint      `gorm:"not null;uniqueIndex:idx_ratings_swap_rater" json:"rater_id"`
	RatedID       uint      `gorm:"not null;index" json:"rated_id"`
	Rating        int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Feedback      string    `gorm:"type:text" json:"feedback"`
	CreatedAt     time.Time `json:"created_at"`

	Rater *User `gorm:"foreignKey:RaterID" json:"rater,omitempty"`
	Rated *User `gorm:"foreignKey:RatedID" json:"rated,omitempty"`
}

// TableName specifies the table name for GORM
func (Rating) TableName() string {
	return "ratings"
}
