package models

import "time"

// Conversation is a direct-message thread between two users. Exactly one
// conversation exists per unordered user pair; User1ID/User2ID are stored
// in normalized order (lower id first) so the pair index enforces that.
type Conversation struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	User1ID       uint      `gorm:"not null;uniqueIndex:idx_conversations_pair" json:"user1_id"`
	User2ID       uint      `gorm:"not null;uniqueIndex:idx_conversations_pair" json:"user2_id"`
	CreatedAt     time.Time `json:"created_at"`
	LastMessageAt time.Time `json:"last_message_at"`

	User1 *User `gorm:"foreignKey:User1ID" json:"user1,omitempty"`
	User2 *User `gorm:"foreignKey:User2ID" json:"user2,omitempty"`
}

// TableName specifies the table name for GORM
func (Conversation) TableName() string {
	return "chat_conversations"
}

// NormalizePair returns the unordered user pair in storage order.
func NormalizePair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// OtherUser returns the participant that is not userID.
func (c *Conversation) OtherUser(userID uint) uint {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// HasParticipant reports whether userID belongs to the conversation.
func (c *Conversation) HasParticipant(userID uint) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// ChatMessageType is the display category of a chat message.
type ChatMessageType string

const (
	// ChatMessageText is a normal user-authored message.
	ChatMessageText ChatMessageType = "text"
	// ChatMessageSystem marks messages injected by admin broadcasts.
	ChatMessageSystem ChatMessageType = "system"
)

// ChatMessage is a single message inside a conversation. Messages from the
// other participant are marked read when the thread is opened.
type ChatMessage struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	ConversationID uint            `gorm:"not null;index" json:"conversation_id"`
	SenderID       uint            `gorm:"not null;index" json:"sender_id"`
	Body           string          `gorm:"type:text;not null" json:"message"`
	Type           ChatMessageType `gorm:"type:varchar(20);not null;default:'text'" json:"message_type"`
	IsRead         bool            `gorm:"default:false;index" json:"is_read"`
	CreatedAt      time.Time       `json:"created_at"`

	Sender *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

// TableName specifies the table name for GORM
func (ChatMessage) TableName() string {
	return "chat_messages"
}
