package repository

import (
	"context"
	"errors"
	"time"

	"skillswap/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConversationSummary pairs a conversation with its unread count for the
// viewing user.
type ConversationSummary struct {
	Conversation models.Conversation `json:"conversation"`
	UnreadCount  int64               `json:"unread_count"`
	LastMessage  *models.ChatMessage `json:"last_message,omitempty"`
}

// ChatRepository defines persistence operations for direct-message threads.
type ChatRepository interface {
	GetOrCreateConversation(ctx context.Context, userA, userB uint) (*models.Conversation, error)
	GetConversation(ctx context.Context, id uint) (*models.Conversation, error)
	ListConversations(ctx context.Context, userID uint) ([]ConversationSummary, error)
	CreateMessage(ctx context.Context, msg *models.ChatMessage) error
	ListMessages(ctx context.Context, conversationID uint, limit, offset int) ([]models.ChatMessage, error)
	MarkConversationRead(ctx context.Context, conversationID, readerID uint) error
	TotalUnread(ctx context.Context, userID uint) (int64, error)
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository returns a new ChatRepository implementation.
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// GetOrCreateConversation is idempotent per unordered user pair. The pair
// is stored in normalized order and the insert ignores a concurrent
// duplicate, then re-reads the winning row.
func (r *chatRepository) GetOrCreateConversation(ctx context.Context, userA, userB uint) (*models.Conversation, error) {
	u1, u2 := models.NormalizePair(userA, userB)

	conv := models.Conversation{
		User1ID:       u1,
		User2ID:       u2,
		LastMessageAt: time.Now(),
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&conv).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	var out models.Conversation
	if err := r.db.WithContext(ctx).
		Preload("User1").
		Preload("User2").
		Where("user1_id = ? AND user2_id = ?", u1, u2).
		First(&out).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &out, nil
}

func (r *chatRepository) GetConversation(ctx context.Context, id uint) (*models.Conversation, error) {
	var conv models.Conversation
	if err := r.db.WithContext(ctx).
		Preload("User1").
		Preload("User2").
		First(&conv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Conversation", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &conv, nil
}

func (r *chatRepository) ListConversations(ctx context.Context, userID uint) ([]ConversationSummary, error) {
	var conversations []models.Conversation
	if err := r.db.WithContext(ctx).
		Preload("User1").
		Preload("User2").
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("last_message_at DESC").
		Find(&conversations).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	summaries := make([]ConversationSummary, 0, len(conversations))
	for _, conv := range conversations {
		var unread int64
		if err := r.db.WithContext(ctx).Model(&models.ChatMessage{}).
			Where("conversation_id = ? AND sender_id != ? AND is_read = ?", conv.ID, userID, false).
			Count(&unread).Error; err != nil {
			return nil, models.NewInternalError(err)
		}

		var last models.ChatMessage
		var lastPtr *models.ChatMessage
		err := r.db.WithContext(ctx).
			Where("conversation_id = ?", conv.ID).
			Order("created_at DESC").
			First(&last).Error
		if err == nil {
			lastPtr = &last
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewInternalError(err)
		}

		summaries = append(summaries, ConversationSummary{
			Conversation: conv,
			UnreadCount:  unread,
			LastMessage:  lastPtr,
		})
	}
	return summaries, nil
}

// CreateMessage inserts the message and bumps the conversation's
// last_message_at in one transaction.
func (r *chatRepository) CreateMessage(ctx context.Context, msg *models.ChatMessage) error {
	if msg.Type == "" {
		msg.Type = models.ChatMessageText
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", msg.ConversationID).
			Update("last_message_at", time.Now()).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *chatRepository) ListMessages(ctx context.Context, conversationID uint, limit, offset int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

// MarkConversationRead flips unread messages from the other participant.
// Opening a thread is what marks it read.
func (r *chatRepository) MarkConversationRead(ctx context.Context, conversationID, readerID uint) error {
	if err := r.db.WithContext(ctx).Model(&models.ChatMessage{}).
		Where("conversation_id = ? AND sender_id != ? AND is_read = ?", conversationID, readerID, false).
		Update("is_read", true).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *chatRepository) TotalUnread(ctx context.Context, userID uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.ChatMessage{}).
		Joins("JOIN chat_conversations c ON c.id = chat_messages.conversation_id").
		Where("(c.user1_id = ? OR c.user2_id = ?) AND chat_messages.sender_id != ? AND chat_messages.is_read = ?",
			userID, userID, userID, false).
		Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}
