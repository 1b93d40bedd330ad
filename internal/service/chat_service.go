package service

import (
	"context"
	"log/slog"
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/repository"
)

// ChatService provides direct-message business logic between users.
type ChatService struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
}

// NewChatService returns a new ChatService.
func NewChatService(chatRepo repository.ChatRepository, userRepo repository.UserRepository) *ChatService {
	return &ChatService{chatRepo: chatRepo, userRepo: userRepo}
}

// OpenConversation returns the conversation between the user and the other
// party, creating it if it does not exist yet.
func (s *ChatService) OpenConversation(ctx context.Context, userID, otherUserID uint) (*models.Conversation, error) {
	if userID == otherUserID {
		return nil, models.NewValidationError("Cannot start a conversation with yourself")
	}

	other, err := s.userRepo.GetByID(ctx, otherUserID)
	if err != nil {
		return nil, err
	}
	if other.IsBanned {
		return nil, models.NewValidationError("This user is not available for chat")
	}

	return s.chatRepo.GetOrCreateConversation(ctx, userID, otherUserID)
}

// ListConversations returns the user's conversations, newest activity first,
// each with its unread count and latest message.
func (s *ChatService) ListConversations(ctx context.Context, userID uint) ([]repository.ConversationSummary, error) {
	return s.chatRepo.ListConversations(ctx, userID)
}

// Messages returns a page of messages for a conversation the user belongs
// to. Opening the thread marks the other side's messages as read.
func (s *ChatService) Messages(ctx context.Context, userID, conversationID uint, limit, offset int) ([]models.ChatMessage, error) {
	conv, err := s.chatRepo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, models.NewForbiddenError("You are not a participant of this conversation")
	}

	if err := s.chatRepo.MarkConversationRead(ctx, conversationID, userID); err != nil {
		slog.WarnContext(ctx, "failed to mark conversation read",
			"conversation_id", conversationID, "user_id", userID, "err", err)
	}

	return s.chatRepo.ListMessages(ctx, conversationID, limit, offset)
}

// Send posts a message into a conversation the user belongs to.
func (s *ChatService) Send(ctx context.Context, userID, conversationID uint, body string) (*models.ChatMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, models.NewValidationError("Message cannot be empty")
	}
	if len(body) > 4000 {
		return nil, models.NewValidationError("Message must not exceed 4000 characters")
	}

	conv, err := s.chatRepo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, models.NewForbiddenError("You are not a participant of this conversation")
	}

	msg := &models.ChatMessage{
		ConversationID: conversationID,
		SenderID:       userID,
		Body:           body,
		Type:           models.ChatMessageText,
	}
	if err := s.chatRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// TotalUnread returns the user's unread message count across all
// conversations, for the chat badge.
func (s *ChatService) TotalUnread(ctx context.Context, userID uint) (int64, error) {
	return s.chatRepo.TotalUnread(ctx, userID)
}

// Broadcast delivers a system message from the admin to every member through
// the member's direct thread with the admin, creating the thread for members
// the admin has never chatted with. Failures for individual members are
// logged and skipped so one bad row does not abort the whole broadcast.
func (s *ChatService) Broadcast(ctx context.Context, adminID uint, body string) (int, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return 0, models.NewValidationError("Broadcast message cannot be empty")
	}

	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, user := range users {
		if user.ID == adminID || user.IsAdmin || user.IsBanned {
			continue
		}
		conv, err := s.chatRepo.GetOrCreateConversation(ctx, adminID, user.ID)
		if err != nil {
			slog.WarnContext(ctx, "broadcast could not open conversation",
				"user_id", user.ID, "err", err)
			continue
		}
		msg := &models.ChatMessage{
			ConversationID: conv.ID,
			SenderID:       adminID,
			Body:           body,
			Type:           models.ChatMessageSystem,
		}
		if err := s.chatRepo.CreateMessage(ctx, msg); err != nil {
			slog.WarnContext(ctx, "broadcast message failed for user",
				"user_id", user.ID, "conversation_id", conv.ID, "err", err)
			continue
		}
		sent++
	}
	return sent, nil
}
