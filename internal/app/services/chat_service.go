package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/blogsphere/blogsphere/internal/app/models/dto"
	"github.com/blogsphere/blogsphere/internal/pkg/apperrors"
	"github.com/blogsphere/blogsphere/internal/pkg/websocket"
)

const chatHistoryLimit = 200

// ChatService defines the interface for tribe chat operations
type ChatService interface {
	History(ctx context.Context, tribeID, userID int64) (*dto.ChatHistoryResponse, error)
	Send(ctx context.Context, tribeID, senderID int64, content string) (*dto.ChatMessageResponse, error)

	// PersistMessage stores an inbound WebSocket message and returns it in
	// broadcast form. Membership is checked at connection time by the
	// WebSocket handler.
	PersistMessage(ctx context.Context, tribeID, senderID int64, content string) (*websocket.Message, error)
}

type chatServiceImpl struct {
	messageStore MessageStore
	memberStore  TribeMemberStore
	hub          *websocket.Hub
	logger       zerolog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(messageStore MessageStore, memberStore TribeMemberStore, hub *websocket.Hub, logger zerolog.Logger) ChatService {
	return &chatServiceImpl{
		messageStore: messageStore,
		memberStore:  memberStore,
		hub:          hub,
		logger:       logger,
	}
}

// History retrieves a tribe's messages in ascending time order. Only
// members may read the history.
func (s *chatServiceImpl) History(ctx context.Context, tribeID, userID int64) (*dto.ChatHistoryResponse, error) {
	isMember, err := s.memberStore.IsMember(ctx, tribeID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.ErrNotTribeMember
	}

	messages, err := s.messageStore.ListForTribe(ctx, tribeID, chatHistoryLimit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, dto.ToChatMessageResponse(m))
	}

	return &dto.ChatHistoryResponse{Messages: responses}, nil
}

// Send persists a message posted over REST and broadcasts it to the
// tribe's connected WebSocket clients.
func (s *chatServiceImpl) Send(ctx context.Context, tribeID, senderID int64, content string) (*dto.ChatMessageResponse, error) {
	isMember, err := s.memberStore.IsMember(ctx, tribeID, senderID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.ErrNotTribeMember
	}

	message, err := s.PersistMessage(ctx, tribeID, senderID, content)
	if err != nil {
		return nil, err
	}

	s.hub.Broadcast(message)

	return &dto.ChatMessageResponse{
		ID:      message.ID,
		TribeID: message.TribeID,
		Sender: dto.PostAuthor{
			ID:       message.SenderID,
			Username: message.SenderUsername,
		},
		Content:   message.Content,
		CreatedAt: message.Timestamp,
	}, nil
}

// PersistMessage stores a message and returns its broadcast form
func (s *chatServiceImpl) PersistMessage(ctx context.Context, tribeID, senderID int64, content string) (*websocket.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.ErrEmptyContent
	}

	stored, err := s.messageStore.Create(ctx, tribeID, senderID, content)
	if err != nil {
		return nil, err
	}

	return &websocket.Message{
		ID:             stored.ID,
		TribeID:        stored.TribeID,
		SenderID:       stored.SenderID,
		SenderUsername: stored.SenderUsername,
		Content:        stored.Content,
		Timestamp:      stored.CreatedAt,
	}, nil
}
