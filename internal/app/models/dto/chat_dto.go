package dto

import (
	"time"

	"github.com/blogsphere/blogsphere/internal/app/models"
)

// SendMessageRequest represents a chat message submission over REST
type SendMessageRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// ChatMessageResponse represents a single chat message
type ChatMessageResponse struct {
	ID        int64      `json:"id"`
	TribeID   int64      `json:"tribeId"`
	Sender    PostAuthor `json:"sender"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ChatHistoryResponse wraps a tribe's messages in ascending time order
type ChatHistoryResponse struct {
	Messages []ChatMessageResponse `json:"messages"`
}

// ToChatMessageResponse maps a tribe message model to its response DTO
func ToChatMessageResponse(m *models.TribeMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:      m.ID,
		TribeID: m.TribeID,
		Sender: PostAuthor{
			ID:        m.SenderID,
			Username:  m.SenderUsername,
			AvatarURL: m.SenderAvatarURL,
		},
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
