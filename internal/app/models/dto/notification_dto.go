package dto

import (
	"time"

	"github.com/blogsphere/blogsphere/internal/app/models"
)

// NotificationResponse represents a single notification
type NotificationResponse struct {
	ID        int64      `json:"id"`
	Type      string     `json:"type" example:"like"`
	Actor     PostAuthor `json:"actor"`
	PostID    *int64     `json:"postId,omitempty"`
	PostTitle string     `json:"postTitle,omitempty"`
	IsRead    bool       `json:"isRead"`
	CreatedAt time.Time  `json:"createdAt"`
}

// NotificationListResponse wraps notifications with the unread counter
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unreadCount"`
}

// PushSubscriptionRequest carries a browser push subscription
type PushSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required,url"`
	Keys     struct {
		P256dh string `json:"p256dh" binding:"required"`
		Auth   string `json:"auth" binding:"required"`
	} `json:"keys" binding:"required"`
}

// PushPublicKeyResponse exposes the VAPID public key to clients
type PushPublicKeyResponse struct {
	PublicKey string `json:"publicKey"`
}

// ToNotificationResponse maps a notification model to its response DTO
func ToNotificationResponse(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:   n.ID,
		Type: string(n.Type),
		Actor: PostAuthor{
			ID:        n.ActorID,
			Username:  n.ActorUsername,
			AvatarURL: n.ActorAvatarURL,
		},
		PostID:    n.PostID,
		PostTitle: n.PostTitle,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
