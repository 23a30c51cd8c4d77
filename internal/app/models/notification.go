package models

import "time"

// Notification is an alert delivered to a recipient when another user
// interacts with their content. Self-interactions never produce one.
type Notification struct {
	ID          int64            `json:"id" db:"id"`
	RecipientID int64            `json:"recipientId" db:"recipient_id"`
	ActorID     int64            `json:"actorId" db:"actor_id"`
	Type        NotificationType `json:"type" db:"type"`
	PostID      *int64           `json:"postId" db:"post_id"`
	PostTitle   string           `json:"postTitle" db:"post_title"`
	IsRead      bool             `json:"isRead" db:"is_read"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`

	ActorUsername  string `json:"actorUsername" db:"actor_username"`
	ActorAvatarURL string `json:"actorAvatarUrl" db:"actor_avatar_url"`
}
