package models

import "time"

// Tribe represents a community with an optional join code gate.
// JoinCode is non-empty if and only if Privacy is private.
type Tribe struct {
	ID          int64        `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	Description string       `json:"description" db:"description"`
	OwnerID     int64        `json:"ownerId" db:"owner_id"`
	Privacy     TribePrivacy `json:"privacy" db:"privacy"`
	JoinCode    string       `json:"-" db:"join_code"`
	CreatedAt   time.Time    `json:"createdAt" db:"created_at"`

	MemberCount    int64 `json:"memberCount" db:"member_count"`
	ViewerIsMember bool  `json:"viewerIsMember" db:"viewer_is_member"`
}

// TribeMember is a membership edge
type TribeMember struct {
	TribeID  int64     `db:"tribe_id"`
	UserID   int64     `db:"user_id"`
	JoinedAt time.Time `db:"joined_at"`
}

// TribeMessage is a chat message inside a tribe
type TribeMessage struct {
	ID        int64     `json:"id" db:"id"`
	TribeID   int64     `json:"tribeId" db:"tribe_id"`
	SenderID  int64     `json:"senderId" db:"sender_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	SenderUsername  string `json:"senderUsername" db:"sender_username"`
	SenderAvatarURL string `json:"senderAvatarUrl" db:"sender_avatar_url"`
}
