package models

import "time"

// User represents a registered account.
// FullName, Username, Bio and Location stay empty until the profile is set up;
// ProfileComplete is derived from Username being non-empty.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Password     string    `json:"-" db:"password"`
	FullName     string    `json:"fullName" db:"full_name"`
	Username     string    `json:"username" db:"username"`
	Bio          string    `json:"bio" db:"bio"`
	Location     string    `json:"location" db:"location"`
	AvatarURL    string    `json:"avatarUrl" db:"avatar_url"`
	Role         RoleType  `json:"role" db:"role"`
	PinnedPostID *int64    `json:"pinnedPostId" db:"pinned_post_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// ProfileComplete reports whether the user has finished profile setup
func (u *User) ProfileComplete() bool {
	return u.Username != ""
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Token represents a stored refresh token
type Token struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

// Follow is a directed edge from follower to followee
type Follow struct {
	FollowerID int64     `db:"follower_id"`
	FolloweeID int64     `db:"followee_id"`
	CreatedAt  time.Time `db:"created_at"`
}

// PushSubscription stores a browser push endpoint for a user
type PushSubscription struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Endpoint  string    `db:"endpoint"`
	P256dh    string    `db:"p256dh"`
	Auth      string    `db:"auth"`
	CreatedAt time.Time `db:"created_at"`
}
