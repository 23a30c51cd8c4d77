package models

// RoleType represents a user authorization role
type RoleType string

const (
	RoleUser  RoleType = "user"
	RoleAdmin RoleType = "admin"
)

// PostStatus represents the moderation state of a post
type PostStatus string

const (
	PostStatusPending  PostStatus = "pending"
	PostStatusApproved PostStatus = "approved"
	PostStatusRejected PostStatus = "rejected"
)

// ReactionKind identifies a user-to-post edge type
type ReactionKind string

const (
	ReactionLike     ReactionKind = "like"
	ReactionRepost   ReactionKind = "repost"
	ReactionBookmark ReactionKind = "bookmark"
)

// TribePrivacy represents the visibility of a tribe
type TribePrivacy string

const (
	TribePublic  TribePrivacy = "public"
	TribePrivate TribePrivacy = "private"
)

// NotificationType identifies what a notification is about
type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationFollow  NotificationType = "follow"
)
