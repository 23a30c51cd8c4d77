package services

import (
	"context"
	"time"

	"github.com/blogsphere/blogsphere/internal/app/models"
	"github.com/blogsphere/blogsphere/internal/pkg/helpers"
	"github.com/blogsphere/blogsphere/internal/pkg/webpush"
)

// The store interfaces below are the persistence surface each service
// depends on. The concrete repositories satisfy them; tests substitute
// in-memory fakes.

// UserStore persists user accounts and profile state
type UserStore interface {
	Create(ctx context.Context, email, passwordHash string, role models.RoleType) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	SetupProfile(ctx context.Context, userID int64, fullName, username, bio, location string) error
	UpdateProfile(ctx context.Context, userID int64, fullName, bio, location, avatarURL string) error
	SetPinnedPost(ctx context.Context, userID int64, postID *int64) error
	List(ctx context.Context, search string, offset uint64, limit int) ([]*models.User, int64, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, userID int64) error
}

// TokenStore persists refresh tokens
type TokenStore interface {
	Create(ctx context.Context, token string, userID int64, expiresAt time.Time) error
	GetUserID(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
	DeleteForUser(ctx context.Context, userID int64) error
}

// PostStore persists posts and serves the feed listings
type PostStore interface {
	Create(ctx context.Context, authorID int64, title, content, category, imageURL string, status models.PostStatus) (int64, error)
	GetByID(ctx context.Context, postID, viewerID int64) (*models.Post, error)
	ListGlobal(ctx context.Context, viewerID int64, search string, cursor *helpers.Cursor, limit int) ([]*models.Post, error)
	ListFollowing(ctx context.Context, viewerID int64, search string, cursor *helpers.Cursor, limit int) ([]*models.Post, error)
	ListTrending(ctx context.Context, viewerID int64, search string, cursor *helpers.Cursor, limit int) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID, viewerID int64, pinnedPostID *int64) ([]*models.Post, error)
	ListBookmarked(ctx context.Context, viewerID int64) ([]*models.Post, error)
	ListPending(ctx context.Context, limit int) ([]*models.Post, error)
	ListRecentApproved(ctx context.Context, limit int) ([]*models.Post, error)
	Update(ctx context.Context, postID int64, title, content, category string) error
	SetStatus(ctx context.Context, postID int64, status models.PostStatus) error
	IncrementViews(ctx context.Context, postID int64) (int64, error)
	Delete(ctx context.Context, postID int64) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.PostStatus) (int64, error)
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
}

// ReactionStore persists like, repost and bookmark edges
type ReactionStore interface {
	Add(ctx context.Context, postID, userID int64, kind models.ReactionKind) (bool, error)
	Remove(ctx context.Context, postID, userID int64, kind models.ReactionKind) (bool, error)
	CountReceivedByAuthor(ctx context.Context, authorID int64, kind models.ReactionKind) (int64, error)
	MonthlyReceivedByAuthor(ctx context.Context, authorID int64, kind models.ReactionKind, months int) (map[string]int64, error)
}

// CommentStore persists comments
type CommentStore interface {
	Create(ctx context.Context, postID, authorID int64, content string) (int64, error)
	GetByID(ctx context.Context, commentID int64) (*models.Comment, error)
	ListForPost(ctx context.Context, postID int64) ([]*models.Comment, error)
	CountReceivedByAuthor(ctx context.Context, authorID int64) (int64, error)
	MonthlyReceivedByAuthor(ctx context.Context, authorID int64, months int) (map[string]int64, error)
}

// FollowStore persists follower edges
type FollowStore interface {
	Add(ctx context.Context, followerID, followeeID int64) (bool, error)
	Remove(ctx context.Context, followerID, followeeID int64) (bool, error)
	Exists(ctx context.Context, followerID, followeeID int64) (bool, error)
	CountFollowers(ctx context.Context, userID int64) (int64, error)
	CountFollowing(ctx context.Context, userID int64) (int64, error)
}

// NotificationStore persists notifications
type NotificationStore interface {
	Create(ctx context.Context, recipientID, actorID int64, kind models.NotificationType, postID *int64, postTitle string) (int64, error)
	ListForRecipient(ctx context.Context, recipientID int64, limit int) ([]*models.Notification, error)
	CountUnread(ctx context.Context, recipientID int64) (int64, error)
	MarkRead(ctx context.Context, notificationID, recipientID int64) error
	MarkAllRead(ctx context.Context, recipientID int64) error
	Delete(ctx context.Context, notificationID, recipientID int64) error
	DeleteAllForRecipient(ctx context.Context, recipientID int64) error
}

// TribeStore persists tribes
type TribeStore interface {
	Create(ctx context.Context, name, description string, ownerID int64, privacy models.TribePrivacy, joinCode string) (int64, error)
	GetByID(ctx context.Context, tribeID, viewerID int64) (*models.Tribe, error)
	List(ctx context.Context, viewerID int64, search string) ([]*models.Tribe, error)
	ListForMember(ctx context.Context, userID int64) ([]*models.Tribe, error)
	Update(ctx context.Context, tribeID int64, name, description string, privacy models.TribePrivacy, joinCode string) error
	Delete(ctx context.Context, tribeID int64) error
	Count(ctx context.Context) (int64, error)
}

// TribeMemberStore persists tribe membership edges
type TribeMemberStore interface {
	Add(ctx context.Context, tribeID, userID int64) (bool, error)
	Remove(ctx context.Context, tribeID, userID int64) (bool, error)
	IsMember(ctx context.Context, tribeID, userID int64) (bool, error)
}

// MessageStore persists tribe chat messages
type MessageStore interface {
	Create(ctx context.Context, tribeID, senderID int64, content string) (*models.TribeMessage, error)
	ListForTribe(ctx context.Context, tribeID int64, limit int) ([]*models.TribeMessage, error)
}

// PushSubscriptionStore persists browser push endpoints
type PushSubscriptionStore interface {
	Upsert(ctx context.Context, userID int64, endpoint, p256dh, auth string) error
}

// PushSender delivers web push notifications out of band
type PushSender interface {
	Send(userID int64, payload webpush.Payload)
	PublicKey() string
	Enabled() bool
}
