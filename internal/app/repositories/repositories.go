package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all repository instances
type Repositories struct {
	User             *UserRepository
	Token            *TokenRepository
	Post             *PostRepository
	Reaction         *ReactionRepository
	Comment          *CommentRepository
	Follow           *FollowRepository
	Notification     *NotificationRepository
	Tribe            *TribeRepository
	TribeMember      *TribeMemberRepository
	Message          *MessageRepository
	PushSubscription *PushSubscriptionRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:             NewUserRepository(db),
		Token:            NewTokenRepository(db),
		Post:             NewPostRepository(db),
		Reaction:         NewReactionRepository(db),
		Comment:          NewCommentRepository(db),
		Follow:           NewFollowRepository(db),
		Notification:     NewNotificationRepository(db),
		Tribe:            NewTribeRepository(db),
		TribeMember:      NewTribeMemberRepository(db),
		Message:          NewMessageRepository(db),
		PushSubscription: NewPushSubscriptionRepository(db),
	}
}
