package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/blogsphere/blogsphere/internal/app/models"
	"github.com/blogsphere/blogsphere/internal/app/models/dto"
	"github.com/blogsphere/blogsphere/internal/pkg/webpush"
)

const notificationPageLimit = 50

// NotificationService defines the interface for notification operations
type NotificationService interface {
	List(ctx context.Context, userID int64) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, notificationID, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	Delete(ctx context.Context, notificationID, userID int64) error
	ClearAll(ctx context.Context, userID int64) error
	Subscribe(ctx context.Context, userID int64, req *dto.PushSubscriptionRequest) error
	PushPublicKey() string

	// NotifyLike, NotifyComment and NotifyFollow fan out a notification to
	// the recipient. Self-interactions are dropped here so callers never
	// have to special-case them.
	NotifyLike(ctx context.Context, recipientID, actorID int64, postID int64, postTitle string)
	NotifyComment(ctx context.Context, recipientID, actorID int64, postID int64, postTitle string)
	NotifyFollow(ctx context.Context, recipientID, actorID int64)
}

type notificationServiceImpl struct {
	notificationStore NotificationStore
	subscriptionStore PushSubscriptionStore
	userStore         UserStore
	push              PushSender
	logger            zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notificationStore NotificationStore,
	subscriptionStore PushSubscriptionStore,
	userStore UserStore,
	push PushSender,
	logger zerolog.Logger,
) NotificationService {
	return &notificationServiceImpl{
		notificationStore: notificationStore,
		subscriptionStore: subscriptionStore,
		userStore:         userStore,
		push:              push,
		logger:            logger,
	}
}

// List retrieves the user's notifications newest first with the unread count
func (s *notificationServiceImpl) List(ctx context.Context, userID int64) (*dto.NotificationListResponse, error) {
	notifications, err := s.notificationStore.ListForRecipient(ctx, userID, notificationPageLimit)
	if err != nil {
		return nil, err
	}

	unread, err := s.notificationStore.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, dto.ToNotificationResponse(n))
	}

	return &dto.NotificationListResponse{
		Notifications: responses,
		UnreadCount:   unread,
	}, nil
}

// MarkRead flags a notification as read
func (s *notificationServiceImpl) MarkRead(ctx context.Context, notificationID, userID int64) error {
	return s.notificationStore.MarkRead(ctx, notificationID, userID)
}

// MarkAllRead flags all of the user's notifications as read
func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID int64) error {
	return s.notificationStore.MarkAllRead(ctx, userID)
}

// Delete removes a notification
func (s *notificationServiceImpl) Delete(ctx context.Context, notificationID, userID int64) error {
	return s.notificationStore.Delete(ctx, notificationID, userID)
}

// ClearAll removes every notification the user has
func (s *notificationServiceImpl) ClearAll(ctx context.Context, userID int64) error {
	return s.notificationStore.DeleteAllForRecipient(ctx, userID)
}

// Subscribe stores a browser push subscription for the user
func (s *notificationServiceImpl) Subscribe(ctx context.Context, userID int64, req *dto.PushSubscriptionRequest) error {
	return s.subscriptionStore.Upsert(ctx, userID, req.Endpoint, req.Keys.P256dh, req.Keys.Auth)
}

// PushPublicKey returns the VAPID public key clients subscribe with
func (s *notificationServiceImpl) PushPublicKey() string {
	return s.push.PublicKey()
}

// NotifyLike records a like notification and pushes it to the recipient
func (s *notificationServiceImpl) NotifyLike(ctx context.Context, recipientID, actorID int64, postID int64, postTitle string) {
	if recipientID == actorID {
		return
	}

	if _, err := s.notificationStore.Create(ctx, recipientID, actorID, models.NotificationLike, &postID, postTitle); err != nil {
		s.logger.Error().Err(err).Int64("recipientID", recipientID).Msg("Failed to create like notification")
		return
	}

	s.pushToRecipient(ctx, recipientID, actorID, "liked your post", postTitle)
}

// NotifyComment records a comment notification and pushes it to the recipient
func (s *notificationServiceImpl) NotifyComment(ctx context.Context, recipientID, actorID int64, postID int64, postTitle string) {
	if recipientID == actorID {
		return
	}

	if _, err := s.notificationStore.Create(ctx, recipientID, actorID, models.NotificationComment, &postID, postTitle); err != nil {
		s.logger.Error().Err(err).Int64("recipientID", recipientID).Msg("Failed to create comment notification")
		return
	}

	s.pushToRecipient(ctx, recipientID, actorID, "commented on your post", postTitle)
}

// NotifyFollow records a follow notification and pushes it to the recipient
func (s *notificationServiceImpl) NotifyFollow(ctx context.Context, recipientID, actorID int64) {
	if recipientID == actorID {
		return
	}

	if _, err := s.notificationStore.Create(ctx, recipientID, actorID, models.NotificationFollow, nil, ""); err != nil {
		s.logger.Error().Err(err).Int64("recipientID", recipientID).Msg("Failed to create follow notification")
		return
	}

	s.pushToRecipient(ctx, recipientID, actorID, "started following you", "")
}

func (s *notificationServiceImpl) pushToRecipient(ctx context.Context, recipientID, actorID int64, action, postTitle string) {
	if !s.push.Enabled() {
		return
	}

	actor, err := s.userStore.GetByID(ctx, actorID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("actorID", actorID).Msg("Failed to resolve notification actor")
		return
	}

	actorName := actor.Username
	if actorName == "" {
		actorName = "Someone"
	}

	body := fmt.Sprintf("%s %s", actorName, action)
	if postTitle != "" {
		body = fmt.Sprintf("%s: %s", body, postTitle)
	}

	s.push.Send(recipientID, webpush.Payload{
		Title: "BlogSphere",
		Body:  body,
	})
}
