package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blogsphere/blogsphere/internal/app/models"
	"github.com/blogsphere/blogsphere/internal/pkg/apperrors"
)

// NotificationRepository handles notification database operations
type NotificationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a notification and returns its ID
func (r *NotificationRepository) Create(ctx context.Context, recipientID, actorID int64, kind models.NotificationType, postID *int64, postTitle string) (int64, error) {
	sql, args, err := r.sb.Insert("notifications").
		Columns("recipient_id", "actor_id", "type", "post_id", "post_title", "is_read", "created_at").
		Values(recipientID, actorID, kind, postID, postTitle, false, time.Now()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create notification query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating notification: %w", err)
	}

	return id, nil
}

// ListForRecipient retrieves a user's notifications newest first
func (r *NotificationRepository) ListForRecipient(ctx context.Context, recipientID int64, limit int) ([]*models.Notification, error) {
	rows, err := r.db.Query(ctx,
		`SELECT n.id, n.recipient_id, n.actor_id, n.type, n.post_id, COALESCE(n.post_title, ''), n.is_read, n.created_at,
			COALESCE(u.username, ''), COALESCE(u.avatar_url, '')
		 FROM notifications n JOIN users u ON u.id = n.actor_id
		 WHERE n.recipient_id = $1
		 ORDER BY n.created_at DESC, n.id DESC
		 LIMIT $2`,
		recipientID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(
			&n.ID, &n.RecipientID, &n.ActorID, &n.Type, &n.PostID, &n.PostTitle, &n.IsRead, &n.CreatedAt,
			&n.ActorUsername, &n.ActorAvatarURL,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}

	return notifications, nil
}

// CountUnread returns the number of unread notifications for a user
func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE",
		recipientID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return total, nil
}

// MarkRead flags one notification as read, scoped to its recipient
func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID, recipientID int64) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE notifications SET is_read = TRUE WHERE id = $1 AND recipient_id = $2",
		notificationID, recipientID,
	)
	if err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead flags all of a user's notifications as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID int64) error {
	_, err := r.db.Exec(ctx,
		"UPDATE notifications SET is_read = TRUE WHERE recipient_id = $1 AND is_read = FALSE",
		recipientID,
	)
	if err != nil {
		return fmt.Errorf("error marking all notifications read: %w", err)
	}
	return nil
}

// DeleteAllForRecipient clears a user's entire notification list
func (r *NotificationRepository) DeleteAllForRecipient(ctx context.Context, recipientID int64) error {
	_, err := r.db.Exec(ctx,
		"DELETE FROM notifications WHERE recipient_id = $1",
		recipientID,
	)
	if err != nil {
		return fmt.Errorf("error clearing notifications: %w", err)
	}
	return nil
}

// Delete removes one notification, scoped to its recipient
func (r *NotificationRepository) Delete(ctx context.Context, notificationID, recipientID int64) error {
	tag, err := r.db.Exec(ctx,
		"DELETE FROM notifications WHERE id = $1 AND recipient_id = $2",
		notificationID, recipientID,
	)
	if err != nil {
		return fmt.Errorf("error deleting notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}
