package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blogsphere/blogsphere/internal/app/models"
)

// MessageRepository handles tribe chat message persistence
type MessageRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a chat message and returns it with sender fields populated
func (r *MessageRepository) Create(ctx context.Context, tribeID, senderID int64, content string) (*models.TribeMessage, error) {
	sql, args, err := r.sb.Insert("tribe_messages").
		Columns("tribe_id", "sender_id", "content", "created_at").
		Values(tribeID, senderID, content, time.Now()).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create message query: %w", err)
	}

	message := &models.TribeMessage{
		TribeID:  tribeID,
		SenderID: senderID,
		Content:  content,
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&message.ID, &message.CreatedAt); err != nil {
		return nil, fmt.Errorf("error creating message: %w", err)
	}

	err = r.db.QueryRow(ctx,
		"SELECT COALESCE(username, ''), COALESCE(avatar_url, '') FROM users WHERE id = $1",
		senderID,
	).Scan(&message.SenderUsername, &message.SenderAvatarURL)
	if err != nil {
		return nil, fmt.Errorf("error resolving message sender: %w", err)
	}

	return message, nil
}

// ListForTribe retrieves the newest messages of a tribe, returned in
// ascending time order. The window keeps the most recent rows, so old
// conversations fall off the front rather than hiding new ones.
func (r *MessageRepository) ListForTribe(ctx context.Context, tribeID int64, limit int) ([]*models.TribeMessage, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, tribe_id, sender_id, content, created_at, sender_username, sender_avatar_url FROM (
			SELECT m.id, m.tribe_id, m.sender_id, m.content, m.created_at,
				COALESCE(u.username, '') AS sender_username, COALESCE(u.avatar_url, '') AS sender_avatar_url
			FROM tribe_messages m JOIN users u ON u.id = m.sender_id
			WHERE m.tribe_id = $1
			ORDER BY m.created_at DESC, m.id DESC
			LIMIT $2
		 ) recent
		 ORDER BY created_at ASC, id ASC`,
		tribeID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.TribeMessage
	for rows.Next() {
		var m models.TribeMessage
		err := rows.Scan(
			&m.ID, &m.TribeID, &m.SenderID, &m.Content, &m.CreatedAt,
			&m.SenderUsername, &m.SenderAvatarURL,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning message row: %w", err)
		}
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}

	return messages, nil
}
