package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blogsphere/blogsphere/internal/app/models"
)

// PushSubscriptionRepository stores browser push endpoints
type PushSubscriptionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPushSubscriptionRepository creates a new PushSubscriptionRepository
func NewPushSubscriptionRepository(db *pgxpool.Pool) *PushSubscriptionRepository {
	return &PushSubscriptionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Upsert stores a subscription, replacing the keys when the endpoint is
// already registered.
func (r *PushSubscriptionRepository) Upsert(ctx context.Context, userID int64, endpoint, p256dh, auth string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO push_subscriptions (user_id, endpoint, p256dh, auth, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (endpoint) DO UPDATE SET user_id = $1, p256dh = $3, auth = $4`,
		userID, endpoint, p256dh, auth, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("error upserting push subscription: %w", err)
	}
	return nil
}

// ListForUser retrieves all push subscriptions registered by a user
func (r *PushSubscriptionRepository) ListForUser(ctx context.Context, userID int64) ([]*models.PushSubscription, error) {
	rows, err := r.db.Query(ctx,
		"SELECT id, user_id, endpoint, p256dh, auth, created_at FROM push_subscriptions WHERE user_id = $1",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying push subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []*models.PushSubscription
	for rows.Next() {
		var s models.PushSubscription
		if err := rows.Scan(&s.ID, &s.UserID, &s.Endpoint, &s.P256dh, &s.Auth, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning push subscription row: %w", err)
		}
		subs = append(subs, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating push subscription rows: %w", err)
	}

	return subs, nil
}

// DeleteByEndpoint removes a subscription whose endpoint has gone stale
func (r *PushSubscriptionRepository) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM push_subscriptions WHERE endpoint = $1", endpoint); err != nil {
		return fmt.Errorf("error deleting push subscription: %w", err)
	}
	return nil
}
