package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FollowRepository handles follower edges. Add and Remove report whether
// state actually changed.
type FollowRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *pgxpool.Pool) *FollowRepository {
	return &FollowRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Add inserts a follow edge. Returns true when the edge was newly created.
func (r *FollowRepository) Add(ctx context.Context, followerID, followeeID int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO follows (follower_id, followee_id, created_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (follower_id, followee_id) DO NOTHING`,
		followerID, followeeID, time.Now(),
	)
	if err != nil {
		return false, fmt.Errorf("error adding follow: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Remove deletes a follow edge. Returns true when an edge was removed.
func (r *FollowRepository) Remove(ctx context.Context, followerID, followeeID int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		"DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2",
		followerID, followeeID,
	)
	if err != nil {
		return false, fmt.Errorf("error removing follow: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Exists reports whether follower follows followee
func (r *FollowRepository) Exists(ctx context.Context, followerID, followeeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)",
		followerID, followeeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking follow: %w", err)
	}
	return exists, nil
}

// CountFollowers returns how many users follow the given user
func (r *FollowRepository) CountFollowers(ctx context.Context, userID int64) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM follows WHERE followee_id = $1", userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error counting followers: %w", err)
	}
	return total, nil
}

// CountFollowing returns how many users the given user follows
func (r *FollowRepository) CountFollowing(ctx context.Context, userID int64) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM follows WHERE follower_id = $1", userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error counting following: %w", err)
	}
	return total, nil
}
