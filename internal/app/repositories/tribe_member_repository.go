package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TribeMemberRepository handles tribe membership edges
type TribeMemberRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTribeMemberRepository creates a new TribeMemberRepository
func NewTribeMemberRepository(db *pgxpool.Pool) *TribeMemberRepository {
	return &TribeMemberRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Add inserts a membership edge. Returns true when the edge was newly created.
func (r *TribeMemberRepository) Add(ctx context.Context, tribeID, userID int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO tribe_members (tribe_id, user_id, joined_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (tribe_id, user_id) DO NOTHING`,
		tribeID, userID, time.Now(),
	)
	if err != nil {
		return false, fmt.Errorf("error adding tribe member: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Remove deletes a membership edge. Returns true when an edge was removed.
func (r *TribeMemberRepository) Remove(ctx context.Context, tribeID, userID int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		"DELETE FROM tribe_members WHERE tribe_id = $1 AND user_id = $2",
		tribeID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("error removing tribe member: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// IsMember reports whether the user belongs to the tribe
func (r *TribeMemberRepository) IsMember(ctx context.Context, tribeID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM tribe_members WHERE tribe_id = $1 AND user_id = $2)",
		tribeID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking tribe membership: %w", err)
	}
	return exists, nil
}

// Count returns the number of members in a tribe
func (r *TribeMemberRepository) Count(ctx context.Context, tribeID int64) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM tribe_members WHERE tribe_id = $1", tribeID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error counting tribe members: %w", err)
	}
	return total, nil
}
