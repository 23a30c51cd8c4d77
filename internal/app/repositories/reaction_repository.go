package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blogsphere/blogsphere/internal/app/models"
)

// ReactionRepository handles the (post, user, kind) reaction edges.
// Add and Remove report whether state actually changed, which drives
// notification fan-out on the false to true transition only.
type ReactionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewReactionRepository creates a new ReactionRepository
func NewReactionRepository(db *pgxpool.Pool) *ReactionRepository {
	return &ReactionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Add inserts a reaction edge. Returns true when the edge was newly created,
// false when it already existed.
func (r *ReactionRepository) Add(ctx context.Context, postID, userID int64, kind models.ReactionKind) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO post_reactions (post_id, user_id, kind, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (post_id, user_id, kind) DO NOTHING`,
		postID, userID, kind, time.Now(),
	)
	if err != nil {
		return false, fmt.Errorf("error adding %s reaction: %w", kind, err)
	}
	return tag.RowsAffected() > 0, nil
}

// Remove deletes a reaction edge. Returns true when an edge was removed,
// false when none existed.
func (r *ReactionRepository) Remove(ctx context.Context, postID, userID int64, kind models.ReactionKind) (bool, error) {
	tag, err := r.db.Exec(ctx,
		"DELETE FROM post_reactions WHERE post_id = $1 AND user_id = $2 AND kind = $3",
		postID, userID, kind,
	)
	if err != nil {
		return false, fmt.Errorf("error removing %s reaction: %w", kind, err)
	}
	return tag.RowsAffected() > 0, nil
}

// Exists reports whether the reaction edge is present
func (r *ReactionRepository) Exists(ctx context.Context, postID, userID int64, kind models.ReactionKind) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM post_reactions WHERE post_id = $1 AND user_id = $2 AND kind = $3)",
		postID, userID, kind,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking %s reaction: %w", kind, err)
	}
	return exists, nil
}

// CountForPost returns the number of reactions of a kind on a post
func (r *ReactionRepository) CountForPost(ctx context.Context, postID int64, kind models.ReactionKind) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM post_reactions WHERE post_id = $1 AND kind = $2",
		postID, kind,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error counting %s reactions: %w", kind, err)
	}
	return total, nil
}

// CountReceivedByAuthor returns reactions of a kind across all of a user's posts
func (r *ReactionRepository) CountReceivedByAuthor(ctx context.Context, authorID int64, kind models.ReactionKind) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM post_reactions pr
		 JOIN posts p ON p.id = pr.post_id
		 WHERE p.author_id = $1 AND pr.kind = $2`,
		authorID, kind,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error counting received %s reactions: %w", kind, err)
	}
	return total, nil
}

// MonthlyReceivedByAuthor buckets reactions of a kind on a user's posts per
// calendar month, oldest first.
func (r *ReactionRepository) MonthlyReceivedByAuthor(ctx context.Context, authorID int64, kind models.ReactionKind, months int) (map[string]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT to_char(date_trunc('month', pr.created_at), 'YYYY-MM') AS month, COUNT(*)
		 FROM post_reactions pr
		 JOIN posts p ON p.id = pr.post_id
		 WHERE p.author_id = $1 AND pr.kind = $2
		   AND pr.created_at >= date_trunc('month', NOW()) - ($3 || ' months')::interval
		 GROUP BY month
		 ORDER BY month`,
		authorID, kind, months,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly %s reactions: %w", kind, err)
	}
	defer rows.Close()

	buckets := make(map[string]int64)
	for rows.Next() {
		var month string
		var count int64
		if err := rows.Scan(&month, &count); err != nil {
			return nil, fmt.Errorf("error scanning monthly reaction row: %w", err)
		}
		buckets[month] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly reaction rows: %w", err)
	}

	return buckets, nil
}
