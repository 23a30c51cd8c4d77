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

// CommentRepository handles comment database operations
type CommentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a comment and returns its ID
func (r *CommentRepository) Create(ctx context.Context, postID, authorID int64, content string) (int64, error) {
	sql, args, err := r.sb.Insert("comments").
		Columns("post_id", "author_id", "content", "created_at").
		Values(postID, authorID, content, time.Now()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create comment query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating comment: %w", err)
	}

	return id, nil
}

// GetByID retrieves a comment with its author fields
func (r *CommentRepository) GetByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.QueryRow(ctx,
		`SELECT c.id, c.post_id, c.author_id, c.content, c.created_at,
			COALESCE(u.username, ''), COALESCE(u.avatar_url, '')
		 FROM comments c JOIN users u ON u.id = c.author_id
		 WHERE c.id = $1`,
		commentID,
	).Scan(
		&comment.ID, &comment.PostID, &comment.AuthorID, &comment.Content, &comment.CreatedAt,
		&comment.AuthorUsername, &comment.AuthorAvatarURL,
	)
	if err != nil {
		return nil, apperrors.ErrResourceNotFound
	}
	return &comment, nil
}

// ListForPost retrieves a post's comments in ascending time order
func (r *CommentRepository) ListForPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT c.id, c.post_id, c.author_id, c.content, c.created_at,
			COALESCE(u.username, ''), COALESCE(u.avatar_url, '')
		 FROM comments c JOIN users u ON u.id = c.author_id
		 WHERE c.post_id = $1
		 ORDER BY c.created_at ASC, c.id ASC`,
		postID,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(
			&comment.ID, &comment.PostID, &comment.AuthorID, &comment.Content, &comment.CreatedAt,
			&comment.AuthorUsername, &comment.AuthorAvatarURL,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		comments = append(comments, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return comments, nil
}

// CountReceivedByAuthor returns comments across all of a user's posts,
// excluding the author's own comments on their posts.
func (r *CommentRepository) CountReceivedByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM comments c
		 JOIN posts p ON p.id = c.post_id
		 WHERE p.author_id = $1`,
		authorID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error counting received comments: %w", err)
	}
	return total, nil
}

// MonthlyReceivedByAuthor buckets comments on a user's posts per calendar month
func (r *CommentRepository) MonthlyReceivedByAuthor(ctx context.Context, authorID int64, months int) (map[string]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT to_char(date_trunc('month', c.created_at), 'YYYY-MM') AS month, COUNT(*)
		 FROM comments c
		 JOIN posts p ON p.id = c.post_id
		 WHERE p.author_id = $1
		   AND c.created_at >= date_trunc('month', NOW()) - ($2 || ' months')::interval
		 GROUP BY month
		 ORDER BY month`,
		authorID, months,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly comments: %w", err)
	}
	defer rows.Close()

	buckets := make(map[string]int64)
	for rows.Next() {
		var month string
		var count int64
		if err := rows.Scan(&month, &count); err != nil {
			return nil, fmt.Errorf("error scanning monthly comment row: %w", err)
		}
		buckets[month] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly comment rows: %w", err)
	}

	return buckets, nil
}
