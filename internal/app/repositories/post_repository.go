package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blogsphere/blogsphere/internal/app/models"
	"github.com/blogsphere/blogsphere/internal/pkg/apperrors"
	"github.com/blogsphere/blogsphere/internal/pkg/helpers"
	"github.com/blogsphere/blogsphere/internal/pkg/logger"
)

// postSelectColumns joins posts with author fields, reaction aggregates and
// viewer-relative flags. The viewer ID is always the first bound argument.
const postSelectColumns = `
	p.id, p.author_id, p.title, p.content, p.category, p.image_url, p.status, p.views, p.is_edited, p.created_at, p.updated_at,
	COALESCE(u.username, ''), COALESCE(u.full_name, ''), COALESCE(u.avatar_url, ''),
	(SELECT COUNT(*) FROM post_reactions pr WHERE pr.post_id = p.id AND pr.kind = 'like'),
	(SELECT COUNT(*) FROM post_reactions pr WHERE pr.post_id = p.id AND pr.kind = 'repost'),
	(SELECT COUNT(*) FROM post_reactions pr WHERE pr.post_id = p.id AND pr.kind = 'bookmark'),
	(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id),
	EXISTS(SELECT 1 FROM post_reactions pr WHERE pr.post_id = p.id AND pr.user_id = $1 AND pr.kind = 'like'),
	EXISTS(SELECT 1 FROM post_reactions pr WHERE pr.post_id = p.id AND pr.user_id = $1 AND pr.kind = 'repost'),
	EXISTS(SELECT 1 FROM post_reactions pr WHERE pr.post_id = p.id AND pr.user_id = $1 AND pr.kind = 'bookmark')`

// PostRepository handles post database operations
type PostRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var post models.Post
	var imageURL *string
	err := row.Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Content,
		&post.Category,
		&imageURL,
		&post.Status,
		&post.Views,
		&post.IsEdited,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.AuthorUsername,
		&post.AuthorFullName,
		&post.AuthorAvatarURL,
		&post.LikeCount,
		&post.RepostCount,
		&post.BookmarkCount,
		&post.CommentCount,
		&post.LikedByViewer,
		&post.RepostedByViewer,
		&post.BookmarkedByViewer,
	)
	if err != nil {
		return nil, err
	}
	if imageURL != nil {
		post.ImageURL = *imageURL
	}
	return &post, nil
}

func (r *PostRepository) queryPosts(ctx context.Context, sql string, args ...interface{}) ([]*models.Post, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning post row: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, nil
}

// Create inserts a new post and returns its ID
func (r *PostRepository) Create(ctx context.Context, authorID int64, title, content, category, imageURL string, status models.PostStatus) (int64, error) {
	sql, args, err := r.sb.Insert("posts").
		Columns("author_id", "title", "content", "category", "image_url", "status", "created_at", "updated_at").
		Values(authorID, title, content, category, imageURL, status, time.Now(), time.Now()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create post query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("authorID", authorID).Msg("Error creating post")
		return 0, fmt.Errorf("error creating post: %w", err)
	}

	return id, nil
}

// GetByID retrieves a post with aggregates and flags relative to viewerID
func (r *PostRepository) GetByID(ctx context.Context, postID, viewerID int64) (*models.Post, error) {
	sql := fmt.Sprintf(`SELECT %s FROM posts p JOIN users u ON u.id = p.author_id WHERE p.id = $2`, postSelectColumns)

	post, err := scanPost(r.db.QueryRow(ctx, sql, viewerID, postID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error retrieving post: %w", err)
	}

	return post, nil
}

// ListGlobal retrieves approved posts newest first, optionally filtered by a
// title/content/category search term, resuming strictly after the cursor.
func (r *PostRepository) ListGlobal(ctx context.Context, viewerID int64, search string, cursor *helpers.Cursor, limit int) ([]*models.Post, error) {
	sql := fmt.Sprintf(`SELECT %s FROM posts p JOIN users u ON u.id = p.author_id WHERE p.status = 'approved'`, postSelectColumns)
	args := []interface{}{viewerID}
	argIndex := 2

	if search != "" {
		sql += fmt.Sprintf(" AND (p.title ILIKE $%d OR p.content ILIKE $%d OR p.category ILIKE $%d)", argIndex, argIndex, argIndex)
		args = append(args, "%"+search+"%")
		argIndex++
	}

	if cursor != nil {
		sql += fmt.Sprintf(" AND (p.created_at, p.id) < ($%d, $%d)", argIndex, argIndex+1)
		args = append(args, cursor.Time(), cursor.ID)
		argIndex += 2
	}

	sql += fmt.Sprintf(" ORDER BY p.created_at DESC, p.id DESC LIMIT $%d", argIndex)
	args = append(args, limit)

	return r.queryPosts(ctx, sql, args...)
}

// ListFollowing retrieves approved posts authored by users the viewer
// follows, newest first, resuming strictly after the cursor.
func (r *PostRepository) ListFollowing(ctx context.Context, viewerID int64, search string, cursor *helpers.Cursor, limit int) ([]*models.Post, error) {
	sql := fmt.Sprintf(`SELECT %s FROM posts p JOIN users u ON u.id = p.author_id
		WHERE p.status = 'approved'
		AND p.author_id IN (SELECT followee_id FROM follows WHERE follower_id = $1)`, postSelectColumns)
	args := []interface{}{viewerID}
	argIndex := 2

	if search != "" {
		sql += fmt.Sprintf(" AND (p.title ILIKE $%d OR p.content ILIKE $%d OR p.category ILIKE $%d)", argIndex, argIndex, argIndex)
		args = append(args, "%"+search+"%")
		argIndex++
	}

	if cursor != nil {
		sql += fmt.Sprintf(" AND (p.created_at, p.id) < ($%d, $%d)", argIndex, argIndex+1)
		args = append(args, cursor.Time(), cursor.ID)
		argIndex += 2
	}

	sql += fmt.Sprintf(" ORDER BY p.created_at DESC, p.id DESC LIMIT $%d", argIndex)
	args = append(args, limit)

	return r.queryPosts(ctx, sql, args...)
}

// ListTrending retrieves approved posts ranked by views plus five times the
// like count, highest first. The cursor key carries the score.
func (r *PostRepository) ListTrending(ctx context.Context, viewerID int64, search string, cursor *helpers.Cursor, limit int) ([]*models.Post, error) {
	sql := fmt.Sprintf(`SELECT * FROM (
		SELECT %s,
			p.views + 5 * (SELECT COUNT(*) FROM post_reactions pr WHERE pr.post_id = p.id AND pr.kind = 'like') AS score
		FROM posts p JOIN users u ON u.id = p.author_id
		WHERE p.status = 'approved'`, postSelectColumns)
	args := []interface{}{viewerID}
	argIndex := 2

	if search != "" {
		sql += fmt.Sprintf(" AND (p.title ILIKE $%d OR p.content ILIKE $%d OR p.category ILIKE $%d)", argIndex, argIndex, argIndex)
		args = append(args, "%"+search+"%")
		argIndex++
	}

	sql += ") ranked"

	if cursor != nil {
		sql += fmt.Sprintf(" WHERE (score, id) < ($%d, $%d)", argIndex, argIndex+1)
		args = append(args, cursor.Key, cursor.ID)
		argIndex += 2
	}

	sql += fmt.Sprintf(" ORDER BY score DESC, id DESC LIMIT $%d", argIndex)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying trending posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		var post models.Post
		var imageURL *string
		var score int64
		err := rows.Scan(
			&post.ID, &post.AuthorID, &post.Title, &post.Content, &post.Category, &imageURL,
			&post.Status, &post.Views, &post.IsEdited, &post.CreatedAt, &post.UpdatedAt,
			&post.AuthorUsername, &post.AuthorFullName, &post.AuthorAvatarURL,
			&post.LikeCount, &post.RepostCount, &post.BookmarkCount, &post.CommentCount,
			&post.LikedByViewer, &post.RepostedByViewer, &post.BookmarkedByViewer,
			&score,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning trending post row: %w", err)
		}
		if imageURL != nil {
			post.ImageURL = *imageURL
		}
		posts = append(posts, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trending post rows: %w", err)
	}

	return posts, nil
}

// ListByAuthor retrieves a user's approved posts newest first, with the
// pinned post surfaced ahead of the rest.
func (r *PostRepository) ListByAuthor(ctx context.Context, authorID, viewerID int64, pinnedPostID *int64) ([]*models.Post, error) {
	var pinned int64 = -1
	if pinnedPostID != nil {
		pinned = *pinnedPostID
	}

	sql := fmt.Sprintf(`SELECT %s FROM posts p JOIN users u ON u.id = p.author_id
		WHERE p.author_id = $2 AND p.status = 'approved'
		ORDER BY (p.id = $3) DESC, p.created_at DESC, p.id DESC`, postSelectColumns)

	return r.queryPosts(ctx, sql, viewerID, authorID, pinned)
}

// ListBookmarked retrieves posts the viewer has bookmarked, most recently
// bookmarked first.
func (r *PostRepository) ListBookmarked(ctx context.Context, viewerID int64) ([]*models.Post, error) {
	sql := fmt.Sprintf(`SELECT %s FROM posts p
		JOIN users u ON u.id = p.author_id
		JOIN post_reactions b ON b.post_id = p.id AND b.user_id = $1 AND b.kind = 'bookmark'
		WHERE p.status = 'approved'
		ORDER BY b.created_at DESC, p.id DESC`, postSelectColumns)

	return r.queryPosts(ctx, sql, viewerID)
}

// ListPending retrieves posts awaiting moderation, oldest first
func (r *PostRepository) ListPending(ctx context.Context, limit int) ([]*models.Post, error) {
	sql := fmt.Sprintf(`SELECT %s FROM posts p JOIN users u ON u.id = p.author_id
		WHERE p.status = 'pending'
		ORDER BY p.created_at ASC, p.id ASC LIMIT $2`, postSelectColumns)

	return r.queryPosts(ctx, sql, int64(0), limit)
}

// Update edits a post's title, content and category and marks it edited
func (r *PostRepository) Update(ctx context.Context, postID int64, title, content, category string) error {
	sql, args, err := r.sb.Update("posts").
		Set("title", title).
		Set("content", content).
		Set("category", category).
		Set("is_edited", true).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": postID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update post query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}

	return nil
}

// SetStatus moves a post through moderation
func (r *PostRepository) SetStatus(ctx context.Context, postID int64, status models.PostStatus) error {
	sql, args, err := r.sb.Update("posts").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": postID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set status query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error setting post status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}

	return nil
}

// IncrementViews atomically bumps the view counter, returning the new value
func (r *PostRepository) IncrementViews(ctx context.Context, postID int64) (int64, error) {
	var views int64
	err := r.db.QueryRow(ctx,
		"UPDATE posts SET views = views + 1 WHERE id = $1 RETURNING views", postID,
	).Scan(&views)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrPostNotFound
		}
		return 0, fmt.Errorf("error incrementing views: %w", err)
	}
	return views, nil
}

// Delete removes a post. Comments, reactions and notifications referencing
// it cascade through foreign keys.
func (r *PostRepository) Delete(ctx context.Context, postID int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1", postID)
	if err != nil {
		logger.Error().Err(err).Int64("postID", postID).Msg("Error deleting post")
		return fmt.Errorf("error deleting post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// Count returns the total number of posts
func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM posts").Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting posts: %w", err)
	}
	return total, nil
}

// CountByStatus returns the number of posts in a moderation state
func (r *PostRepository) CountByStatus(ctx context.Context, status models.PostStatus) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM posts WHERE status = $1", status).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting posts by status: %w", err)
	}
	return total, nil
}

// CountByAuthor returns the number of approved posts by a user
func (r *PostRepository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM posts WHERE author_id = $1 AND status = 'approved'", authorID,
	).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting author posts: %w", err)
	}
	return total, nil
}

// ListRecentApproved retrieves the newest approved posts, used for the RSS feed
func (r *PostRepository) ListRecentApproved(ctx context.Context, limit int) ([]*models.Post, error) {
	sql := fmt.Sprintf(`SELECT %s FROM posts p JOIN users u ON u.id = p.author_id
		WHERE p.status = 'approved'
		ORDER BY p.created_at DESC, p.id DESC LIMIT $2`, postSelectColumns)

	return r.queryPosts(ctx, sql, int64(0), limit)
}
