package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/blogsphere/blogsphere/internal/app/models"
	"github.com/blogsphere/blogsphere/internal/app/models/dto"
	"github.com/blogsphere/blogsphere/internal/pkg/apperrors"
	"github.com/blogsphere/blogsphere/internal/pkg/helpers"
)

// Feed modes
const (
	FeedModeGlobal    = "global"
	FeedModeFollowing = "following"
	FeedModeTrending  = "trending"
)

const (
	defaultFeedPageSize = 10
	maxFeedPageSize     = 50
)

// PostService defines the interface for post and interaction operations
type PostService interface {
	Create(ctx context.Context, authorID int64, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	GetByID(ctx context.Context, postID, viewerID int64) (*dto.PostResponse, error)
	Feed(ctx context.Context, viewerID int64, mode, search, cursorToken string, limit int) (*dto.FeedResponse, error)
	Update(ctx context.Context, postID, userID int64, req *dto.UpdatePostRequest) (*dto.PostResponse, error)
	Delete(ctx context.Context, postID, userID int64) error
	RecordView(ctx context.Context, postID int64) (int64, error)

	Like(ctx context.Context, postID, userID int64) error
	Unlike(ctx context.Context, postID, userID int64) error
	Repost(ctx context.Context, postID, userID int64) error
	Unrepost(ctx context.Context, postID, userID int64) error
	Bookmark(ctx context.Context, postID, userID int64) error
	Unbookmark(ctx context.Context, postID, userID int64) error
	ListBookmarked(ctx context.Context, userID int64) ([]dto.PostResponse, error)

	AddComment(ctx context.Context, postID, userID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, postID int64) (*dto.CommentListResponse, error)

	ListRecent(ctx context.Context, limit int) ([]dto.PostResponse, error)
}

type postServiceImpl struct {
	postStore     PostStore
	reactionStore ReactionStore
	commentStore  CommentStore
	userStore     UserStore
	notification  NotificationService
	logger        zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	postStore PostStore,
	reactionStore ReactionStore,
	commentStore CommentStore,
	userStore UserStore,
	notification NotificationService,
	logger zerolog.Logger,
) PostService {
	return &postServiceImpl{
		postStore:     postStore,
		reactionStore: reactionStore,
		commentStore:  commentStore,
		userStore:     userStore,
		notification:  notification,
		logger:        logger,
	}
}

// Create submits a new post into the pending moderation queue
func (s *postServiceImpl) Create(ctx context.Context, authorID int64, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	author, err := s.userStore.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if !author.ProfileComplete() {
		return nil, apperrors.ErrProfileNotSet
	}

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, apperrors.ErrEmptyContent
	}
	category := strings.TrimSpace(req.Category)

	postID, err := s.postStore.Create(ctx, authorID, title, content, category, req.ImageURL, models.PostStatusPending)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("postID", postID).Int64("authorID", authorID).Msg("Post created")

	return s.GetByID(ctx, postID, authorID)
}

// GetByID retrieves one post with viewer-relative flags
func (s *postServiceImpl) GetByID(ctx context.Context, postID, viewerID int64) (*dto.PostResponse, error) {
	post, err := s.postStore.GetByID(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}

	response := dto.ToPostResponse(post)
	return &response, nil
}

// Feed returns one page of the requested feed mode. The cursor token
// resumes strictly after the previous page. A non-positive limit falls
// back to the default page size; oversized limits are clamped.
func (s *postServiceImpl) Feed(ctx context.Context, viewerID int64, mode, search, cursorToken string, limit int) (*dto.FeedResponse, error) {
	cursor, err := helpers.DecodeCursor(cursorToken)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultFeedPageSize
	}
	if limit > maxFeedPageSize {
		limit = maxFeedPageSize
	}

	var posts []*models.Post
	switch mode {
	case FeedModeFollowing:
		posts, err = s.postStore.ListFollowing(ctx, viewerID, search, cursor, limit)
	case FeedModeTrending:
		posts, err = s.postStore.ListTrending(ctx, viewerID, search, cursor, limit)
	case FeedModeGlobal, "":
		posts, err = s.postStore.ListGlobal(ctx, viewerID, search, cursor, limit)
	default:
		return nil, apperrors.NewBadRequestError("unknown feed mode")
	}
	if err != nil {
		return nil, err
	}

	response := &dto.FeedResponse{Posts: dto.ToPostResponses(posts)}

	// A full page means there may be more; emit a resumption cursor
	if len(posts) == limit {
		last := posts[len(posts)-1]
		var next helpers.Cursor
		if mode == FeedModeTrending {
			next = helpers.Cursor{Key: last.TrendingScore(), ID: last.ID}
		} else {
			next = helpers.NewTimeCursor(last.CreatedAt, last.ID)
		}
		response.NextCursor = next.Encode()
	}

	return response, nil
}

// Update edits a post. Only the author may edit, the new content must be
// non-empty, and an edit identical to the stored post is rejected.
func (s *postServiceImpl) Update(ctx context.Context, postID, userID int64, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	post, err := s.postStore.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != userID {
		return nil, apperrors.NewForbiddenError("only the author can edit this post")
	}

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, apperrors.ErrEmptyContent
	}
	category := strings.TrimSpace(req.Category)

	if title == post.Title && content == post.Content && category == post.Category {
		return nil, apperrors.ErrPostUnchanged
	}

	if err := s.postStore.Update(ctx, postID, title, content, category); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, postID, userID)
}

// Delete removes a post. Only the author or an admin may delete. Comments,
// reactions and notifications referencing the post cascade away with it.
func (s *postServiceImpl) Delete(ctx context.Context, postID, userID int64) error {
	post, err := s.postStore.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}

	if post.AuthorID != userID {
		caller, err := s.userStore.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if !caller.IsAdmin() {
			return apperrors.NewForbiddenError("only the author can delete this post")
		}
	}

	if err := s.postStore.Delete(ctx, postID); err != nil {
		return err
	}

	s.logger.Info().Int64("postID", postID).Int64("userID", userID).Msg("Post deleted")
	return nil
}

// RecordView atomically increments the post's view counter
func (s *postServiceImpl) RecordView(ctx context.Context, postID int64) (int64, error) {
	return s.postStore.IncrementViews(ctx, postID)
}

// Like adds a like edge. The author is notified only on the transition from
// not-liked to liked, never for repeats and never for self-likes.
func (s *postServiceImpl) Like(ctx context.Context, postID, userID int64) error {
	post, err := s.postStore.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}

	created, err := s.reactionStore.Add(ctx, postID, userID, models.ReactionLike)
	if err != nil {
		return err
	}

	if created {
		s.notification.NotifyLike(ctx, post.AuthorID, userID, postID, post.Title)
	}

	return nil
}

// Unlike removes a like edge; removing a missing edge is a no-op
func (s *postServiceImpl) Unlike(ctx context.Context, postID, userID int64) error {
	_, err := s.reactionStore.Remove(ctx, postID, userID, models.ReactionLike)
	return err
}

// Repost adds a repost edge. Reposts do not notify the author.
func (s *postServiceImpl) Repost(ctx context.Context, postID, userID int64) error {
	if _, err := s.postStore.GetByID(ctx, postID, userID); err != nil {
		return err
	}

	_, err := s.reactionStore.Add(ctx, postID, userID, models.ReactionRepost)
	return err
}

// Unrepost removes a repost edge
func (s *postServiceImpl) Unrepost(ctx context.Context, postID, userID int64) error {
	_, err := s.reactionStore.Remove(ctx, postID, userID, models.ReactionRepost)
	return err
}

// Bookmark adds a bookmark edge. Bookmarks are private and never notify.
func (s *postServiceImpl) Bookmark(ctx context.Context, postID, userID int64) error {
	if _, err := s.postStore.GetByID(ctx, postID, userID); err != nil {
		return err
	}

	_, err := s.reactionStore.Add(ctx, postID, userID, models.ReactionBookmark)
	return err
}

// Unbookmark removes a bookmark edge
func (s *postServiceImpl) Unbookmark(ctx context.Context, postID, userID int64) error {
	_, err := s.reactionStore.Remove(ctx, postID, userID, models.ReactionBookmark)
	return err
}

// ListBookmarked retrieves the user's saved posts, most recently saved first
func (s *postServiceImpl) ListBookmarked(ctx context.Context, userID int64) ([]dto.PostResponse, error) {
	posts, err := s.postStore.ListBookmarked(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.ToPostResponses(posts), nil
}

// AddComment appends a comment to a post and notifies the author
func (s *postServiceImpl) AddComment(ctx context.Context, postID, userID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.ErrEmptyContent
	}

	post, err := s.postStore.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	commentID, err := s.commentStore.Create(ctx, postID, userID, content)
	if err != nil {
		return nil, err
	}

	s.notification.NotifyComment(ctx, post.AuthorID, userID, postID, post.Title)

	comment, err := s.commentStore.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	response := dto.ToCommentResponse(comment)
	return &response, nil
}

// ListRecent retrieves the newest approved posts, used for the RSS feed
func (s *postServiceImpl) ListRecent(ctx context.Context, limit int) ([]dto.PostResponse, error) {
	posts, err := s.postStore.ListRecentApproved(ctx, limit)
	if err != nil {
		return nil, err
	}
	return dto.ToPostResponses(posts), nil
}

// ListComments retrieves a post's comments in ascending time order
func (s *postServiceImpl) ListComments(ctx context.Context, postID int64) (*dto.CommentListResponse, error) {
	if _, err := s.postStore.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}

	comments, err := s.commentStore.ListForPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, dto.ToCommentResponse(comment))
	}

	return &dto.CommentListResponse{Comments: responses}, nil
}
