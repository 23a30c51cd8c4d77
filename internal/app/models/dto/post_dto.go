package dto

import (
	"time"

	"github.com/blogsphere/blogsphere/internal/app/models"
)

// CreatePostRequest represents a new post submission
type CreatePostRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category" binding:"omitempty,max=50"`
	ImageURL string `json:"imageUrl" binding:"omitempty,url"`
}

// UpdatePostRequest represents a post edit. At least one field must differ
// from the stored post.
type UpdatePostRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category" binding:"omitempty,max=50"`
}

// PostAuthor is the author summary embedded in post responses
type PostAuthor struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// PostResponse represents a post with its aggregates and viewer flags
type PostResponse struct {
	ID                 int64      `json:"id"`
	Author             PostAuthor `json:"author"`
	Title              string     `json:"title"`
	Content            string     `json:"content"`
	Category           string     `json:"category,omitempty"`
	ImageURL           string     `json:"imageUrl,omitempty"`
	Status             string     `json:"status"`
	Views              int64      `json:"views"`
	IsEdited           bool       `json:"isEdited"`
	IsPinned           bool       `json:"isPinned"`
	LikeCount          int64      `json:"likeCount"`
	RepostCount        int64      `json:"repostCount"`
	BookmarkCount      int64      `json:"bookmarkCount"`
	CommentCount       int64      `json:"commentCount"`
	LikedByViewer      bool       `json:"likedByViewer"`
	RepostedByViewer   bool       `json:"repostedByViewer"`
	BookmarkedByViewer bool       `json:"bookmarkedByViewer"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// FeedResponse is a cursor-paged list of posts
type FeedResponse struct {
	Posts      []PostResponse `json:"posts"`
	NextCursor string         `json:"nextCursor,omitempty"`
}

// CreateCommentRequest represents a new comment submission
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// CommentResponse represents a comment on a post
type CommentResponse struct {
	ID        int64      `json:"id"`
	PostID    int64      `json:"postId"`
	Author    PostAuthor `json:"author"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
}

// CommentListResponse wraps a post's comments
type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
}

// ViewCountResponse returns the view counter after an increment
type ViewCountResponse struct {
	Views int64 `json:"views"`
}

// ToPostResponse maps a post model to its response DTO
func ToPostResponse(post *models.Post) PostResponse {
	return PostResponse{
		ID: post.ID,
		Author: PostAuthor{
			ID:        post.AuthorID,
			Username:  post.AuthorUsername,
			FullName:  post.AuthorFullName,
			AvatarURL: post.AuthorAvatarURL,
		},
		Title:              post.Title,
		Content:            post.Content,
		Category:           post.Category,
		ImageURL:           post.ImageURL,
		Status:             string(post.Status),
		Views:              post.Views,
		IsEdited:           post.IsEdited,
		LikeCount:          post.LikeCount,
		RepostCount:        post.RepostCount,
		BookmarkCount:      post.BookmarkCount,
		CommentCount:       post.CommentCount,
		LikedByViewer:      post.LikedByViewer,
		RepostedByViewer:   post.RepostedByViewer,
		BookmarkedByViewer: post.BookmarkedByViewer,
		CreatedAt:          post.CreatedAt,
		UpdatedAt:          post.UpdatedAt,
	}
}

// ToPostResponses maps a slice of post models
func ToPostResponses(posts []*models.Post) []PostResponse {
	responses := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, ToPostResponse(post))
	}
	return responses
}

// ToCommentResponse maps a comment model to its response DTO
func ToCommentResponse(comment *models.Comment) CommentResponse {
	return CommentResponse{
		ID:     comment.ID,
		PostID: comment.PostID,
		Author: PostAuthor{
			ID:        comment.AuthorID,
			Username:  comment.AuthorUsername,
			AvatarURL: comment.AuthorAvatarURL,
		},
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}
