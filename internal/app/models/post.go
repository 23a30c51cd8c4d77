package models

import "time"

// Post represents a published blog post
type Post struct {
	ID        int64      `json:"id" db:"id"`
	AuthorID  int64      `json:"authorId" db:"author_id"`
	Title     string     `json:"title" db:"title"`
	Content   string     `json:"content" db:"content"`
	Category  string     `json:"category" db:"category"`
	ImageURL  string     `json:"imageUrl" db:"image_url"`
	Status    PostStatus `json:"status" db:"status"`
	Views     int64      `json:"views" db:"views"`
	IsEdited  bool       `json:"isEdited" db:"is_edited"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`

	// Denormalized author fields populated on read
	AuthorUsername  string `json:"authorUsername" db:"author_username"`
	AuthorFullName  string `json:"authorFullName" db:"author_full_name"`
	AuthorAvatarURL string `json:"authorAvatarUrl" db:"author_avatar_url"`

	// Aggregates populated on read
	LikeCount     int64 `json:"likeCount" db:"like_count"`
	RepostCount   int64 `json:"repostCount" db:"repost_count"`
	BookmarkCount int64 `json:"bookmarkCount" db:"bookmark_count"`
	CommentCount  int64 `json:"commentCount" db:"comment_count"`

	// Viewer-relative flags populated on read
	LikedByViewer      bool `json:"likedByViewer" db:"liked_by_viewer"`
	RepostedByViewer   bool `json:"repostedByViewer" db:"reposted_by_viewer"`
	BookmarkedByViewer bool `json:"bookmarkedByViewer" db:"bookmarked_by_viewer"`
}

// TrendingScore ranks a post for the trending feed
func (p *Post) TrendingScore() int64 {
	return p.Views + 5*p.LikeCount
}

// Reaction is a (post, user, kind) edge. At most one row exists per triple.
type Reaction struct {
	PostID    int64        `db:"post_id"`
	UserID    int64        `db:"user_id"`
	Kind      ReactionKind `db:"kind"`
	CreatedAt time.Time    `db:"created_at"`
}

// Comment represents a comment on a post
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	AuthorUsername  string `json:"authorUsername" db:"author_username"`
	AuthorAvatarURL string `json:"authorAvatarUrl" db:"author_avatar_url"`
}
