package dto

import (
	"time"

	"github.com/blogsphere/blogsphere/internal/app/models"
)

// UserResponse represents basic user information
type UserResponse struct {
	ID              int64     `json:"id"`
	Email           string    `json:"email"`
	FullName        string    `json:"fullName"`
	Username        string    `json:"username"`
	Bio             string    `json:"bio"`
	Location        string    `json:"location"`
	AvatarURL       string    `json:"avatarUrl,omitempty"`
	Role            string    `json:"role"`
	ProfileComplete bool      `json:"profileComplete"`
	PinnedPostID    *int64    `json:"pinnedPostId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ProfileSetupRequest represents the one-time profile setup payload
type ProfileSetupRequest struct {
	FullName string `json:"fullName" binding:"required,max=100"`
	Username string `json:"username" binding:"required,min=3,max=30,alphanum"`
	Bio      string `json:"bio" binding:"max=500"`
	Location string `json:"location" binding:"max=100"`
}

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	FullName  string `json:"fullName" binding:"required,max=100"`
	Bio       string `json:"bio" binding:"max=500"`
	Location  string `json:"location" binding:"max=100"`
	AvatarURL string `json:"avatarUrl" binding:"omitempty,url"`
}

// ProfileResponse represents a public profile page
type ProfileResponse struct {
	User             UserResponse   `json:"user"`
	FollowerCount    int64          `json:"followerCount"`
	FollowingCount   int64          `json:"followingCount"`
	PostCount        int64          `json:"postCount"`
	FollowedByViewer bool           `json:"followedByViewer"`
	PinnedPost       *PostResponse  `json:"pinnedPost,omitempty"`
	Posts            []PostResponse `json:"posts"`
}

// PinRequest selects a post to pin to the profile
type PinRequest struct {
	PostID int64 `json:"postId" binding:"required,min=1"`
}

// ToUserResponse maps a user model to its response DTO
func ToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		FullName:        user.FullName,
		Username:        user.Username,
		Bio:             user.Bio,
		Location:        user.Location,
		AvatarURL:       user.AvatarURL,
		Role:            string(user.Role),
		ProfileComplete: user.ProfileComplete(),
		PinnedPostID:    user.PinnedPostID,
		CreatedAt:       user.CreatedAt,
	}
}
