package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/blogsphere/blogsphere/internal/app/models/dto"
	"github.com/blogsphere/blogsphere/internal/pkg/apperrors"
)

// UserService defines the interface for profile and social graph operations
type UserService interface {
	GetMe(ctx context.Context, userID int64) (*dto.UserResponse, error)
	SetupProfile(ctx context.Context, userID int64, req *dto.ProfileSetupRequest) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	GetProfile(ctx context.Context, username string, viewerID int64) (*dto.ProfileResponse, error)
	Follow(ctx context.Context, followerID, followeeID int64) error
	Unfollow(ctx context.Context, followerID, followeeID int64) error
	PinPost(ctx context.Context, userID, postID int64) error
	UnpinPost(ctx context.Context, userID int64) error
}

type userServiceImpl struct {
	userStore    UserStore
	postStore    PostStore
	followStore  FollowStore
	notification NotificationService
	logger       zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userStore UserStore,
	postStore PostStore,
	followStore FollowStore,
	notification NotificationService,
	logger zerolog.Logger,
) UserService {
	return &userServiceImpl{
		userStore:    userStore,
		postStore:    postStore,
		followStore:  followStore,
		notification: notification,
		logger:       logger,
	}
}

// GetMe retrieves the caller's own account
func (s *userServiceImpl) GetMe(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := dto.ToUserResponse(user)
	return &response, nil
}

// SetupProfile completes the one-time profile setup. Running it again once
// a username is set fails with ErrProfileAlreadySet.
func (s *userServiceImpl) SetupProfile(ctx context.Context, userID int64, req *dto.ProfileSetupRequest) (*dto.UserResponse, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.ProfileComplete() {
		return nil, apperrors.ErrProfileAlreadySet
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))

	err = s.userStore.SetupProfile(ctx, userID, strings.TrimSpace(req.FullName), username, req.Bio, req.Location)
	if err != nil {
		if errors.Is(err, apperrors.ErrUsernameTaken) {
			return nil, apperrors.NewConflictError("this username is already taken")
		}
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Str("username", username).Msg("Profile setup completed")

	return s.GetMe(ctx, userID)
}

// UpdateProfile updates the mutable profile fields
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.ProfileComplete() {
		return nil, apperrors.ErrProfileNotSet
	}

	err = s.userStore.UpdateProfile(ctx, userID, strings.TrimSpace(req.FullName), req.Bio, req.Location, req.AvatarURL)
	if err != nil {
		return nil, err
	}

	return s.GetMe(ctx, userID)
}

// GetProfile retrieves a public profile by username, with the pinned post
// surfaced ahead of the rest of the user's posts.
func (s *userServiceImpl) GetProfile(ctx context.Context, username string, viewerID int64) (*dto.ProfileResponse, error) {
	user, err := s.userStore.GetByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return nil, err
	}

	followers, err := s.followStore.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	following, err := s.followStore.CountFollowing(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	postCount, err := s.postStore.CountByAuthor(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	followedByViewer := false
	if viewerID != 0 && viewerID != user.ID {
		followedByViewer, err = s.followStore.Exists(ctx, viewerID, user.ID)
		if err != nil {
			return nil, err
		}
	}

	posts, err := s.postStore.ListByAuthor(ctx, user.ID, viewerID, user.PinnedPostID)
	if err != nil {
		return nil, err
	}

	response := &dto.ProfileResponse{
		User:             dto.ToUserResponse(user),
		FollowerCount:    followers,
		FollowingCount:   following,
		PostCount:        postCount,
		FollowedByViewer: followedByViewer,
		Posts:            dto.ToPostResponses(posts),
	}

	if user.PinnedPostID != nil {
		for i := range response.Posts {
			if response.Posts[i].ID == *user.PinnedPostID {
				response.Posts[i].IsPinned = true
				pinned := response.Posts[i]
				response.PinnedPost = &pinned
				break
			}
		}
	}

	return response, nil
}

// Follow adds a follow edge. A notification goes out only when the edge is
// newly created, so repeated follows stay silent.
func (s *userServiceImpl) Follow(ctx context.Context, followerID, followeeID int64) error {
	if followerID == followeeID {
		return apperrors.ErrCannotFollowSelf
	}

	if _, err := s.userStore.GetByID(ctx, followeeID); err != nil {
		return err
	}

	created, err := s.followStore.Add(ctx, followerID, followeeID)
	if err != nil {
		return err
	}

	if created {
		s.notification.NotifyFollow(ctx, followeeID, followerID)
	}

	return nil
}

// Unfollow removes a follow edge; removing a missing edge is a no-op
func (s *userServiceImpl) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	if followerID == followeeID {
		return apperrors.ErrCannotFollowSelf
	}

	_, err := s.followStore.Remove(ctx, followerID, followeeID)
	return err
}

// PinPost pins one of the caller's own posts to their profile. Pinning a
// post they do not own fails; pinning a second post replaces the first.
func (s *userServiceImpl) PinPost(ctx context.Context, userID, postID int64) error {
	post, err := s.postStore.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}

	if post.AuthorID != userID {
		return apperrors.ErrPinnedPostNotOwned
	}

	return s.userStore.SetPinnedPost(ctx, userID, &postID)
}

// UnpinPost clears the profile pin; clearing an empty pin is a no-op
func (s *userServiceImpl) UnpinPost(ctx context.Context, userID int64) error {
	return s.userStore.SetPinnedPost(ctx, userID, nil)
}
