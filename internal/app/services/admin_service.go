package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/blogsphere/blogsphere/internal/app/models"
	"github.com/blogsphere/blogsphere/internal/app/models/dto"
	"github.com/blogsphere/blogsphere/internal/pkg/apperrors"
	"github.com/blogsphere/blogsphere/internal/pkg/helpers"
)

const dashboardRecentCount = 5

// AdminService defines the interface for admin panel operations
type AdminService interface {
	Stats(ctx context.Context) (*dto.AdminStatsResponse, error)
	ListUsers(ctx context.Context, search string, page, size int) (*dto.AdminUserListResponse, error)
	DeleteUser(ctx context.Context, targetID, adminID int64) error
	ListPendingPosts(ctx context.Context, limit int) ([]dto.PostResponse, error)
	ModeratePost(ctx context.Context, postID int64, status models.PostStatus) error
}

type adminServiceImpl struct {
	userStore  UserStore
	postStore  PostStore
	tribeStore TribeStore
	logger     zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(userStore UserStore, postStore PostStore, tribeStore TribeStore, logger zerolog.Logger) AdminService {
	return &adminServiceImpl{
		userStore:  userStore,
		postStore:  postStore,
		tribeStore: tribeStore,
		logger:     logger,
	}
}

// Stats assembles the admin dashboard: totals, the five newest users and
// the five oldest pending posts.
func (s *adminServiceImpl) Stats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	totalUsers, err := s.userStore.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalPosts, err := s.postStore.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalTribes, err := s.tribeStore.Count(ctx)
	if err != nil {
		return nil, err
	}

	pendingCount, err := s.postStore.CountByStatus(ctx, models.PostStatusPending)
	if err != nil {
		return nil, err
	}

	recentUsers, _, err := s.userStore.List(ctx, "", 0, dashboardRecentCount)
	if err != nil {
		return nil, err
	}

	pendingPosts, err := s.postStore.ListPending(ctx, dashboardRecentCount)
	if err != nil {
		return nil, err
	}

	userResponses := make([]dto.UserResponse, 0, len(recentUsers))
	for _, user := range recentUsers {
		userResponses = append(userResponses, dto.ToUserResponse(user))
	}

	return &dto.AdminStatsResponse{
		TotalUsers:       totalUsers,
		TotalPosts:       totalPosts,
		TotalTribes:      totalTribes,
		PendingPostCount: pendingCount,
		RecentUsers:      userResponses,
		RecentPending:    dto.ToPostResponses(pendingPosts),
	}, nil
}

// ListUsers retrieves a page of users for the admin panel, optionally
// filtered by a name, username or email search
func (s *adminServiceImpl) ListUsers(ctx context.Context, search string, page, size int) (*dto.AdminUserListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	users, total, err := s.userStore.List(ctx, search, offset, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.ToUserResponse(user))
	}

	return &dto.AdminUserListResponse{
		Users:      responses,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// DeleteUser removes an account and everything it authored. Admins cannot
// delete themselves.
func (s *adminServiceImpl) DeleteUser(ctx context.Context, targetID, adminID int64) error {
	if targetID == adminID {
		return apperrors.NewBadRequestError("admins cannot delete their own account")
	}

	if err := s.userStore.Delete(ctx, targetID); err != nil {
		return err
	}

	s.logger.Info().Int64("targetID", targetID).Int64("adminID", adminID).Msg("User deleted by admin")
	return nil
}

// ListPendingPosts retrieves posts awaiting moderation, oldest first
func (s *adminServiceImpl) ListPendingPosts(ctx context.Context, limit int) ([]dto.PostResponse, error) {
	posts, err := s.postStore.ListPending(ctx, limit)
	if err != nil {
		return nil, err
	}
	return dto.ToPostResponses(posts), nil
}

// ModeratePost approves or rejects a pending post
func (s *adminServiceImpl) ModeratePost(ctx context.Context, postID int64, status models.PostStatus) error {
	if status != models.PostStatusApproved && status != models.PostStatusRejected {
		return apperrors.NewBadRequestError("moderation status must be approved or rejected")
	}

	if err := s.postStore.SetStatus(ctx, postID, status); err != nil {
		return err
	}

	s.logger.Info().Int64("postID", postID).Str("status", string(status)).Msg("Post moderated")
	return nil
}
