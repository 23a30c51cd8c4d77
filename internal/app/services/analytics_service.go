package services

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/blogsphere/blogsphere/internal/app/models"
	"github.com/blogsphere/blogsphere/internal/app/models/dto"
)

const (
	// Average adult reading speed used for estimated read times
	wordsPerMinute = 200

	topPostCount     = 5
	engagementMonths = 6
)

// AnalyticsService defines the interface for author analytics
type AnalyticsService interface {
	ForUser(ctx context.Context, userID int64) (*dto.AnalyticsResponse, error)
}

type analyticsServiceImpl struct {
	postStore     PostStore
	reactionStore ReactionStore
	commentStore  CommentStore
	followStore   FollowStore
	userStore     UserStore
	logger        zerolog.Logger
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(
	postStore PostStore,
	reactionStore ReactionStore,
	commentStore CommentStore,
	followStore FollowStore,
	userStore UserStore,
	logger zerolog.Logger,
) AnalyticsService {
	return &analyticsServiceImpl{
		postStore:     postStore,
		reactionStore: reactionStore,
		commentStore:  commentStore,
		followStore:   followStore,
		userStore:     userStore,
		logger:        logger,
	}
}

// ReadTimeMinutes estimates the read time of a text at 200 words per
// minute, rounded up. Empty text reads in zero minutes.
func ReadTimeMinutes(content string) int64 {
	words := int64(len(strings.Fields(content)))
	if words == 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

// ForUser aggregates the caller's authoring statistics
func (s *analyticsServiceImpl) ForUser(ctx context.Context, userID int64) (*dto.AnalyticsResponse, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts, err := s.postStore.ListByAuthor(ctx, userID, userID, user.PinnedPostID)
	if err != nil {
		return nil, err
	}

	totalLikes, err := s.reactionStore.CountReceivedByAuthor(ctx, userID, models.ReactionLike)
	if err != nil {
		return nil, err
	}

	totalReposts, err := s.reactionStore.CountReceivedByAuthor(ctx, userID, models.ReactionRepost)
	if err != nil {
		return nil, err
	}

	totalComments, err := s.commentStore.CountReceivedByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	followers, err := s.followStore.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}

	following, err := s.followStore.CountFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := &dto.AnalyticsResponse{
		TotalPosts:     int64(len(posts)),
		TotalLikes:     totalLikes,
		TotalReposts:   totalReposts,
		TotalComments:  totalComments,
		FollowerCount:  followers,
		FollowingCount: following,
		TopPosts:       []dto.PostAnalytics{},
	}

	var readTimeSum int64
	analytics := make([]dto.PostAnalytics, 0, len(posts))
	for _, post := range posts {
		response.TotalViews += post.Views
		readTime := ReadTimeMinutes(post.Content)
		readTimeSum += readTime
		analytics = append(analytics, dto.PostAnalytics{
			PostID:          post.ID,
			Title:           post.Title,
			Views:           post.Views,
			Likes:           post.LikeCount,
			Comments:        post.CommentCount,
			ReadTimeMinutes: readTime,
			TrendingScore:   post.TrendingScore(),
		})
	}

	if len(posts) > 0 {
		response.AvgReadTimeMin = readTimeSum / int64(len(posts))
	}

	sort.Slice(analytics, func(i, j int) bool {
		if analytics[i].TrendingScore != analytics[j].TrendingScore {
			return analytics[i].TrendingScore > analytics[j].TrendingScore
		}
		return analytics[i].PostID > analytics[j].PostID
	})
	if len(analytics) > topPostCount {
		analytics = analytics[:topPostCount]
	}
	response.TopPosts = analytics

	likesByMonth, err := s.reactionStore.MonthlyReceivedByAuthor(ctx, userID, models.ReactionLike, engagementMonths)
	if err != nil {
		return nil, err
	}

	commentsByMonth, err := s.commentStore.MonthlyReceivedByAuthor(ctx, userID, engagementMonths)
	if err != nil {
		return nil, err
	}

	months := make(map[string]bool)
	for m := range likesByMonth {
		months[m] = true
	}
	for m := range commentsByMonth {
		months[m] = true
	}

	keys := make([]string, 0, len(months))
	for m := range months {
		keys = append(keys, m)
	}
	sort.Strings(keys)

	engagement := make([]dto.MonthEngagement, 0, len(keys))
	for _, m := range keys {
		engagement = append(engagement, dto.MonthEngagement{
			Month:    m,
			Likes:    likesByMonth[m],
			Comments: commentsByMonth[m],
		})
	}
	response.EngagementByMonth = engagement

	return response, nil
}
