package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogsphere/blogsphere/internal/app/models"
	"github.com/blogsphere/blogsphere/internal/app/services"
)

func TestReadTimeMinutes(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int64
	}{
		{"Empty", "", 0},
		{"WhitespaceOnly", "   \n\t ", 0},
		{"SingleWord", "hello", 1},
		{"ExactlyOneMinute", strings.Repeat("word ", 200), 1},
		{"JustOverOneMinute", strings.Repeat("word ", 201), 2},
		{"TwoMinutes", strings.Repeat("word ", 400), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.ReadTimeMinutes(tt.content))
		})
	}
}

// monthlyReactionStore layers canned per-month aggregates over the basic fake
type monthlyReactionStore struct {
	*fakeReactionStore
	total   int64
	monthly map[string]int64
}

func (s *monthlyReactionStore) CountReceivedByAuthor(_ context.Context, _ int64, kind models.ReactionKind) (int64, error) {
	if kind == models.ReactionLike {
		return s.total, nil
	}
	return 0, nil
}

func (s *monthlyReactionStore) MonthlyReceivedByAuthor(_ context.Context, _ int64, _ models.ReactionKind, _ int) (map[string]int64, error) {
	return s.monthly, nil
}

type monthlyCommentStore struct {
	*fakeCommentStore
	total   int64
	monthly map[string]int64
}

func (s *monthlyCommentStore) CountReceivedByAuthor(_ context.Context, _ int64) (int64, error) {
	return s.total, nil
}

func (s *monthlyCommentStore) MonthlyReceivedByAuthor(_ context.Context, _ int64, _ int) (map[string]int64, error) {
	return s.monthly, nil
}

func TestAnalyticsForUser(t *testing.T) {
	users := newFakeUserStore()
	posts := newFakePostStore()
	follows := newFakeFollowStore()
	author := users.add(&models.User{Email: "a@x.com", Username: "alice"})
	fan := users.add(&models.User{Email: "b@x.com", Username: "bob"})

	_, err := follows.Add(context.Background(), fan.ID, author.ID)
	require.NoError(t, err)

	// Trending scores: quiet = 3, loud = 100 + 5*4 = 120
	posts.add(&models.Post{AuthorID: author.ID, Title: "quiet", Content: strings.Repeat("word ", 200), Views: 3})
	loud := posts.add(&models.Post{AuthorID: author.ID, Title: "loud", Content: strings.Repeat("word ", 600), Views: 100, LikeCount: 4})

	reactions := &monthlyReactionStore{
		fakeReactionStore: newFakeReactionStore(),
		total:             4,
		monthly:           map[string]int64{"2026-07": 1, "2026-08": 3},
	}
	comments := &monthlyCommentStore{
		fakeCommentStore: newFakeCommentStore(),
		total:            2,
		monthly:          map[string]int64{"2026-08": 2},
	}

	service := services.NewAnalyticsService(posts, reactions, comments, follows, users, zerolog.Nop())

	got, err := service.ForUser(context.Background(), author.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(2), got.TotalPosts)
	assert.Equal(t, int64(103), got.TotalViews)
	assert.Equal(t, int64(4), got.TotalLikes)
	assert.Equal(t, int64(2), got.TotalComments)
	assert.Equal(t, int64(1), got.FollowerCount)
	assert.Equal(t, int64(0), got.FollowingCount)

	// Read times are 1 and 3 minutes
	assert.Equal(t, int64(2), got.AvgReadTimeMin)

	require.Len(t, got.TopPosts, 2)
	assert.Equal(t, loud.ID, got.TopPosts[0].PostID)
	assert.Equal(t, int64(120), got.TopPosts[0].TrendingScore)

	require.Len(t, got.EngagementByMonth, 2)
	assert.Equal(t, "2026-07", got.EngagementByMonth[0].Month)
	assert.Equal(t, int64(1), got.EngagementByMonth[0].Likes)
	assert.Equal(t, int64(0), got.EngagementByMonth[0].Comments)
	assert.Equal(t, "2026-08", got.EngagementByMonth[1].Month)
	assert.Equal(t, int64(3), got.EngagementByMonth[1].Likes)
	assert.Equal(t, int64(2), got.EngagementByMonth[1].Comments)
}
