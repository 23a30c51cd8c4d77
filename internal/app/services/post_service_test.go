package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogsphere/blogsphere/internal/app/models"
	"github.com/blogsphere/blogsphere/internal/app/models/dto"
	"github.com/blogsphere/blogsphere/internal/app/services"
	"github.com/blogsphere/blogsphere/internal/pkg/apperrors"
)

type postFixture struct {
	posts     *fakePostStore
	reactions *fakeReactionStore
	comments  *fakeCommentStore
	users     *fakeUserStore
	notifs    *fakeNotificationStore
	service   services.PostService
}

func newPostFixture() *postFixture {
	f := &postFixture{
		posts:     newFakePostStore(),
		reactions: newFakeReactionStore(),
		comments:  newFakeCommentStore(),
		users:     newFakeUserStore(),
		notifs:    newFakeNotificationStore(),
	}
	notification := services.NewNotificationService(
		f.notifs, newFakeSubscriptionStore(), f.users, &fakePushSender{}, zerolog.Nop(),
	)
	f.service = services.NewPostService(
		f.posts, f.reactions, f.comments, f.users, notification, zerolog.Nop(),
	)
	return f
}

func TestCreatePost(t *testing.T) {
	t.Run("NewPostEntersPendingQueue", func(t *testing.T) {
		f := newPostFixture()
		author := f.users.add(&models.User{Email: "a@x.com", Username: "alice"})

		created, err := f.service.Create(context.Background(), author.ID, &dto.CreatePostRequest{
			Title:   "Hello",
			Content: "First post",
		})
		require.NoError(t, err)

		stored, err := f.posts.GetByID(context.Background(), created.ID, 0)
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusPending, stored.Status)
	})

	t.Run("CategoryIsStoredWithThePost", func(t *testing.T) {
		f := newPostFixture()
		author := f.users.add(&models.User{Email: "a@x.com", Username: "alice"})

		created, err := f.service.Create(context.Background(), author.ID, &dto.CreatePostRequest{
			Title:    "Hello",
			Content:  "First post",
			Category: "  Technology ",
		})
		require.NoError(t, err)
		assert.Equal(t, "Technology", created.Category)

		stored, err := f.posts.GetByID(context.Background(), created.ID, 0)
		require.NoError(t, err)
		assert.Equal(t, "Technology", stored.Category)
	})

	t.Run("IncompleteProfileCannotPost", func(t *testing.T) {
		f := newPostFixture()
		author := f.users.add(&models.User{Email: "a@x.com"}) // no username yet

		_, err := f.service.Create(context.Background(), author.ID, &dto.CreatePostRequest{
			Title:   "Hello",
			Content: "First post",
		})
		assert.ErrorIs(t, err, apperrors.ErrProfileNotSet)
	})

	t.Run("BlankContentRejected", func(t *testing.T) {
		f := newPostFixture()
		author := f.users.add(&models.User{Email: "a@x.com", Username: "alice"})

		_, err := f.service.Create(context.Background(), author.ID, &dto.CreatePostRequest{
			Title:   "Hello",
			Content: "   ",
		})
		assert.ErrorIs(t, err, apperrors.ErrEmptyContent)
	})
}

func TestUpdatePost(t *testing.T) {
	f := newPostFixture()
	author := f.users.add(&models.User{Email: "a@x.com", Username: "alice"})
	other := f.users.add(&models.User{Email: "b@x.com", Username: "bob"})
	post := f.posts.add(&models.Post{AuthorID: author.ID, Title: "Original", Content: "Body"})

	t.Run("OnlyAuthorCanEdit", func(t *testing.T) {
		_, err := f.service.Update(context.Background(), post.ID, other.ID, &dto.UpdatePostRequest{
			Title:   "Hijacked",
			Content: "Body",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("IdenticalEditRejected", func(t *testing.T) {
		_, err := f.service.Update(context.Background(), post.ID, author.ID, &dto.UpdatePostRequest{
			Title:   "Original",
			Content: "Body",
		})
		assert.ErrorIs(t, err, apperrors.ErrPostUnchanged)
	})

	t.Run("EditMarksPostEdited", func(t *testing.T) {
		updated, err := f.service.Update(context.Background(), post.ID, author.ID, &dto.UpdatePostRequest{
			Title:   "Revised",
			Content: "Body",
		})
		require.NoError(t, err)
		assert.Equal(t, "Revised", updated.Title)
		assert.True(t, updated.IsEdited)
	})

	t.Run("ChangingOnlyTheCategoryIsAnEdit", func(t *testing.T) {
		updated, err := f.service.Update(context.Background(), post.ID, author.ID, &dto.UpdatePostRequest{
			Title:    "Revised",
			Content:  "Body",
			Category: "Travel",
		})
		require.NoError(t, err)
		assert.Equal(t, "Travel", updated.Category)

		_, err = f.service.Update(context.Background(), post.ID, author.ID, &dto.UpdatePostRequest{
			Title:    "Revised",
			Content:  "Body",
			Category: "Travel",
		})
		assert.ErrorIs(t, err, apperrors.ErrPostUnchanged)
	})
}

func TestDeletePost(t *testing.T) {
	t.Run("StrangerCannotDelete", func(t *testing.T) {
		f := newPostFixture()
		author := f.users.add(&models.User{Email: "a@x.com", Username: "alice"})
		other := f.users.add(&models.User{Email: "b@x.com", Username: "bob"})
		post := f.posts.add(&models.Post{AuthorID: author.ID, Title: "T", Content: "C"})

		err := f.service.Delete(context.Background(), post.ID, other.ID)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("AdminCanDelete", func(t *testing.T) {
		f := newPostFixture()
		author := f.users.add(&models.User{Email: "a@x.com", Username: "alice"})
		admin := f.users.add(&models.User{Email: "admin@x.com", Username: "admin", Role: models.RoleAdmin})
		post := f.posts.add(&models.Post{AuthorID: author.ID, Title: "T", Content: "C"})

		require.NoError(t, f.service.Delete(context.Background(), post.ID, admin.ID))

		_, err := f.service.GetByID(context.Background(), post.ID, 0)
		assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
	})
}

func TestLikeNotifications(t *testing.T) {
	t.Run("FirstLikeNotifiesAuthorOnce", func(t *testing.T) {
		f := newPostFixture()
		author := f.users.add(&models.User{Email: "a@x.com", Username: "alice"})
		fan := f.users.add(&models.User{Email: "b@x.com", Username: "bob"})
		post := f.posts.add(&models.Post{AuthorID: author.ID, Title: "Liked", Content: "C"})

		require.NoError(t, f.service.Like(context.Background(), post.ID, fan.ID))
		require.NoError(t, f.service.Like(context.Background(), post.ID, fan.ID))

		got := f.notifs.forRecipient(author.ID)
		require.Len(t, got, 1)
		assert.Equal(t, models.NotificationLike, got[0].Type)
		assert.Equal(t, "Liked", got[0].PostTitle)
		require.NotNil(t, got[0].PostID)
		assert.Equal(t, post.ID, *got[0].PostID)
	})

	t.Run("SelfLikeStaysSilent", func(t *testing.T) {
		f := newPostFixture()
		author := f.users.add(&models.User{Email: "a@x.com", Username: "alice"})
		post := f.posts.add(&models.Post{AuthorID: author.ID, Title: "T", Content: "C"})

		require.NoError(t, f.service.Like(context.Background(), post.ID, author.ID))
		assert.Empty(t, f.notifs.forRecipient(author.ID))
	})

	t.Run("UnlikeThenRelikeNotifiesAgain", func(t *testing.T) {
		f := newPostFixture()
		author := f.users.add(&models.User{Email: "a@x.com", Username: "alice"})
		fan := f.users.add(&models.User{Email: "b@x.com", Username: "bob"})
		post := f.posts.add(&models.Post{AuthorID: author.ID, Title: "T", Content: "C"})

		require.NoError(t, f.service.Like(context.Background(), post.ID, fan.ID))
		require.NoError(t, f.service.Unlike(context.Background(), post.ID, fan.ID))
		require.NoError(t, f.service.Like(context.Background(), post.ID, fan.ID))

		assert.Len(t, f.notifs.forRecipient(author.ID), 2)
	})

	t.Run("RepostAndBookmarkNeverNotify", func(t *testing.T) {
		f := newPostFixture()
		author := f.users.add(&models.User{Email: "a@x.com", Username: "alice"})
		fan := f.users.add(&models.User{Email: "b@x.com", Username: "bob"})
		post := f.posts.add(&models.Post{AuthorID: author.ID, Title: "T", Content: "C"})

		require.NoError(t, f.service.Repost(context.Background(), post.ID, fan.ID))
		require.NoError(t, f.service.Bookmark(context.Background(), post.ID, fan.ID))

		assert.Empty(t, f.notifs.forRecipient(author.ID))
	})
}

func TestComments(t *testing.T) {
	f := newPostFixture()
	author := f.users.add(&models.User{Email: "a@x.com", Username: "alice"})
	reader := f.users.add(&models.User{Email: "b@x.com", Username: "bob"})
	post := f.posts.add(&models.Post{AuthorID: author.ID, Title: "Discussed", Content: "C"})

	first, err := f.service.AddComment(context.Background(), post.ID, reader.ID, &dto.CreateCommentRequest{Content: "first"})
	require.NoError(t, err)
	second, err := f.service.AddComment(context.Background(), post.ID, reader.ID, &dto.CreateCommentRequest{Content: "second"})
	require.NoError(t, err)

	t.Run("CommentsComeBackInOrder", func(t *testing.T) {
		list, err := f.service.ListComments(context.Background(), post.ID)
		require.NoError(t, err)
		require.Len(t, list.Comments, 2)
		assert.Equal(t, first.ID, list.Comments[0].ID)
		assert.Equal(t, second.ID, list.Comments[1].ID)
	})

	t.Run("EveryCommentNotifiesTheAuthor", func(t *testing.T) {
		got := f.notifs.forRecipient(author.ID)
		require.Len(t, got, 2)
		assert.Equal(t, models.NotificationComment, got[0].Type)
		assert.Equal(t, "Discussed", got[0].PostTitle)
	})

	t.Run("BlankCommentRejected", func(t *testing.T) {
		_, err := f.service.AddComment(context.Background(), post.ID, reader.ID, &dto.CreateCommentRequest{Content: "  "})
		assert.ErrorIs(t, err, apperrors.ErrEmptyContent)
	})
}

func TestFeedPagination(t *testing.T) {
	f := newPostFixture()
	author := f.users.add(&models.User{Email: "a@x.com", Username: "alice"})

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		f.posts.add(&models.Post{
			AuthorID:  author.ID,
			Title:     "Post",
			Content:   "Body",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	t.Run("NoDuplicatesOrGapsAcrossPages", func(t *testing.T) {
		seen := make(map[int64]bool)
		cursor := ""
		var pages int
		for {
			page, err := f.service.Feed(context.Background(), 0, services.FeedModeGlobal, "", cursor, 0)
			require.NoError(t, err)
			for _, p := range page.Posts {
				assert.False(t, seen[p.ID], "post %d returned twice", p.ID)
				seen[p.ID] = true
			}
			pages++
			if page.NextCursor == "" {
				break
			}
			cursor = page.NextCursor
		}
		assert.Equal(t, 25, len(seen))
		assert.Equal(t, 3, pages)
	})

	t.Run("PagesAreNewestFirst", func(t *testing.T) {
		page, err := f.service.Feed(context.Background(), 0, services.FeedModeGlobal, "", "", 0)
		require.NoError(t, err)
		require.Len(t, page.Posts, 10)
		for i := 1; i < len(page.Posts); i++ {
			assert.True(t, !page.Posts[i].CreatedAt.After(page.Posts[i-1].CreatedAt))
		}
	})

	t.Run("CustomLimitSetsPageSize", func(t *testing.T) {
		page, err := f.service.Feed(context.Background(), 0, services.FeedModeGlobal, "", "", 7)
		require.NoError(t, err)
		assert.Len(t, page.Posts, 7)
		assert.NotEmpty(t, page.NextCursor)
	})

	t.Run("OversizedLimitClamped", func(t *testing.T) {
		page, err := f.service.Feed(context.Background(), 0, services.FeedModeGlobal, "", "", 100)
		require.NoError(t, err)
		// 25 posts fit under the 50-post cap, so everything comes back at once
		assert.Len(t, page.Posts, 25)
		assert.Empty(t, page.NextCursor)
	})

	t.Run("MalformedCursorRejected", func(t *testing.T) {
		_, err := f.service.Feed(context.Background(), 0, services.FeedModeGlobal, "", "not-a-cursor", 0)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("UnknownModeRejected", func(t *testing.T) {
		_, err := f.service.Feed(context.Background(), 0, "spicy", "", "", 0)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})
}

func TestFeedSearch(t *testing.T) {
	f := newPostFixture()
	author := f.users.add(&models.User{Email: "a@x.com", Username: "alice"})

	byTitle := f.posts.add(&models.Post{AuthorID: author.ID, Title: "Gardening tips", Content: "Soil"})
	byCategory := f.posts.add(&models.Post{AuthorID: author.ID, Title: "Weekend notes", Content: "Pots", Category: "gardening"})
	f.posts.add(&models.Post{AuthorID: author.ID, Title: "Unrelated", Content: "Nothing here"})

	page, err := f.service.Feed(context.Background(), 0, services.FeedModeGlobal, "garden", "", 0)
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)

	ids := []int64{page.Posts[0].ID, page.Posts[1].ID}
	assert.Contains(t, ids, byTitle.ID)
	assert.Contains(t, ids, byCategory.ID)
}

func TestTrendingFeed(t *testing.T) {
	f := newPostFixture()
	author := f.users.add(&models.User{Email: "a@x.com", Username: "alice"})

	// score = views + 5 * likes
	viewsOnly := f.posts.add(&models.Post{AuthorID: author.ID, Title: "views", Content: "C", Views: 10})
	likesOnly := f.posts.add(&models.Post{AuthorID: author.ID, Title: "likes", Content: "C", LikeCount: 3})
	mixed := f.posts.add(&models.Post{AuthorID: author.ID, Title: "mixed", Content: "C", Views: 5, LikeCount: 1})

	page, err := f.service.Feed(context.Background(), 0, services.FeedModeTrending, "", "", 0)
	require.NoError(t, err)
	require.Len(t, page.Posts, 3)

	assert.Equal(t, likesOnly.ID, page.Posts[0].ID) // score 15
	assert.Equal(t, mixed.ID, page.Posts[1].ID)     // score 10, higher id than viewsOnly
	assert.Equal(t, viewsOnly.ID, page.Posts[2].ID) // score 10
}

func TestFollowingFeed(t *testing.T) {
	f := newPostFixture()
	followed := f.users.add(&models.User{Email: "a@x.com", Username: "alice"})
	stranger := f.users.add(&models.User{Email: "b@x.com", Username: "bob"})
	viewer := f.users.add(&models.User{Email: "c@x.com", Username: "carol"})

	f.posts.follow(viewer.ID, followed.ID)
	wanted := f.posts.add(&models.Post{AuthorID: followed.ID, Title: "wanted", Content: "C"})
	f.posts.add(&models.Post{AuthorID: stranger.ID, Title: "noise", Content: "C"})

	page, err := f.service.Feed(context.Background(), viewer.ID, services.FeedModeFollowing, "", "", 0)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, wanted.ID, page.Posts[0].ID)
}

func TestRecordView(t *testing.T) {
	f := newPostFixture()
	author := f.users.add(&models.User{Email: "a@x.com", Username: "alice"})
	post := f.posts.add(&models.Post{AuthorID: author.ID, Title: "T", Content: "C"})

	views, err := f.service.RecordView(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), views)

	views, err = f.service.RecordView(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), views)

	_, err = f.service.RecordView(context.Background(), 9999)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}
