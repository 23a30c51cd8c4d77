package services_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogsphere/blogsphere/internal/app/models"
	"github.com/blogsphere/blogsphere/internal/app/models/dto"
	"github.com/blogsphere/blogsphere/internal/app/services"
	"github.com/blogsphere/blogsphere/internal/pkg/apperrors"
)

type userFixture struct {
	users   *fakeUserStore
	posts   *fakePostStore
	follows *fakeFollowStore
	notifs  *fakeNotificationStore
	service services.UserService
}

func newUserFixture() *userFixture {
	f := &userFixture{
		users:   newFakeUserStore(),
		posts:   newFakePostStore(),
		follows: newFakeFollowStore(),
		notifs:  newFakeNotificationStore(),
	}
	notification := services.NewNotificationService(
		f.notifs, newFakeSubscriptionStore(), f.users, &fakePushSender{}, zerolog.Nop(),
	)
	f.service = services.NewUserService(f.users, f.posts, f.follows, notification, zerolog.Nop())
	return f
}

func TestProfileSetup(t *testing.T) {
	t.Run("FirstSetupSucceeds", func(t *testing.T) {
		f := newUserFixture()
		user := f.users.add(&models.User{Email: "a@x.com"})

		me, err := f.service.SetupProfile(context.Background(), user.ID, &dto.ProfileSetupRequest{
			FullName: "Alice Smith",
			Username: "Alice",
		})
		require.NoError(t, err)
		assert.Equal(t, "alice", me.Username)
		assert.True(t, me.ProfileComplete)
	})

	t.Run("SecondSetupRejected", func(t *testing.T) {
		f := newUserFixture()
		user := f.users.add(&models.User{Email: "a@x.com", Username: "alice"})

		_, err := f.service.SetupProfile(context.Background(), user.ID, &dto.ProfileSetupRequest{
			FullName: "Alice Again",
			Username: "alice2",
		})
		assert.ErrorIs(t, err, apperrors.ErrProfileAlreadySet)
	})

	t.Run("TakenUsernameConflicts", func(t *testing.T) {
		f := newUserFixture()
		f.users.add(&models.User{Email: "a@x.com", Username: "alice"})
		user := f.users.add(&models.User{Email: "b@x.com"})

		_, err := f.service.SetupProfile(context.Background(), user.ID, &dto.ProfileSetupRequest{
			FullName: "Bob",
			Username: "ALICE",
		})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("UpdateBeforeSetupRejected", func(t *testing.T) {
		f := newUserFixture()
		user := f.users.add(&models.User{Email: "a@x.com"})

		_, err := f.service.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{FullName: "Anon"})
		assert.ErrorIs(t, err, apperrors.ErrProfileNotSet)
	})
}

func TestFollow(t *testing.T) {
	t.Run("SelfFollowRejected", func(t *testing.T) {
		f := newUserFixture()
		user := f.users.add(&models.User{Email: "a@x.com", Username: "alice"})

		assert.ErrorIs(t, f.service.Follow(context.Background(), user.ID, user.ID), apperrors.ErrCannotFollowSelf)
	})

	t.Run("FirstFollowNotifies", func(t *testing.T) {
		f := newUserFixture()
		alice := f.users.add(&models.User{Email: "a@x.com", Username: "alice"})
		bob := f.users.add(&models.User{Email: "b@x.com", Username: "bob"})

		require.NoError(t, f.service.Follow(context.Background(), bob.ID, alice.ID))
		require.NoError(t, f.service.Follow(context.Background(), bob.ID, alice.ID))

		got := f.notifs.forRecipient(alice.ID)
		require.Len(t, got, 1)
		assert.Equal(t, models.NotificationFollow, got[0].Type)
		assert.Nil(t, got[0].PostID)
	})

	t.Run("UnknownTargetRejected", func(t *testing.T) {
		f := newUserFixture()
		bob := f.users.add(&models.User{Email: "b@x.com", Username: "bob"})

		assert.ErrorIs(t, f.service.Follow(context.Background(), bob.ID, 999), apperrors.ErrUserNotFound)
	})

	t.Run("UnfollowIsIdempotent", func(t *testing.T) {
		f := newUserFixture()
		alice := f.users.add(&models.User{Email: "a@x.com", Username: "alice"})
		bob := f.users.add(&models.User{Email: "b@x.com", Username: "bob"})

		require.NoError(t, f.service.Follow(context.Background(), bob.ID, alice.ID))
		require.NoError(t, f.service.Unfollow(context.Background(), bob.ID, alice.ID))
		require.NoError(t, f.service.Unfollow(context.Background(), bob.ID, alice.ID))
	})
}

func TestPinPost(t *testing.T) {
	t.Run("OwnPostPins", func(t *testing.T) {
		f := newUserFixture()
		alice := f.users.add(&models.User{Email: "a@x.com", Username: "alice"})
		post := f.posts.add(&models.Post{AuthorID: alice.ID, Title: "T", Content: "C"})

		require.NoError(t, f.service.PinPost(context.Background(), alice.ID, post.ID))

		stored, err := f.users.GetByID(context.Background(), alice.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.PinnedPostID)
		assert.Equal(t, post.ID, *stored.PinnedPostID)
	})

	t.Run("ForeignPostRejected", func(t *testing.T) {
		f := newUserFixture()
		alice := f.users.add(&models.User{Email: "a@x.com", Username: "alice"})
		bob := f.users.add(&models.User{Email: "b@x.com", Username: "bob"})
		post := f.posts.add(&models.Post{AuthorID: alice.ID, Title: "T", Content: "C"})

		assert.ErrorIs(t, f.service.PinPost(context.Background(), bob.ID, post.ID), apperrors.ErrPinnedPostNotOwned)
	})

	t.Run("SecondPinReplacesFirst", func(t *testing.T) {
		f := newUserFixture()
		alice := f.users.add(&models.User{Email: "a@x.com", Username: "alice"})
		first := f.posts.add(&models.Post{AuthorID: alice.ID, Title: "First", Content: "C"})
		second := f.posts.add(&models.Post{AuthorID: alice.ID, Title: "Second", Content: "C"})

		require.NoError(t, f.service.PinPost(context.Background(), alice.ID, first.ID))
		require.NoError(t, f.service.PinPost(context.Background(), alice.ID, second.ID))

		stored, err := f.users.GetByID(context.Background(), alice.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.PinnedPostID)
		assert.Equal(t, second.ID, *stored.PinnedPostID)
	})

	t.Run("UnpinClearsAndIsIdempotent", func(t *testing.T) {
		f := newUserFixture()
		alice := f.users.add(&models.User{Email: "a@x.com", Username: "alice"})
		post := f.posts.add(&models.Post{AuthorID: alice.ID, Title: "T", Content: "C"})

		require.NoError(t, f.service.PinPost(context.Background(), alice.ID, post.ID))
		require.NoError(t, f.service.UnpinPost(context.Background(), alice.ID))
		require.NoError(t, f.service.UnpinPost(context.Background(), alice.ID))

		stored, err := f.users.GetByID(context.Background(), alice.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.PinnedPostID)
	})
}

func TestGetProfile(t *testing.T) {
	f := newUserFixture()
	alice := f.users.add(&models.User{Email: "a@x.com", Username: "alice"})
	bob := f.users.add(&models.User{Email: "b@x.com", Username: "bob"})

	f.posts.add(&models.Post{AuthorID: alice.ID, Title: "Older", Content: "C"})
	pinned := f.posts.add(&models.Post{AuthorID: alice.ID, Title: "Pinned", Content: "C"})
	require.NoError(t, f.service.PinPost(context.Background(), alice.ID, pinned.ID))
	require.NoError(t, f.service.Follow(context.Background(), bob.ID, alice.ID))

	t.Run("PinnedPostLeadsTheList", func(t *testing.T) {
		profile, err := f.service.GetProfile(context.Background(), "alice", bob.ID)
		require.NoError(t, err)

		require.NotNil(t, profile.PinnedPost)
		assert.Equal(t, pinned.ID, profile.PinnedPost.ID)
		require.NotEmpty(t, profile.Posts)
		assert.Equal(t, pinned.ID, profile.Posts[0].ID)
		assert.True(t, profile.Posts[0].IsPinned)
	})

	t.Run("CountsAndViewerFlag", func(t *testing.T) {
		profile, err := f.service.GetProfile(context.Background(), "alice", bob.ID)
		require.NoError(t, err)

		assert.Equal(t, int64(1), profile.FollowerCount)
		assert.Equal(t, int64(2), profile.PostCount)
		assert.True(t, profile.FollowedByViewer)
	})

	t.Run("UnknownUsername", func(t *testing.T) {
		_, err := f.service.GetProfile(context.Background(), "ghost", 0)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}
