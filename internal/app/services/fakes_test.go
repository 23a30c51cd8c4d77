package services_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/blogsphere/blogsphere/internal/app/models"
	"github.com/blogsphere/blogsphere/internal/pkg/apperrors"
	"github.com/blogsphere/blogsphere/internal/pkg/helpers"
	"github.com/blogsphere/blogsphere/internal/pkg/webpush"
)

// In-memory fakes for the service store interfaces. They mirror the
// ordering and conflict semantics of the real repositories closely enough
// for the service-level behavior under test.

type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: make(map[int64]*models.User)}
}

func (s *fakeUserStore) add(user *models.User) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == 0 {
		user.ID = s.nextID
	}
	if user.ID >= s.nextID {
		s.nextID = user.ID + 1
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	s.users[user.ID] = user
	return user
}

func (s *fakeUserStore) Create(_ context.Context, email, passwordHash string, role models.RoleType) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	id := s.nextID
	s.nextID++
	s.users[id] = &models.User{ID: id, Email: email, Password: passwordHash, Role: role, CreatedAt: time.Now()}
	return id, nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) SetupProfile(_ context.Context, userID int64, fullName, username, bio, location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, u := range s.users {
		if id != userID && u.Username == username {
			return apperrors.ErrUsernameTaken
		}
	}
	user, ok := s.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.FullName = fullName
	user.Username = username
	user.Bio = bio
	user.Location = location
	return nil
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, userID int64, fullName, bio, location, avatarURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.FullName = fullName
	user.Bio = bio
	user.Location = location
	user.AvatarURL = avatarURL
	return nil
}

func (s *fakeUserStore) SetPinnedPost(_ context.Context, userID int64, postID *int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.PinnedPostID = postID
	return nil
}

func (s *fakeUserStore) List(_ context.Context, search string, offset uint64, limit int) ([]*models.User, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	needle := strings.ToLower(search)
	all := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		if needle != "" &&
			!strings.Contains(strings.ToLower(u.FullName), needle) &&
			!strings.Contains(strings.ToLower(u.Username), needle) &&
			!strings.Contains(strings.ToLower(u.Email), needle) {
			continue
		}
		copied := *u
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	total := int64(len(all))
	if int(offset) >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

func (s *fakeUserStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

func (s *fakeUserStore) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(s.users, userID)
	return nil
}

type fakeTokenStore struct {
	mu      sync.Mutex
	tokens  map[string]int64
	expires map[string]time.Time
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]int64), expires: make(map[string]time.Time)}
}

func (s *fakeTokenStore) Create(_ context.Context, token string, userID int64, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = userID
	s.expires[token] = expiresAt
	return nil
}

func (s *fakeTokenStore) GetUserID(_ context.Context, token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.tokens[token]
	if !ok {
		return 0, apperrors.ErrTokenNotFound
	}
	if time.Now().After(s.expires[token]) {
		return 0, apperrors.ErrTokenExpired
	}
	return userID, nil
}

func (s *fakeTokenStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	delete(s.expires, token)
	return nil
}

func (s *fakeTokenStore) DeleteForUser(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, id := range s.tokens {
		if id == userID {
			delete(s.tokens, token)
			delete(s.expires, token)
		}
	}
	return nil
}

type fakePostStore struct {
	mu     sync.Mutex
	nextID int64
	posts  map[int64]*models.Post
	// follower -> followee edges, used by ListFollowing
	follows map[[2]int64]bool
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{nextID: 1, posts: make(map[int64]*models.Post), follows: make(map[[2]int64]bool)}
}

func (s *fakePostStore) add(post *models.Post) *models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	if post.ID == 0 {
		post.ID = s.nextID
	}
	if post.ID >= s.nextID {
		s.nextID = post.ID + 1
	}
	if post.Status == "" {
		post.Status = models.PostStatusApproved
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	s.posts[post.ID] = post
	return post
}

func (s *fakePostStore) follow(followerID, followeeID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.follows[[2]int64{followerID, followeeID}] = true
}

func (s *fakePostStore) Create(_ context.Context, authorID int64, title, content, category, imageURL string, status models.PostStatus) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.posts[id] = &models.Post{
		ID:        id,
		AuthorID:  authorID,
		Title:     title,
		Content:   content,
		Category:  category,
		ImageURL:  imageURL,
		Status:    status,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return id, nil
}

func (s *fakePostStore) GetByID(_ context.Context, postID, _ int64) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	copied := *post
	return &copied, nil
}

func (s *fakePostStore) approved(search string) []*models.Post {
	var out []*models.Post
	for _, p := range s.posts {
		if p.Status != models.PostStatusApproved {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(search)) &&
			!strings.Contains(strings.ToLower(p.Content), strings.ToLower(search)) &&
			!strings.Contains(strings.ToLower(p.Category), strings.ToLower(search)) {
			continue
		}
		copied := *p
		out = append(out, &copied)
	}
	return out
}

func sortRecency(posts []*models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

func applyRecencyCursor(posts []*models.Post, cursor *helpers.Cursor) []*models.Post {
	if cursor == nil {
		return posts
	}
	var out []*models.Post
	for _, p := range posts {
		key := p.CreatedAt.UnixNano()
		if key < cursor.Key || (key == cursor.Key && p.ID < cursor.ID) {
			out = append(out, p)
		}
	}
	return out
}

func clip(posts []*models.Post, limit int) []*models.Post {
	if len(posts) > limit {
		return posts[:limit]
	}
	return posts
}

func (s *fakePostStore) ListGlobal(_ context.Context, _ int64, search string, cursor *helpers.Cursor, limit int) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	posts := s.approved(search)
	sortRecency(posts)
	return clip(applyRecencyCursor(posts, cursor), limit), nil
}

func (s *fakePostStore) ListFollowing(_ context.Context, viewerID int64, search string, cursor *helpers.Cursor, limit int) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var posts []*models.Post
	for _, p := range s.approved(search) {
		if s.follows[[2]int64{viewerID, p.AuthorID}] {
			posts = append(posts, p)
		}
	}
	sortRecency(posts)
	return clip(applyRecencyCursor(posts, cursor), limit), nil
}

func (s *fakePostStore) ListTrending(_ context.Context, _ int64, search string, cursor *helpers.Cursor, limit int) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	posts := s.approved(search)
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].TrendingScore() == posts[j].TrendingScore() {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].TrendingScore() > posts[j].TrendingScore()
	})
	if cursor != nil {
		var out []*models.Post
		for _, p := range posts {
			score := p.TrendingScore()
			if score < cursor.Key || (score == cursor.Key && p.ID < cursor.ID) {
				out = append(out, p)
			}
		}
		posts = out
	}
	return clip(posts, limit), nil
}

func (s *fakePostStore) ListByAuthor(_ context.Context, authorID, _ int64, pinnedPostID *int64) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var posts []*models.Post
	for _, p := range s.posts {
		if p.AuthorID == authorID {
			copied := *p
			posts = append(posts, &copied)
		}
	}
	sortRecency(posts)
	if pinnedPostID != nil {
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].ID == *pinnedPostID && posts[j].ID != *pinnedPostID
		})
	}
	return posts, nil
}

func (s *fakePostStore) ListBookmarked(_ context.Context, _ int64) ([]*models.Post, error) {
	return nil, nil
}

func (s *fakePostStore) ListPending(_ context.Context, limit int) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var posts []*models.Post
	for _, p := range s.posts {
		if p.Status == models.PostStatusPending {
			copied := *p
			posts = append(posts, &copied)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.Before(posts[j].CreatedAt) })
	return clip(posts, limit), nil
}

func (s *fakePostStore) ListRecentApproved(_ context.Context, limit int) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	posts := s.approved("")
	sortRecency(posts)
	return clip(posts, limit), nil
}

func (s *fakePostStore) Update(_ context.Context, postID int64, title, content, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return apperrors.ErrPostNotFound
	}
	post.Title = title
	post.Content = content
	post.Category = category
	post.IsEdited = true
	post.UpdatedAt = time.Now()
	return nil
}

func (s *fakePostStore) SetStatus(_ context.Context, postID int64, status models.PostStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return apperrors.ErrPostNotFound
	}
	post.Status = status
	return nil
}

func (s *fakePostStore) IncrementViews(_ context.Context, postID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return 0, apperrors.ErrPostNotFound
	}
	post.Views++
	return post.Views, nil
}

func (s *fakePostStore) Delete(_ context.Context, postID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[postID]; !ok {
		return apperrors.ErrPostNotFound
	}
	delete(s.posts, postID)
	return nil
}

func (s *fakePostStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.posts)), nil
}

func (s *fakePostStore) CountByStatus(_ context.Context, status models.PostStatus) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, p := range s.posts {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *fakePostStore) CountByAuthor(_ context.Context, authorID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, p := range s.posts {
		if p.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

type reactionKey struct {
	postID int64
	userID int64
	kind   models.ReactionKind
}

type fakeReactionStore struct {
	mu    sync.Mutex
	edges map[reactionKey]bool
}

func newFakeReactionStore() *fakeReactionStore {
	return &fakeReactionStore{edges: make(map[reactionKey]bool)}
}

func (s *fakeReactionStore) Add(_ context.Context, postID, userID int64, kind models.ReactionKind) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := reactionKey{postID, userID, kind}
	if s.edges[key] {
		return false, nil
	}
	s.edges[key] = true
	return true, nil
}

func (s *fakeReactionStore) Remove(_ context.Context, postID, userID int64, kind models.ReactionKind) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := reactionKey{postID, userID, kind}
	if !s.edges[key] {
		return false, nil
	}
	delete(s.edges, key)
	return true, nil
}

func (s *fakeReactionStore) CountReceivedByAuthor(_ context.Context, _ int64, _ models.ReactionKind) (int64, error) {
	return 0, nil
}

func (s *fakeReactionStore) MonthlyReceivedByAuthor(_ context.Context, _ int64, _ models.ReactionKind, _ int) (map[string]int64, error) {
	return map[string]int64{}, nil
}

type fakeCommentStore struct {
	mu       sync.Mutex
	nextID   int64
	comments map[int64]*models.Comment
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{nextID: 1, comments: make(map[int64]*models.Comment)}
}

func (s *fakeCommentStore) Create(_ context.Context, postID, authorID int64, content string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.comments[id] = &models.Comment{ID: id, PostID: postID, AuthorID: authorID, Content: content, CreatedAt: time.Now()}
	return id, nil
}

func (s *fakeCommentStore) GetByID(_ context.Context, commentID int64) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment, ok := s.comments[commentID]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	copied := *comment
	return &copied, nil
}

func (s *fakeCommentStore) ListForPost(_ context.Context, postID int64) ([]*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Comment
	for _, c := range s.comments {
		if c.PostID == postID {
			copied := *c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeCommentStore) CountReceivedByAuthor(_ context.Context, _ int64) (int64, error) {
	return 0, nil
}

func (s *fakeCommentStore) MonthlyReceivedByAuthor(_ context.Context, _ int64, _ int) (map[string]int64, error) {
	return map[string]int64{}, nil
}

type fakeFollowStore struct {
	mu    sync.Mutex
	edges map[[2]int64]bool
}

func newFakeFollowStore() *fakeFollowStore {
	return &fakeFollowStore{edges: make(map[[2]int64]bool)}
}

func (s *fakeFollowStore) Add(_ context.Context, followerID, followeeID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]int64{followerID, followeeID}
	if s.edges[key] {
		return false, nil
	}
	s.edges[key] = true
	return true, nil
}

func (s *fakeFollowStore) Remove(_ context.Context, followerID, followeeID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]int64{followerID, followeeID}
	if !s.edges[key] {
		return false, nil
	}
	delete(s.edges, key)
	return true, nil
}

func (s *fakeFollowStore) Exists(_ context.Context, followerID, followeeID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.edges[[2]int64{followerID, followeeID}], nil
}

func (s *fakeFollowStore) CountFollowers(_ context.Context, userID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for key := range s.edges {
		if key[1] == userID {
			n++
		}
	}
	return n, nil
}

func (s *fakeFollowStore) CountFollowing(_ context.Context, userID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for key := range s.edges {
		if key[0] == userID {
			n++
		}
	}
	return n, nil
}

type fakeNotificationStore struct {
	mu            sync.Mutex
	nextID        int64
	notifications []*models.Notification
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{nextID: 1}
}

func (s *fakeNotificationStore) Create(_ context.Context, recipientID, actorID int64, kind models.NotificationType, postID *int64, postTitle string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.notifications = append(s.notifications, &models.Notification{
		ID:          id,
		RecipientID: recipientID,
		ActorID:     actorID,
		Type:        kind,
		PostID:      postID,
		PostTitle:   postTitle,
		CreatedAt:   time.Now(),
	})
	return id, nil
}

func (s *fakeNotificationStore) ListForRecipient(_ context.Context, recipientID int64, limit int) ([]*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Notification
	for i := len(s.notifications) - 1; i >= 0 && len(out) < limit; i-- {
		if s.notifications[i].RecipientID == recipientID {
			copied := *s.notifications[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeNotificationStore) CountUnread(_ context.Context, recipientID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, notification := range s.notifications {
		if notification.RecipientID == recipientID && !notification.IsRead {
			n++
		}
	}
	return n, nil
}

func (s *fakeNotificationStore) MarkRead(_ context.Context, notificationID, recipientID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, notification := range s.notifications {
		if notification.ID == notificationID && notification.RecipientID == recipientID {
			notification.IsRead = true
			return nil
		}
	}
	return apperrors.ErrNotificationNotFound
}

func (s *fakeNotificationStore) MarkAllRead(_ context.Context, recipientID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, notification := range s.notifications {
		if notification.RecipientID == recipientID {
			notification.IsRead = true
		}
	}
	return nil
}

func (s *fakeNotificationStore) Delete(_ context.Context, notificationID, recipientID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, notification := range s.notifications {
		if notification.ID == notificationID && notification.RecipientID == recipientID {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotificationNotFound
}

func (s *fakeNotificationStore) DeleteAllForRecipient(_ context.Context, recipientID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.notifications[:0]
	for _, notification := range s.notifications {
		if notification.RecipientID != recipientID {
			kept = append(kept, notification)
		}
	}
	s.notifications = kept
	return nil
}

func (s *fakeNotificationStore) forRecipient(recipientID int64) []*models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Notification
	for _, notification := range s.notifications {
		if notification.RecipientID == recipientID {
			copied := *notification
			out = append(out, &copied)
		}
	}
	return out
}

type fakeTribeStore struct {
	mu     sync.Mutex
	nextID int64
	tribes map[int64]*models.Tribe
}

func newFakeTribeStore() *fakeTribeStore {
	return &fakeTribeStore{nextID: 1, tribes: make(map[int64]*models.Tribe)}
}

func (s *fakeTribeStore) Create(_ context.Context, name, description string, ownerID int64, privacy models.TribePrivacy, joinCode string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tribes {
		if t.Name == name {
			return 0, apperrors.NewConflictError("a tribe with this name already exists")
		}
	}
	id := s.nextID
	s.nextID++
	s.tribes[id] = &models.Tribe{
		ID:          id,
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		Privacy:     privacy,
		JoinCode:    joinCode,
		CreatedAt:   time.Now(),
	}
	return id, nil
}

func (s *fakeTribeStore) GetByID(_ context.Context, tribeID, _ int64) (*models.Tribe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tribe, ok := s.tribes[tribeID]
	if !ok {
		return nil, apperrors.ErrTribeNotFound
	}
	copied := *tribe
	return &copied, nil
}

func (s *fakeTribeStore) List(_ context.Context, _ int64, search string) ([]*models.Tribe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Tribe
	for _, t := range s.tribes {
		if search != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(search)) {
			continue
		}
		copied := *t
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeTribeStore) ListForMember(_ context.Context, _ int64) ([]*models.Tribe, error) {
	return nil, nil
}

func (s *fakeTribeStore) Update(_ context.Context, tribeID int64, name, description string, privacy models.TribePrivacy, joinCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tribe, ok := s.tribes[tribeID]
	if !ok {
		return apperrors.ErrTribeNotFound
	}
	tribe.Name = name
	tribe.Description = description
	tribe.Privacy = privacy
	tribe.JoinCode = joinCode
	return nil
}

func (s *fakeTribeStore) Delete(_ context.Context, tribeID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tribes[tribeID]; !ok {
		return apperrors.ErrTribeNotFound
	}
	delete(s.tribes, tribeID)
	return nil
}

func (s *fakeTribeStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.tribes)), nil
}

type fakeTribeMemberStore struct {
	mu    sync.Mutex
	edges map[[2]int64]bool
}

func newFakeTribeMemberStore() *fakeTribeMemberStore {
	return &fakeTribeMemberStore{edges: make(map[[2]int64]bool)}
}

func (s *fakeTribeMemberStore) Add(_ context.Context, tribeID, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]int64{tribeID, userID}
	if s.edges[key] {
		return false, nil
	}
	s.edges[key] = true
	return true, nil
}

func (s *fakeTribeMemberStore) Remove(_ context.Context, tribeID, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]int64{tribeID, userID}
	if !s.edges[key] {
		return false, nil
	}
	delete(s.edges, key)
	return true, nil
}

func (s *fakeTribeMemberStore) IsMember(_ context.Context, tribeID, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.edges[[2]int64{tribeID, userID}], nil
}

type fakeMessageStore struct {
	mu       sync.Mutex
	nextID   int64
	messages []*models.TribeMessage
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{nextID: 1}
}

func (s *fakeMessageStore) Create(_ context.Context, tribeID, senderID int64, content string) (*models.TribeMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	message := &models.TribeMessage{
		ID:        s.nextID,
		TribeID:   tribeID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	s.nextID++
	s.messages = append(s.messages, message)
	copied := *message
	return &copied, nil
}

func (s *fakeMessageStore) ListForTribe(_ context.Context, tribeID int64, limit int) ([]*models.TribeMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.TribeMessage
	for _, m := range s.messages {
		if m.TribeID == tribeID {
			copied := *m
			out = append(out, &copied)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

type fakeSubscriptionStore struct {
	mu        sync.Mutex
	endpoints map[string]int64
}

func newFakeSubscriptionStore() *fakeSubscriptionStore {
	return &fakeSubscriptionStore{endpoints: make(map[string]int64)}
}

func (s *fakeSubscriptionStore) Upsert(_ context.Context, userID int64, endpoint, _, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endpoints[endpoint] = userID
	return nil
}

type fakePushSender struct {
	mu      sync.Mutex
	enabled bool
	sent    []webpush.Payload
}

func (s *fakePushSender) Send(_ int64, payload webpush.Payload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, payload)
}

func (s *fakePushSender) PublicKey() string { return "test-public-key" }

func (s *fakePushSender) Enabled() bool { return s.enabled }
