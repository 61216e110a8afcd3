package service

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sparrowapp/sparrow-api/internal/core/domain"
	"github.com/sparrowapp/sparrow-api/internal/core/ports"
)

// In-memory repository stubs. The toggle operations take the same lock the
// Mongo implementations express as guarded set updates, so the concurrency
// tests exercise the same contract.

type stubUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Followers = append([]string(nil), u.Followers...)
	clone.Following = append([]string(nil), u.Following...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := cloneUser(user)
	if clone.ID == "" {
		r.seq++
		clone.ID = fmt.Sprintf("u%d", r.seq)
	}
	r.users[clone.ID] = clone
	return cloneUser(clone), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(ids))
	seen := make(map[string]bool)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if u, ok := r.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsernamePrefix(_ context.Context, prefix string, limit int) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lowered := strings.ToLower(prefix)
	var out []*domain.User
	for _, u := range r.users {
		if u.IsActive && strings.HasPrefix(strings.ToLower(u.Username), lowered) {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) EmailTaken(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email && u.IsActive {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) UsernameTaken(_ context.Context, username string, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username && u.IsActive && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) SetRole(_ context.Context, id string, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func (r *stubUserRepo) AddFollow(_ context.Context, followerID, targetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	follower, ok := r.users[followerID]
	target, ok2 := r.users[targetID]
	if !ok || !ok2 {
		return domain.ErrUserNotFound
	}
	follower.Following = addToSet(follower.Following, targetID)
	target.Followers = addToSet(target.Followers, followerID)
	return nil
}

func (r *stubUserRepo) RemoveFollow(_ context.Context, followerID, targetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	follower, ok := r.users[followerID]
	target, ok2 := r.users[targetID]
	if !ok || !ok2 {
		return domain.ErrUserNotFound
	}
	follower.Following = removeFromSet(follower.Following, targetID)
	target.Followers = removeFromSet(target.Followers, followerID)
	return nil
}

type stubTweetRepo struct {
	mu     sync.Mutex
	seq    int
	tweets map[string]*domain.Tweet
	order  []string
}

func newStubTweetRepo() *stubTweetRepo {
	return &stubTweetRepo{tweets: make(map[string]*domain.Tweet)}
}

func cloneTweet(t *domain.Tweet) *domain.Tweet {
	clone := *t
	clone.Likes = append([]string(nil), t.Likes...)
	clone.Bookmarks = append([]string(nil), t.Bookmarks...)
	if t.RetweetID != nil {
		id := *t.RetweetID
		clone.RetweetID = &id
	}
	return &clone
}

func (r *stubTweetRepo) Create(_ context.Context, tweet *domain.Tweet) (*domain.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := cloneTweet(tweet)
	if clone.ID == "" {
		r.seq++
		clone.ID = fmt.Sprintf("t%d", r.seq)
	}
	r.tweets[clone.ID] = clone
	r.order = append(r.order, clone.ID)
	return cloneTweet(clone), nil
}

func (r *stubTweetRepo) FindByID(_ context.Context, id string) (*domain.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tweets[id]
	if !ok || t.IsDeleted {
		return nil, domain.ErrTweetNotFound
	}
	return cloneTweet(t), nil
}

func (r *stubTweetRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Tweet, 0, len(ids))
	for _, id := range ids {
		if t, ok := r.tweets[id]; ok && !t.IsDeleted {
			out = append(out, cloneTweet(t))
		}
	}
	return out, nil
}

func (r *stubTweetRepo) List(_ context.Context, filter ports.FeedFilter) ([]*domain.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var hashtagRe *regexp.Regexp
	if filter.Hashtag != "" {
		hashtagRe = regexp.MustCompile(`(?i)#` + regexp.QuoteMeta(filter.Hashtag) + `\b`)
	}
	var out []*domain.Tweet
	for _, t := range r.newestFirst() {
		if t.IsDeleted {
			continue
		}
		if filter.UserID != "" && t.UserID != filter.UserID {
			continue
		}
		if hashtagRe != nil && !hashtagRe.MatchString(t.Content) {
			continue
		}
		if filter.BookmarkedBy != "" && !t.BookmarkedBy(filter.BookmarkedBy) {
			continue
		}
		out = append(out, cloneTweet(t))
	}
	return out, nil
}

func (r *stubTweetRepo) ListCreatedSince(_ context.Context, since time.Time) ([]*domain.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Tweet
	for _, t := range r.newestFirst() {
		if !t.IsDeleted && !t.CreatedAt.Before(since) {
			out = append(out, cloneTweet(t))
		}
	}
	return out, nil
}

func (r *stubTweetRepo) ListMatchingHashtag(_ context.Context, query string) ([]*domain.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	needle := strings.ToLower("#" + query)
	var out []*domain.Tweet
	for _, t := range r.newestFirst() {
		if !t.IsDeleted && strings.Contains(strings.ToLower(t.Content), needle) {
			out = append(out, cloneTweet(t))
		}
	}
	return out, nil
}

func (r *stubTweetRepo) Update(_ context.Context, tweet *domain.Tweet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tweets[tweet.ID]
	if !ok || stored.IsDeleted {
		return domain.ErrTweetNotFound
	}
	clone := cloneTweet(tweet)
	r.tweets[tweet.ID] = clone
	return nil
}

func (r *stubTweetRepo) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tweets[id]
	if !ok || t.IsDeleted {
		return domain.ErrTweetNotFound
	}
	t.IsDeleted = true
	return nil
}

func (r *stubTweetRepo) HasRetweet(_ context.Context, userID, originalID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tweets {
		if !t.IsDeleted && t.UserID == userID && t.RetweetID != nil && *t.RetweetID == originalID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubTweetRepo) ToggleLike(_ context.Context, tweetID, userID string) (bool, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tweets[tweetID]
	if !ok || t.IsDeleted {
		return false, 0, domain.ErrTweetNotFound
	}
	if containsID(t.Likes, userID) {
		t.Likes = removeFromSet(t.Likes, userID)
		return false, len(t.Likes), nil
	}
	t.Likes = addToSet(t.Likes, userID)
	return true, len(t.Likes), nil
}

func (r *stubTweetRepo) ToggleBookmark(_ context.Context, tweetID, userID string) (bool, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tweets[tweetID]
	if !ok || t.IsDeleted {
		return false, 0, domain.ErrTweetNotFound
	}
	if containsID(t.Bookmarks, userID) {
		t.Bookmarks = removeFromSet(t.Bookmarks, userID)
		return false, len(t.Bookmarks), nil
	}
	t.Bookmarks = addToSet(t.Bookmarks, userID)
	return true, len(t.Bookmarks), nil
}

// newestFirst returns the stored tweets sorted by descending creation time,
// insertion order breaking ties. Callers hold the lock.
func (r *stubTweetRepo) newestFirst() []*domain.Tweet {
	out := make([]*domain.Tweet, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tweets[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

type stubCommentRepo struct {
	mu       sync.Mutex
	seq      int
	comments map[string]*domain.Comment
	order    []string
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{comments: make(map[string]*domain.Comment)}
}

func cloneComment(c *domain.Comment) *domain.Comment {
	clone := *c
	clone.Likes = append([]string(nil), c.Likes...)
	if c.ParentID != nil {
		id := *c.ParentID
		clone.ParentID = &id
	}
	return &clone
}

func (r *stubCommentRepo) Create(_ context.Context, comment *domain.Comment) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := cloneComment(comment)
	if clone.ID == "" {
		r.seq++
		clone.ID = fmt.Sprintf("c%d", r.seq)
	}
	r.comments[clone.ID] = clone
	r.order = append(r.order, clone.ID)
	return cloneComment(clone), nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id string) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok || c.IsDeleted {
		return nil, domain.ErrCommentNotFound
	}
	return cloneComment(c), nil
}

func (r *stubCommentRepo) ListTopLevel(_ context.Context, tweetID string) ([]*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Comment
	for i := len(r.order) - 1; i >= 0; i-- {
		c := r.comments[r.order[i]]
		if !c.IsDeleted && c.TweetID == tweetID && c.ParentID == nil {
			out = append(out, cloneComment(c))
		}
	}
	return out, nil
}

func (r *stubCommentRepo) ListReplies(_ context.Context, parentID string) ([]*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Comment
	for _, id := range r.order {
		c := r.comments[id]
		if !c.IsDeleted && c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, cloneComment(c))
		}
	}
	return out, nil
}

func (r *stubCommentRepo) UpdateText(_ context.Context, id string, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok || c.IsDeleted {
		return domain.ErrCommentNotFound
	}
	c.Text = text
	return nil
}

func (r *stubCommentRepo) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok || c.IsDeleted {
		return domain.ErrCommentNotFound
	}
	c.IsDeleted = true
	return nil
}

func (r *stubCommentRepo) ToggleLike(_ context.Context, commentID, userID string) (bool, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[commentID]
	if !ok || c.IsDeleted {
		return false, 0, domain.ErrCommentNotFound
	}
	if containsID(c.Likes, userID) {
		c.Likes = removeFromSet(c.Likes, userID)
		return false, len(c.Likes), nil
	}
	c.Likes = addToSet(c.Likes, userID)
	return true, len(c.Likes), nil
}

func (r *stubCommentRepo) CountByTweetIDs(_ context.Context, tweetIDs []string) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[string]bool, len(tweetIDs))
	for _, id := range tweetIDs {
		wanted[id] = true
	}
	counts := make(map[string]int)
	for _, c := range r.comments {
		if !c.IsDeleted && wanted[c.TweetID] {
			counts[c.TweetID]++
		}
	}
	return counts, nil
}

type stubRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Duration)}
}

func (r *stubRevoker) Revoke(_ context.Context, token string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[token] = ttl
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[token]
	return ok, nil
}

type stubImageStore struct {
	mu      sync.Mutex
	removed []string
}

func (s *stubImageStore) Save(_ context.Context, filename string, _ io.Reader) (string, error) {
	return "/uploads/" + filename, nil
}

func (s *stubImageStore) Remove(_ context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, ref)
	return nil
}

type stubTrendingCache struct {
	mu     sync.Mutex
	stored []domain.HashtagCount
	hits   int
	sets   int
}

func (c *stubTrendingCache) Get(_ context.Context) ([]domain.HashtagCount, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stored != nil {
		c.hits++
	}
	return c.stored, nil
}

func (c *stubTrendingCache) Set(_ context.Context, trending []domain.HashtagCount) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stored = trending
	c.sets++
	return nil
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func addToSet(ids []string, id string) []string {
	if containsID(ids, id) {
		return ids
	}
	return append(ids, id)
}

func removeFromSet(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
