// Package memory provides in-memory implementations of the repository ports.
// They copy records on every read and write so callers never share state with
// the store, the same way a database round trip would behave.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"social_server/core/domain"
	"social_server/core/port/out"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	_ out.UserRepository    = (*UserStore)(nil)
	_ out.ProfileRepository = (*ProfileStore)(nil)
	_ out.PostRepository    = (*PostStore)(nil)
	_ out.TokenStore        = (*TokenStore)(nil)
)

// =============================================================================
// Users
// =============================================================================

type UserStore struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]domain.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[primitive.ObjectID]domain.User)}
}

func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrUserExists
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *UserStore) GetSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.UserSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[primitive.ObjectID]*domain.UserSummary, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			result[id] = u.Summary()
		}
	}
	return result, nil
}

func (s *UserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

// =============================================================================
// Profiles
// =============================================================================

type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[primitive.ObjectID]*domain.Profile // keyed by user id
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{profiles: make(map[primitive.ObjectID]*domain.Profile)}
}

func (s *ProfileStore) GetByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, nil
	}
	return copyProfile(p), nil
}

func (s *ProfileStore) List(ctx context.Context) ([]*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		result = append(result, copyProfile(p))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (s *ProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if profile.ID.IsZero() {
		profile.ID = primitive.NewObjectID()
	}
	s.profiles[profile.UserID] = copyProfile(profile)
	return nil
}

func (s *ProfileStore) Update(ctx context.Context, userID primitive.ObjectID, upd *domain.ProfileUpdate) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, nil
	}
	p.Apply(upd)
	return copyProfile(p), nil
}

func (s *ProfileStore) Save(ctx context.Context, profile *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = copyProfile(profile)
	return nil
}

func (s *ProfileStore) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, userID)
	return nil
}

func copyProfile(p *domain.Profile) *domain.Profile {
	c := *p
	c.User = nil
	c.Skills = append([]string(nil), p.Skills...)
	c.Experience = append([]domain.Experience{}, p.Experience...)
	c.Education = append([]domain.Education{}, p.Education...)
	return &c
}

// =============================================================================
// Posts
// =============================================================================

type PostStore struct {
	mu    sync.RWMutex
	posts map[primitive.ObjectID]*domain.Post
}

func NewPostStore() *PostStore {
	return &PostStore{posts: make(map[primitive.ObjectID]*domain.Post)}
}

func (s *PostStore) Create(ctx context.Context, post *domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	s.posts[post.ID] = copyPost(post)
	return nil
}

func (s *PostStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	return copyPost(p), nil
}

func (s *PostStore) List(ctx context.Context) ([]*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Post, 0, len(s.posts))
	for _, p := range s.posts {
		result = append(result, copyPost(p))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return result, nil
}

func (s *PostStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.posts, id)
	return nil
}

func (s *PostStore) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, p := range s.posts {
		if p.UserID == userID {
			delete(s.posts, id)
			n++
		}
	}
	return n, nil
}

func (s *PostStore) UpdateLikes(ctx context.Context, id primitive.ObjectID, likes []domain.Like) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.posts[id]; ok {
		p.Likes = append([]domain.Like{}, likes...)
	}
	return nil
}

func (s *PostStore) UpdateComments(ctx context.Context, id primitive.ObjectID, comments []domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.posts[id]; ok {
		p.Comments = append([]domain.Comment{}, comments...)
	}
	return nil
}

func copyPost(p *domain.Post) *domain.Post {
	c := *p
	c.Likes = append([]domain.Like{}, p.Likes...)
	c.Comments = append([]domain.Comment{}, p.Comments...)
	return &c
}

// =============================================================================
// Tokens
// =============================================================================

type TokenStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewTokenStore() *TokenStore {
	return &TokenStore{revoked: make(map[string]time.Time), now: time.Now}
}

func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = s.now().Add(ttl)
	return nil
}

func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if s.now().After(until) {
		delete(s.revoked, tokenID)
		return false, nil
	}
	return true, nil
}
