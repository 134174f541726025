package post

import (
	"context"
	"fmt"
	"strings"
	"time"

	"social_server/core/domain"
	"social_server/core/port/in"
	"social_server/core/port/out"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service implements in.PostService. Likes and comments are read, changed in
// memory and written back; concurrent writers on the same post race and the
// last write wins.
type Service struct {
	posts out.PostRepository
	users out.UserRepository
	now   func() time.Time
}

// NewService creates a new PostService
func NewService(posts out.PostRepository, users out.UserRepository) in.PostService {
	return &Service{
		posts: posts,
		users: users,
		now:   time.Now,
	}
}

// =============================================================================
// Posts
// =============================================================================

func (s *Service) Create(ctx context.Context, userID primitive.ObjectID, req *in.PostRequest) (*domain.Post, error) {
	author, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &domain.Post{
		ID:       primitive.NewObjectID(),
		UserID:   userID,
		Text:     strings.TrimSpace(req.Text),
		Name:     author.Name,
		Avatar:   author.Avatar,
		Likes:    []domain.Like{},
		Comments: []domain.Comment{},
		Date:     s.now(),
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *Service) Get(ctx context.Context, postID primitive.ObjectID) (*domain.Post, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if p == nil {
		return nil, domain.ErrPostNotFound
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, userID, postID primitive.ObjectID) error {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return domain.ErrNotPostAuthor
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// =============================================================================
// Likes
// =============================================================================

func (s *Service) Like(ctx context.Context, userID, postID primitive.ObjectID) ([]domain.Like, error) {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := p.Like(userID); err != nil {
		return nil, err
	}
	if err := s.posts.UpdateLikes(ctx, postID, p.Likes); err != nil {
		return nil, fmt.Errorf("update likes: %w", err)
	}
	return p.Likes, nil
}

func (s *Service) Unlike(ctx context.Context, userID, postID primitive.ObjectID) ([]domain.Like, error) {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := p.Unlike(userID); err != nil {
		return nil, err
	}
	if err := s.posts.UpdateLikes(ctx, postID, p.Likes); err != nil {
		return nil, fmt.Errorf("update likes: %w", err)
	}
	return p.Likes, nil
}

// =============================================================================
// Comments
// =============================================================================

func (s *Service) AddComment(ctx context.Context, userID, postID primitive.ObjectID, req *in.CommentRequest) ([]domain.Comment, error) {
	author, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}
	p, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	p.AddComment(domain.Comment{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Text:   strings.TrimSpace(req.Text),
		Name:   author.Name,
		Avatar: author.Avatar,
		Date:   s.now(),
	})
	if err := s.posts.UpdateComments(ctx, postID, p.Comments); err != nil {
		return nil, fmt.Errorf("update comments: %w", err)
	}
	return p.Comments, nil
}

func (s *Service) DeleteComment(ctx context.Context, userID, postID, commentID primitive.ObjectID) (domain.CommentRemoval, error) {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return 0, err
	}
	by, err := p.RemoveComment(commentID, userID)
	if err != nil {
		return 0, err
	}
	if err := s.posts.UpdateComments(ctx, postID, p.Comments); err != nil {
		return 0, fmt.Errorf("update comments: %w", err)
	}
	return by, nil
}

func (s *Service) author(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}
