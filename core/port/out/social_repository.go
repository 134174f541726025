package out

import (
	"context"

	"social_server/core/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lookups return (nil, nil) when the record does not exist.

// UserRepository persists user accounts.
type UserRepository interface {
	// Create stores a new user. A duplicate email yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.UserSummary, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProfileRepository persists profiles keyed by their owning user.
type ProfileRepository interface {
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	Create(ctx context.Context, profile *domain.Profile) error
	// Update $sets the non-empty fields of upd and returns the stored profile.
	Update(ctx context.Context, userID primitive.ObjectID, upd *domain.ProfileUpdate) (*domain.Profile, error)
	// Save replaces the whole document.
	Save(ctx context.Context, profile *domain.Profile) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

// PostRepository persists posts with their embedded likes and comments.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error)
	// List returns all posts, newest first.
	List(ctx context.Context) ([]*domain.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	UpdateLikes(ctx context.Context, id primitive.ObjectID, likes []domain.Like) error
	UpdateComments(ctx context.Context, id primitive.ObjectID, comments []domain.Comment) error
}
