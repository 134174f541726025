package in

import (
	"context"

	"social_server/core/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostService manages posts and their likes and comments.
type PostService interface {
	Create(ctx context.Context, userID primitive.ObjectID, req *PostRequest) (*domain.Post, error)
	List(ctx context.Context) ([]*domain.Post, error)
	Get(ctx context.Context, postID primitive.ObjectID) (*domain.Post, error)
	Delete(ctx context.Context, userID, postID primitive.ObjectID) error

	Like(ctx context.Context, userID, postID primitive.ObjectID) ([]domain.Like, error)
	Unlike(ctx context.Context, userID, postID primitive.ObjectID) ([]domain.Like, error)

	AddComment(ctx context.Context, userID, postID primitive.ObjectID, req *CommentRequest) ([]domain.Comment, error)
	DeleteComment(ctx context.Context, userID, postID, commentID primitive.ObjectID) (domain.CommentRemoval, error)
}

type PostRequest struct {
	Text string `json:"text" validate:"required,notblank" msg:"Text is required"`
}

type CommentRequest struct {
	Text string `json:"text" validate:"required,notblank" msg:"Text is required"`
}
