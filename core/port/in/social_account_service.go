package in

import (
	"context"
	"time"

	"social_server/core/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccountService registers users, issues access tokens and deletes accounts.
type AccountService interface {
	Register(ctx context.Context, req *RegisterRequest) (*TokenResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error)
	CurrentUser(ctx context.Context, userID primitive.ObjectID) (*domain.User, error)

	// DeleteAccount removes the user's posts, profile and account in that
	// order and revokes the token that authorized the request.
	DeleteAccount(ctx context.Context, userID primitive.ObjectID, token *TokenRef) error
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,notblank" msg:"Name is required"`
	Email    string `json:"email" validate:"required,email" msg:"Please include a valid email"`
	Password string `json:"password" validate:"min=6" msg:"Please enter a password with 6 or more characters"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" msg:"Please include a valid email"`
	Password string `json:"password" validate:"required" msg:"Password is required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// TokenRef identifies the access token of the current request.
type TokenRef struct {
	ID        string
	ExpiresAt time.Time
}
