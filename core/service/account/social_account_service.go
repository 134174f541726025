package account

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"social_server/core/domain"
	"social_server/core/port/in"
	"social_server/core/port/out"
	"social_server/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Config holds the token and hashing parameters of the service.
type Config struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// Service implements in.AccountService
type Service struct {
	users    out.UserRepository
	profiles out.ProfileRepository
	posts    out.PostRepository
	tokens   out.TokenStore

	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
	now        func() time.Time
}

// NewService creates a new AccountService. tokens may be nil, in which case
// deleted accounts keep valid tokens until they expire.
func NewService(
	users out.UserRepository,
	profiles out.ProfileRepository,
	posts out.PostRepository,
	tokens out.TokenStore,
	cfg Config,
) in.AccountService {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = 100 * time.Hour
	}
	return &Service{
		users:      users,
		profiles:   profiles,
		posts:      posts,
		tokens:     tokens,
		jwtSecret:  []byte(cfg.JWTSecret),
		tokenTTL:   cfg.TokenTTL,
		bcryptCost: cfg.BcryptCost,
		now:        time.Now,
	}
}

func (s *Service) Register(ctx context.Context, req *in.RegisterRequest) (*in.TokenResponse, error) {
	email := normalizeEmail(req.Email)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:       primitive.NewObjectID(),
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hash),
		Avatar:   Gravatar(email),
		Date:     s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issue(user.ID)
}

func (s *Service) Login(ctx context.Context, req *in.LoginRequest) (*in.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issue(user.ID)
}

func (s *Service) CurrentUser(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// DeleteAccount runs the cascade without a transaction. A failure part way
// leaves the earlier deletions in place.
func (s *Service) DeleteAccount(ctx context.Context, userID primitive.ObjectID, token *in.TokenRef) error {
	removed, err := s.posts.DeleteByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete posts: %w", err)
	}
	if err := s.profiles.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	logger.WithFields(map[string]any{
		"user_id":       userID.Hex(),
		"posts_removed": removed,
	}).Info("account deleted")

	s.revoke(ctx, token)
	return nil
}

func (s *Service) revoke(ctx context.Context, token *in.TokenRef) {
	if s.tokens == nil || token == nil || token.ID == "" {
		return
	}
	ttl := token.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return
	}
	if err := s.tokens.Revoke(ctx, token.ID, ttl); err != nil {
		logger.WithError(err).Warn("failed to revoke token %s", token.ID)
	}
}

func (s *Service) issue(userID primitive.ObjectID) (*in.TokenResponse, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID.Hex(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &in.TokenResponse{Token: signed}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Gravatar returns the avatar URL for email: 200px, pg rated, mystery-man fallback.
func Gravatar(email string) string {
	sum := md5.Sum([]byte(normalizeEmail(email)))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}
