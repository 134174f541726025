package out

import (
	"context"
	"time"

	"social_server/core/domain"
)

// GitHubProvider reads public repository listings.
type GitHubProvider interface {
	// ListRepos returns domain.ErrGitHubNotFound when GitHub answers with a
	// non-200 status.
	ListRepos(ctx context.Context, username string, limit int) ([]domain.Repository, error)
}

// TokenStore tracks revoked access tokens until they would have expired anyway.
type TokenStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
