package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"social_server/core/domain"
	"social_server/core/port/out"
	"social_server/pkg/httputil"
	"social_server/pkg/logger"

	"github.com/google/go-github/github"
	"github.com/sony/gobreaker"
	"golang.org/x/oauth2"
)

var _ out.GitHubProvider = (*GitHubAdapter)(nil)

// GitHubConfig holds GitHub API configuration. Token is optional and only
// raises the rate limit.
type GitHubConfig struct {
	BaseURL string
	Token   string
}

// GitHubAdapter lists public repositories through the GitHub REST API.
type GitHubAdapter struct {
	client *github.Client
	cb     *gobreaker.CircuitBreaker
}

// NewGitHubAdapter creates a new GitHub adapter.
func NewGitHubAdapter(cfg *GitHubConfig) *GitHubAdapter {
	clientCfg := httputil.GitHubClientConfig()

	var transport http.RoundTripper = httputil.NewTransport(clientCfg)
	if cfg.Token != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}),
			Base:   transport,
		}
	}

	client := github.NewClient(&http.Client{Transport: transport, Timeout: clientCfg.ResponseTimeout})
	if base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/"); err == nil && cfg.BaseURL != "" {
		client.BaseURL = base
	}

	cbSettings := gobreaker.Settings{
		Name:        "github-api",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.ConsecutiveFailures > 5 ||
				(counts.Requests >= 10 && failureRatio >= 0.6)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("[CircuitBreaker] %s: state changed from %s to %s", name, from.String(), to.String())
		},
		// Unknown users are answers, not outages.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrGitHubNotFound)
		},
	}

	return &GitHubAdapter{
		client: client,
		cb:     gobreaker.NewCircuitBreaker(cbSettings),
	}
}

// ListRepos returns the user's repositories sorted by creation date.
func (a *GitHubAdapter) ListRepos(ctx context.Context, username string, limit int) ([]domain.Repository, error) {
	result, err := a.cb.Execute(func() (interface{}, error) {
		return a.fetchRepos(ctx, username, limit)
	})
	if err != nil {
		if !errors.Is(err, domain.ErrGitHubNotFound) {
			logger.WithError(err).Warn("[GitHubAdapter] list repos for %s failed: state=%s", username, a.cb.State().String())
		}
		return nil, err
	}
	return result.([]domain.Repository), nil
}

func (a *GitHubAdapter) fetchRepos(ctx context.Context, username string, limit int) ([]domain.Repository, error) {
	opts := &github.RepositoryListOptions{
		Sort:        "created",
		Direction:   "asc",
		ListOptions: github.ListOptions{PerPage: limit},
	}

	list, resp, err := a.client.Repositories.List(ctx, username, opts)
	if err != nil {
		if resp == nil {
			return nil, fmt.Errorf("github request: %w", err)
		}
		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("github returned status %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("%w: status %d", domain.ErrGitHubNotFound, resp.StatusCode)
	}

	repos := make([]domain.Repository, 0, len(list))
	for _, r := range list {
		repos = append(repos, toRepository(r))
	}
	return repos, nil
}

func toRepository(r *github.Repository) domain.Repository {
	return domain.Repository{
		ID:              r.GetID(),
		Name:            r.GetName(),
		FullName:        r.GetFullName(),
		HTMLURL:         r.GetHTMLURL(),
		Description:     r.GetDescription(),
		Language:        r.GetLanguage(),
		StargazersCount: r.GetStargazersCount(),
		WatchersCount:   r.GetWatchersCount(),
		ForksCount:      r.GetForksCount(),
		CreatedAt:       r.GetCreatedAt().Time,
	}
}

// IsCircuitOpen returns true if the circuit breaker is open.
func (a *GitHubAdapter) IsCircuitOpen() bool {
	return a.cb.State() == gobreaker.StateOpen
}
