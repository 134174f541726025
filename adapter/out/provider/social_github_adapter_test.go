package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"social_server/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitHubAdapter_ListRepos(t *testing.T) {
	var gotPath, gotQuery, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")

		if r.URL.Path != "/users/jane/repos" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"dotfiles","html_url":"https://github.com/jane/dotfiles","stargazers_count":3,"created_at":"2020-01-02T03:04:05Z"}]`))
	}))
	defer srv.Close()

	a := NewGitHubAdapter(&GitHubConfig{BaseURL: srv.URL + "/", Token: "gh-token"})

	repos, err := a.ListRepos(context.Background(), "jane", 5)
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "dotfiles", repos[0].Name)
	assert.Equal(t, 3, repos[0].StargazersCount)
	assert.Equal(t, 2020, repos[0].CreatedAt.Year())
	assert.Equal(t, "/users/jane/repos", gotPath)
	assert.Equal(t, "direction=asc&per_page=5&sort=created", gotQuery)
	assert.Equal(t, "Bearer gh-token", gotAuth)

	_, err = a.ListRepos(context.Background(), "nobody", 5)
	assert.ErrorIs(t, err, domain.ErrGitHubNotFound)
	assert.False(t, a.IsCircuitOpen())
}

func TestGitHubAdapter_ServerErrorsTripBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	a := NewGitHubAdapter(&GitHubConfig{BaseURL: srv.URL})

	for i := 0; i < 6; i++ {
		_, err := a.ListRepos(context.Background(), "jane", 5)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrGitHubNotFound)
	}
	assert.True(t, a.IsCircuitOpen())
}
