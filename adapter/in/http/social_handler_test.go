package http

import (
	"context"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"social_server/adapter/out/memory"
	"social_server/core/domain"
	"social_server/core/service/account"
	"social_server/core/service/post"
	"social_server/core/service/profile"
	"social_server/infra/middleware"
	"social_server/pkg/metrics"
	"social_server/pkg/ratelimit"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "handler-secret"

type stubGitHub struct{}

func (stubGitHub) ListRepos(ctx context.Context, username string, limit int) ([]domain.Repository, error) {
	if username != "octocat" {
		return nil, domain.ErrGitHubNotFound
	}
	return []domain.Repository{{Name: "hello-world"}}, nil
}

type testServer struct {
	t   *testing.T
	app *fiber.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	users := memory.NewUserStore()
	profiles := memory.NewProfileStore()
	posts := memory.NewPostStore()
	tokens := memory.NewTokenStore()

	accounts := account.NewService(users, profiles, posts, tokens, account.Config{
		JWTSecret:  testSecret,
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	})

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})
	app.Use(middleware.RequestID())

	api := app.Group("/api")
	auth := middleware.JWTAuth(testSecret, tokens)
	limit := middleware.RateLimit(ratelimit.NewSlidingWindowLimiter(nil, 1000, time.Minute))

	NewAccountHandler(accounts).Register(api, auth, limit)
	NewProfileHandler(profile.NewService(profiles, users, stubGitHub{}), accounts).Register(api, auth)
	NewPostHandler(post.NewService(posts, users)).Register(api, auth)

	return &testServer{t: t, app: app}
}

func (s *testServer) do(method, path, token string, body any) (int, []byte) {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return resp.StatusCode, raw
}

func (s *testServer) register(name, email string) string {
	s.t.Helper()
	status, raw := s.do(nethttp.MethodPost, "/api/users", "", map[string]string{
		"name": name, "email": email, "password": "secret1",
	})
	require.Equal(s.t, 200, status, string(raw))

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(raw, &resp))
	require.NotEmpty(s.t, resp.Token)
	return resp.Token
}

func msgOf(t *testing.T, raw []byte) string {
	t.Helper()
	var body struct {
		Msg    string `json:"msg"`
		Errors []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	if body.Msg == "" && len(body.Errors) > 0 {
		return body.Errors[0].Msg
	}
	return body.Msg
}

func TestAccountRoutes(t *testing.T) {
	s := newTestServer(t)
	token := s.register("Jane", "jane@example.com")

	status, raw := s.do(nethttp.MethodPost, "/api/users", "", map[string]string{
		"name": "Jane", "email": "jane@example.com", "password": "secret1",
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "User already exists", msgOf(t, raw))

	status, raw = s.do(nethttp.MethodPost, "/api/users", "", map[string]string{"email": "bad"})
	assert.Equal(t, 400, status)
	var verr struct {
		Errors []struct {
			Msg   string `json:"msg"`
			Param string `json:"param"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(raw, &verr))
	require.Len(t, verr.Errors, 3)
	assert.Equal(t, "Name is required", verr.Errors[0].Msg)

	status, raw = s.do(nethttp.MethodPost, "/api/auth", "", map[string]string{"email": "jane@example.com", "password": "wrong"})
	assert.Equal(t, 400, status)
	assert.Equal(t, "Invalid Credentials", msgOf(t, raw))

	status, _ = s.do(nethttp.MethodPost, "/api/auth", "", map[string]string{"email": "jane@example.com", "password": "secret1"})
	assert.Equal(t, 200, status)

	status, raw = s.do(nethttp.MethodGet, "/api/auth", token, nil)
	require.Equal(t, 200, status)
	var me map[string]any
	require.NoError(t, json.Unmarshal(raw, &me))
	assert.Equal(t, "Jane", me["name"])
	assert.NotContains(t, me, "password")

	status, raw = s.do(nethttp.MethodGet, "/api/auth", "", nil)
	assert.Equal(t, 401, status)
	assert.Equal(t, "No token, authorization denied", msgOf(t, raw))
}

func TestProfileRoutes(t *testing.T) {
	s := newTestServer(t)
	token := s.register("Jane", "jane@example.com")

	status, raw := s.do(nethttp.MethodGet, "/api/profile/me", token, nil)
	assert.Equal(t, 404, status)
	assert.Equal(t, "There is no profile for this user", msgOf(t, raw))

	status, raw = s.do(nethttp.MethodPost, "/api/profile", token, map[string]string{"company": "Acme"})
	assert.Equal(t, 400, status)
	assert.Equal(t, "Status is required", msgOf(t, raw))

	status, raw = s.do(nethttp.MethodPost, "/api/profile", token, map[string]string{"status": "   ", "skills": "go"})
	assert.Equal(t, 400, status)
	assert.Equal(t, "Status is required", msgOf(t, raw))

	status, raw = s.do(nethttp.MethodPost, "/api/profile", token, map[string]string{"status": "Developer", "skills": " , "})
	assert.Equal(t, 400, status)
	assert.Equal(t, "Skills is required", msgOf(t, raw))

	status, _ = s.do(nethttp.MethodGet, "/api/profile/me", token, nil)
	assert.Equal(t, 404, status)

	status, raw = s.do(nethttp.MethodPost, "/api/profile", token, map[string]string{
		"status": "Developer", "skills": "go, mongo", "githubusername": "octocat",
	})
	require.Equal(t, 200, status, string(raw))
	var p domain.Profile
	require.NoError(t, json.Unmarshal(raw, &p))
	assert.Equal(t, []string{"go", "mongo"}, p.Skills)
	require.NotNil(t, p.User)
	assert.Equal(t, "Jane", p.User.Name)

	status, raw = s.do(nethttp.MethodGet, "/api/profile/user/"+p.User.ID.Hex(), "", nil)
	assert.Equal(t, 200, status)

	status, raw = s.do(nethttp.MethodGet, "/api/profile/user/not-an-id", "", nil)
	assert.Equal(t, 404, status)
	assert.Equal(t, "Profile not found", msgOf(t, raw))

	status, raw = s.do(nethttp.MethodGet, "/api/profile", "", nil)
	require.Equal(t, 200, status)
	var all []domain.Profile
	require.NoError(t, json.Unmarshal(raw, &all))
	assert.Len(t, all, 1)

	status, raw = s.do(nethttp.MethodPut, "/api/profile/experience", token, map[string]any{
		"title": "Dev", "company": "Acme", "from": "2020-01-01", "current": true,
	})
	require.Equal(t, 200, status, string(raw))
	require.NoError(t, json.Unmarshal(raw, &p))
	require.Len(t, p.Experience, 1)

	status, raw = s.do(nethttp.MethodDelete, "/api/profile/experience/"+p.Experience[0].ID.Hex(), token, nil)
	require.Equal(t, 200, status)
	require.NoError(t, json.Unmarshal(raw, &p))
	assert.Empty(t, p.Experience)

	status, raw = s.do(nethttp.MethodDelete, "/api/profile/experience/"+p.ID.Hex(), token, nil)
	assert.Equal(t, 404, status)
	assert.Equal(t, "Experience not found", msgOf(t, raw))

	status, raw = s.do(nethttp.MethodPut, "/api/profile/education", token, map[string]any{
		"school": "MIT", "degree": "BSc", "fieldofstudy": "CS", "from": "whenever",
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "From date is invalid", msgOf(t, raw))

	status, _ = s.do(nethttp.MethodGet, "/api/profile/github/octocat", "", nil)
	assert.Equal(t, 200, status)

	status, raw = s.do(nethttp.MethodGet, "/api/profile/github/nobody", "", nil)
	assert.Equal(t, 404, status)
	assert.Equal(t, "No Github profile found", msgOf(t, raw))
}

func TestPostRoutes(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("Alice", "alice@example.com")
	bob := s.register("Bob", "bob@example.com")

	status, raw := s.do(nethttp.MethodGet, "/api/posts", "", nil)
	assert.Equal(t, 401, status)

	status, raw = s.do(nethttp.MethodPost, "/api/posts", alice, map[string]string{})
	assert.Equal(t, 400, status)
	assert.Equal(t, "Text is required", msgOf(t, raw))

	status, raw = s.do(nethttp.MethodPost, "/api/posts", alice, map[string]string{"text": "   "})
	assert.Equal(t, 400, status)
	assert.Equal(t, "Text is required", msgOf(t, raw))

	status, raw = s.do(nethttp.MethodPost, "/api/posts", alice, map[string]string{"text": "hello"})
	require.Equal(t, 200, status)
	var p domain.Post
	require.NoError(t, json.Unmarshal(raw, &p))
	assert.Equal(t, "Alice", p.Name)
	postPath := "/api/posts/" + p.ID.Hex()

	status, raw = s.do(nethttp.MethodGet, "/api/posts/zzz", alice, nil)
	assert.Equal(t, 404, status)
	assert.Equal(t, "Post not found", msgOf(t, raw))

	status, _ = s.do(nethttp.MethodPut, "/api/posts/like/"+p.ID.Hex(), bob, nil)
	assert.Equal(t, 200, status)
	status, raw = s.do(nethttp.MethodPut, "/api/posts/like/"+p.ID.Hex(), bob, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Post already liked", msgOf(t, raw))
	status, raw = s.do(nethttp.MethodPut, "/api/posts/unlike/"+p.ID.Hex(), alice, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Post has not yet been liked", msgOf(t, raw))

	status, raw = s.do(nethttp.MethodPost, "/api/posts/comment/"+p.ID.Hex(), bob, map[string]string{"text": "nice"})
	require.Equal(t, 200, status)
	var comments []domain.Comment
	require.NoError(t, json.Unmarshal(raw, &comments))
	require.Len(t, comments, 1)
	commentPath := "/api/posts/comment/" + p.ID.Hex() + "/" + comments[0].ID.Hex()

	status, raw = s.do(nethttp.MethodPost, "/api/posts/comment/"+p.ID.Hex(), bob, map[string]string{"text": "\t \n"})
	assert.Equal(t, 400, status)
	assert.Equal(t, "Text is required", msgOf(t, raw))

	carol := s.register("Carol", "carol@example.com")
	status, raw = s.do(nethttp.MethodDelete, commentPath, carol, nil)
	assert.Equal(t, 401, status)
	assert.Equal(t, "You can not delete comments of other users.", msgOf(t, raw))

	status, raw = s.do(nethttp.MethodDelete, "/api/posts/comment/"+p.ID.Hex()+"/"+p.ID.Hex(), alice, nil)
	assert.Equal(t, 404, status)
	assert.Equal(t, "Comment not found", msgOf(t, raw))

	status, raw = s.do(nethttp.MethodDelete, commentPath, alice, nil)
	assert.Equal(t, 200, status)
	assert.Equal(t, "Comment deleted by author of the post.", msgOf(t, raw))

	status, raw = s.do(nethttp.MethodDelete, postPath, bob, nil)
	assert.Equal(t, 401, status)
	assert.Equal(t, "User not authorized", msgOf(t, raw))

	status, raw = s.do(nethttp.MethodDelete, postPath, alice, nil)
	assert.Equal(t, 200, status)
	assert.Equal(t, "Post deleted", msgOf(t, raw))
}

func TestDeleteAccountRevokesToken(t *testing.T) {
	s := newTestServer(t)
	token := s.register("Jane", "jane@example.com")

	status, _ := s.do(nethttp.MethodPost, "/api/posts", token, map[string]string{"text": "bye"})
	require.Equal(t, 200, status)

	status, raw := s.do(nethttp.MethodDelete, "/api/profile", token, nil)
	require.Equal(t, 200, status)
	assert.Equal(t, "User removed", msgOf(t, raw))

	status, raw = s.do(nethttp.MethodGet, "/api/auth", token, nil)
	assert.Equal(t, 401, status)
	assert.Equal(t, "Token is not valid", msgOf(t, raw))

	other := s.register("Bob", "bob@example.com")
	status, raw = s.do(nethttp.MethodGet, "/api/posts", other, nil)
	require.Equal(t, 200, status)
	var posts []domain.Post
	require.NoError(t, json.Unmarshal(raw, &posts))
	assert.Empty(t, posts)
}

func TestHealthRoutes(t *testing.T) {
	reg := metrics.NewRegistry(10)
	app := fiber.New()
	app.Use(middleware.TrackLatency(reg))
	NewHealthHandler(nil, nil, reg).Register(app)

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/ready", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(nethttp.MethodGet, "/health/stats", nil), -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body struct {
		Latency map[string]metrics.Snapshot `json:"latency"`
	}
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, int64(1), body.Latency["GET /ready"].Count)
}
