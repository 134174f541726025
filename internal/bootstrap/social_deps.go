package bootstrap

import (
	"context"
	"time"

	"social_server/adapter/out/memory"
	"social_server/adapter/out/mongodb"
	"social_server/adapter/out/persistence"
	"social_server/adapter/out/provider"
	"social_server/config"
	in "social_server/core/port/in"
	"social_server/core/port/out"
	"social_server/core/service/account"
	"social_server/core/service/post"
	"social_server/core/service/profile"
	"social_server/infra/database"
	"social_server/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type Dependencies struct {
	Config  *config.Config
	MongoDB *mongo.Client
	DB      *mongo.Database
	Redis   *redis.Client

	// Repositories
	UserRepo    *mongodb.UserAdapter
	ProfileRepo *mongodb.ProfileAdapter
	PostRepo    *mongodb.PostAdapter
	TokenStore  out.TokenStore

	// Providers
	GitHubProvider *provider.GitHubAdapter

	// Services
	AccountService in.AccountService
	ProfileService in.ProfileService
	PostService    in.PostService
}

func NewDependencies(cfg *config.Config) (*Dependencies, func(), error) {
	deps := &Dependencies{Config: cfg}
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	mongoClient, err := database.NewMongo(cfg.MongoDBURL)
	if err != nil {
		return nil, nil, err
	}
	deps.MongoDB = mongoClient
	deps.DB = mongoClient.Database(cfg.MongoDBName)
	cleanups = append(cleanups, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(ctx)
	})
	logger.Info("MongoDB connected (database: %s)", cfg.MongoDBName)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	switch {
	case err != nil:
		logger.Warn("Redis connection failed: %v", err)
	case redisClient == nil:
		logger.Info("REDIS_URL not set, using in-process token store and rate limiter")
	default:
		deps.Redis = redisClient
		cleanups = append(cleanups, func() { _ = redisClient.Close() })
		logger.Info("Redis connected")
	}

	deps.UserRepo = mongodb.NewUserAdapter(deps.DB)
	deps.ProfileRepo = mongodb.NewProfileAdapter(deps.DB)
	deps.PostRepo = mongodb.NewPostAdapter(deps.DB)

	if deps.Redis != nil {
		deps.TokenStore = persistence.NewRedisTokenStore(deps.Redis)
	} else {
		deps.TokenStore = memory.NewTokenStore()
	}

	deps.GitHubProvider = provider.NewGitHubAdapter(&provider.GitHubConfig{
		BaseURL: cfg.GitHubAPIURL,
		Token:   cfg.GitHubToken,
	})

	deps.AccountService = account.NewService(deps.UserRepo, deps.ProfileRepo, deps.PostRepo, deps.TokenStore, account.Config{
		JWTSecret:  cfg.JWTSecret,
		TokenTTL:   cfg.JWTExpiresIn,
		BcryptCost: cfg.BcryptCost,
	})
	deps.ProfileService = profile.NewService(deps.ProfileRepo, deps.UserRepo, deps.GitHubProvider)
	deps.PostService = post.NewService(deps.PostRepo, deps.UserRepo)

	return deps, cleanup, nil
}

// EnsureIndexes creates the MongoDB indexes of every collection.
func (d *Dependencies) EnsureIndexes(ctx context.Context) error {
	return mongodb.EnsureIndexes(ctx, d.UserRepo, d.ProfileRepo, d.PostRepo)
}
