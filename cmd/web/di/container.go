package di

import (
	"context"
	"fmt"
	"net/http"

	"user-directory-web/cmd/web/infrastructure"
	"user-directory-web/internal/adapter/backend"
	ginhandler "user-directory-web/internal/adapter/gin/handler"
	"user-directory-web/internal/adapter/gin/middleware"
	"user-directory-web/internal/adapter/view"
	"user-directory-web/internal/config"
	"user-directory-web/internal/usecase/user"
	redisclient "user-directory-web/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	RedisClient   *redisclient.Client
	BackendClient *backend.UserClient
	UserUC        user.Usecase
	Renderer      *view.Renderer
	RateLimiter   *middleware.RateLimiter
	UserHandler   *ginhandler.UserHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Redis is only needed by the rate limiter
	var (
		rdb          *redisclient.Client
		limiterRedis *goredis.Client
	)
	if cfg.RateLimit.Enabled {
		var err error
		rdb, err = infrastructure.NewRedisClient(ctx, cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		limiterRedis = rdb.Client
	}

	// Initialize users backend client
	backendClient, err := backend.NewUserClient(
		backend.Config{
			BaseURL: cfg.Backend.BaseURL,
			Timeout: cfg.Backend.Timeout(),
		},
		&http.Client{Timeout: cfg.Backend.Timeout()},
		l,
	)
	if err != nil {
		closeRedis(rdb)
		return nil, fmt.Errorf("failed to initialize backend client: %w", err)
	}

	// Initialize use case
	userUC := user.New(backendClient, l)

	renderer, err := view.NewRenderer()
	if err != nil {
		closeRedis(rdb)
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(
		limiterRedis,
		middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstCapacity:     cfg.RateLimit.BurstCapacity,
			Enabled:           cfg.RateLimit.Enabled,
		},
		l,
	)

	return &Container{
		Config:        cfg,
		Logger:        l,
		RedisClient:   rdb,
		BackendClient: backendClient,
		UserUC:        userUC,
		Renderer:      renderer,
		RateLimiter:   rateLimiter,
		UserHandler:   ginhandler.NewUserHandler(userUC, l),
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}
	return nil
}

func closeRedis(rdb *redisclient.Client) {
	if rdb != nil {
		_ = rdb.Close()
	}
}
