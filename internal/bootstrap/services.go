package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/learnwithjason/stytch-b2b-saas/config"
	redisadapter "github.com/learnwithjason/stytch-b2b-saas/internal/adapters/redis"
	"github.com/learnwithjason/stytch-b2b-saas/internal/adapters/stytch"
	"github.com/learnwithjason/stytch-b2b-saas/internal/data"
	"github.com/learnwithjason/stytch-b2b-saas/internal/service"
)

// ServiceContainer holds the application services plus the adapters the
// router needs directly.
type ServiceContainer struct {
	Auth  *service.AuthService
	Team  *service.TeamService
	Ideas *service.IdeaService

	Provider     *stytch.Client
	EmailLimiter *redisadapter.RateLimiter
}

// ServiceDeps carries everything needed to construct the services.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient goredis.UniversalClient
	Logger      *slog.Logger
}

// NewServices constructs the provider client, repositories, and services.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	provider, err := stytch.NewClient(stytch.Config{
		ProjectID:   deps.Config.Stytch.ProjectID,
		Secret:      deps.Config.Stytch.Secret,
		PublicToken: deps.Config.Stytch.PublicToken,
		BaseURL:     deps.Config.Stytch.BaseURL,
		Timeout:     deps.Config.Stytch.Timeout,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build provider client: %w", err)
	}

	ideaRepo := data.NewIdeaRepo(deps.DB)
	userRepo := data.NewUserRepo(deps.DB)

	limiter := redisadapter.NewRateLimiter(
		deps.RedisClient,
		"ratelimit:discovery-email",
		int64(deps.Config.HTTP.EmailSendPerMinute),
		time.Minute,
	)

	return ServiceContainer{
		Auth:         service.NewAuthService(provider, deps.Logger),
		Team:         service.NewTeamService(provider, userRepo, deps.Logger),
		Ideas:        service.NewIdeaService(ideaRepo, userRepo, provider, deps.Logger),
		Provider:     provider,
		EmailLimiter: limiter,
	}, nil
}
