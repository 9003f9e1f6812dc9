package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/learnwithjason/stytch-b2b-saas/config"
	httpx "github.com/learnwithjason/stytch-b2b-saas/internal/http"
)

// HTTPServerDeps carries what the HTTP server needs.
type HTTPServerDeps struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	DB          *sql.DB
	RedisClient goredis.UniversalClient
	Logger      *slog.Logger
}

func buildHTTPHandler(deps *HTTPServerDeps) http.Handler {
	router := httpx.NewRouter(httpx.RouterServices{
		Auth:         deps.Services.Auth,
		Team:         deps.Services.Team,
		Ideas:        deps.Services.Ideas,
		Authorizer:   deps.Services.Provider,
		OAuth:        deps.Services.Provider,
		EmailLimiter: deps.Services.EmailLimiter,
		TrustProxy:   deps.Config.HTTP.TrustProxy,
		AppURL:       deps.Config.HTTP.AppURL,
		CookieDomain: deps.Config.HTTP.CookieDomain,
		DB:           deps.DB,
		Redis:        deps.RedisClient,
		Logger:       deps.Logger,
	})

	h := httpx.Logging(deps.Logger)(router)
	h = httpx.Recover(deps.Logger)(h)
	return h
}

// Serve runs the HTTP server until the context is canceled or a signal
// arrives, then shuts down gracefully.
func Serve(ctx context.Context, deps *HTTPServerDeps) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              deps.Config.HTTP.Addr,
		Handler:           buildHTTPHandler(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		deps.Logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		deps.Logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
