package httpx

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/learnwithjason/stytch-b2b-saas/internal/ports"
	"github.com/learnwithjason/stytch-b2b-saas/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth  *service.AuthService
	Team  *service.TeamService
	Ideas *service.IdeaService

	Authorizer ports.Authorizer
	OAuth      oauthStarter

	// EmailLimiter throttles discovery email sends. Optional.
	EmailLimiter Limiter

	// TrustProxy keys rate limiting on the forwarded client address.
	TrustProxy bool

	AppURL       string
	CookieDomain string

	DB     *sql.DB
	Redis  redis.UniversalClient
	Logger *slog.Logger
}

// NewRouter creates and configures the HTTP router. Permission gates call
// the provider on every request; nothing is cached between requests.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Auth:         services.Auth,
		OAuth:        services.OAuth,
		AppURL:       services.AppURL,
		CookieDomain: services.CookieDomain,
		Logger:       services.Logger,
	}
	teamHandlers := &TeamHandlers{Team: services.Team, AppURL: services.AppURL, Logger: services.Logger}
	ideaHandlers := &IdeaHandlers{Ideas: services.Ideas, Logger: services.Logger}

	registerAuthRoutes(mux, authHandlers, services)
	registerAPIRoutes(mux, ideaHandlers, teamHandlers, services.Authorizer)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	if services.DB != nil && services.Redis != nil {
		mux.Handle("GET /readyz", readyHandler(services.DB, services.Redis))
	}

	return CORS(services.AppURL)(mux)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, services RouterServices) {
	mux.HandleFunc("GET /auth/discovery/{method}", h.DiscoveryStart)
	mux.HandleFunc("GET /auth/redirect", h.Redirect)
	mux.HandleFunc("GET /auth/select-team", h.SelectTeam)
	mux.HandleFunc("POST /auth/register", h.Register)
	mux.HandleFunc("POST /auth/switch-team", h.SwitchTeam)
	mux.HandleFunc("GET /auth/logout", h.Logout)

	emailHandler := http.Handler(http.HandlerFunc(h.DiscoveryEmail))
	if services.EmailLimiter != nil {
		emailHandler = RateLimit(services.EmailLimiter, services.TrustProxy, services.Logger)(emailHandler)
	}
	mux.Handle("POST /auth/discovery/email", emailHandler)
}

func registerAPIRoutes(mux *http.ServeMux, ideas *IdeaHandlers, team *TeamHandlers, authz ports.Authorizer) {
	gate := func(resource, action string, h http.HandlerFunc) http.Handler {
		return RequirePermission(authz, resource, action)(h)
	}

	mux.Handle("GET /api/ideas", gate("stytch.self", "*", ideas.List))
	mux.Handle("POST /api/idea", gate("stytch.self", "*", ideas.Create))
	mux.Handle("DELETE /api/idea", gate("idea", "delete", ideas.Delete))

	mux.Handle("GET /api/team", gate("stytch.member", "search", team.ListMembers))
	mux.Handle("POST /api/team", gate("stytch.member", "create", team.InviteMember))
	mux.Handle("GET /api/team-settings", gate("stytch.organization", "get", team.GetSettings))
	mux.Handle("POST /api/team-settings", gate("stytch.organization", "update", team.UpdateSettings))

	mux.Handle("GET /api/account", gate("stytch.self", "*", team.GetAccount))
	mux.Handle("POST /api/account", gate("stytch.self", "*", team.UpdateAccount))
}
