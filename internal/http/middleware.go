package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/learnwithjason/stytch-b2b-saas/internal/domain/auth"
	"github.com/learnwithjason/stytch-b2b-saas/internal/ports"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// CORS allows the dashboard origin to call the API with credentials.
func CORS(appURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", appURL)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission gates a route on a provider RBAC check. A request
// without a full session, a provider failure, or a negative verdict all get
// the same opaque 401 so callers learn nothing about which condition failed.
// On success the session is stored in the request context.
func RequirePermission(authz ports.Authorizer, resource, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := sessionFromRequest(r)
			if !ok {
				writeUnauthorized(w)
				return
			}

			verdict, err := authz.Authorize(r.Context(), session.Token, domainauth.AuthorizationCheck{
				OrganizationID: session.OrgID,
				Resource:       resource,
				Action:         action,
			})
			if err != nil || !verdict.Authorized {
				writeUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(withSession(r.Context(), session)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
}

// Limiter is the rate-limit decision point.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit throttles a route per client IP. Limiter errors fail open so a
// Redis outage cannot take the route down with it. With trustProxy set the
// key comes from the X-Forwarded-For hop appended by the fronting proxy;
// without it, every client behind a proxy shares the RemoteAddr bucket.
func RateLimit(limiter Limiter, trustProxy bool, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := limiter.Allow(r.Context(), clientIP(r, trustProxy))
			if err != nil {
				logger.Warn("rate limiter unavailable", "err", err)
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				WriteError(w, ErrorParams{
					Code:    http.StatusTooManyRequests,
					ErrCode: "rate_limited",
					Err:     errors.New("too many requests"),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP keys rate limiting. Only the rightmost X-Forwarded-For entry is
// honored, and only when the deployment declared a trusted proxy hop;
// earlier entries are client-controlled.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			if ip := strings.TrimSpace(parts[len(parts)-1]); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
