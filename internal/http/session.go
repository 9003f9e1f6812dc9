package httpx

import (
	"context"
	"net/http"

	"github.com/learnwithjason/stytch-b2b-saas/internal/domain/auth"
)

// Session is the request's authenticated identity, reconstructed from the
// auth cookies. A request either has all four values or no session at all.
type Session struct {
	MemberID string
	OrgID    string
	Token    string
	JWT      string
}

func sessionFromRequest(r *http.Request) (Session, bool) {
	names := []string{
		auth.CookieMemberID,
		auth.CookieOrgID,
		auth.CookieSessionToken,
		auth.CookieSessionJWT,
	}
	values := make([]string, 0, len(names))
	for _, n := range names {
		c, err := r.Cookie(n)
		if err != nil || c.Value == "" {
			return Session{}, false
		}
		values = append(values, c.Value)
	}
	return Session{
		MemberID: values[0],
		OrgID:    values[1],
		Token:    values[2],
		JWT:      values[3],
	}, true
}

type sessionContextKey struct{}

func withSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// SessionFromContext returns the session stored by the permission gate.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionContextKey{}).(Session)
	return s, ok
}
