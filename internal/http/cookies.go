package httpx

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/learnwithjason/stytch-b2b-saas/internal/domain/auth"
)

// Auth cookies are deliberately readable by client-side JavaScript; the
// dashboard's provider library consumes them directly. They are path-scoped
// to "/" and never HttpOnly.

func secureRequest(r *http.Request) bool {
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}

func setCookie(w http.ResponseWriter, r *http.Request, domain, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   domain,
		Secure:   secureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func clearCookie(w http.ResponseWriter, r *http.Request, domain, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   domain,
		MaxAge:   -1,
		Secure:   secureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func setSessionCookies(w http.ResponseWriter, r *http.Request, domain string, tokens auth.SessionTokens) {
	setCookie(w, r, domain, auth.CookieMemberID, tokens.MemberID)
	setCookie(w, r, domain, auth.CookieOrgID, tokens.OrgID)
	setCookie(w, r, domain, auth.CookieSessionToken, tokens.SessionToken)
	setCookie(w, r, domain, auth.CookieSessionJWT, tokens.SessionJWT)
}

func clearSessionCookies(w http.ResponseWriter, r *http.Request, domain string) {
	clearCookie(w, r, domain, auth.CookieMemberID)
	clearCookie(w, r, domain, auth.CookieOrgID)
	clearCookie(w, r, domain, auth.CookieSessionToken)
	clearCookie(w, r, domain, auth.CookieSessionJWT)
}

// encodeCookieValue percent-encodes a value the way browsers expect to
// decode it with decodeURIComponent. QueryEscape alone would turn spaces
// into plus signs.
func encodeCookieValue(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}
