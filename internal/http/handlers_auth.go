package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/learnwithjason/stytch-b2b-saas/internal/domain/auth"
	"github.com/learnwithjason/stytch-b2b-saas/internal/service"
)

// oauthStarter builds the public OAuth discovery start URL the browser is
// sent to. Satisfied by the provider client.
type oauthStarter interface {
	OAuthDiscoveryStartURL(method string) (string, error)
}

// AuthHandlers implements the browser-facing authentication routes. These
// routes speak redirects and cookies, not JSON; the dashboard drives them
// with top-level navigations and form posts.
type AuthHandlers struct {
	Auth         *service.AuthService
	OAuth        oauthStarter
	AppURL       string
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) appPath(path string) string {
	u, err := url.Parse(h.AppURL)
	if err != nil {
		return path
	}
	u.Path = path
	return u.String()
}

// DiscoveryStart redirects the browser to the provider's hosted OAuth
// discovery flow for the given method.
func (h *AuthHandlers) DiscoveryStart(w http.ResponseWriter, r *http.Request) {
	startURL, err := h.OAuth.OAuthDiscoveryStartURL(r.PathValue("method"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, startURL, http.StatusFound)
}

// DiscoveryEmail kicks off an email magic-link discovery flow. The response
// is the same whether or not the send succeeds, so the endpoint cannot be
// used to probe which addresses exist.
func (h *AuthHandlers) DiscoveryEmail(w http.ResponseWriter, r *http.Request) {
	var body struct {
		EmailAddress string `json:"email_address"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	if err := h.Auth.SendDiscoveryEmail(r.Context(), body.EmailAddress); err != nil {
		h.Logger.Warn("discovery email send failed", "err", err)
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "Please check your email"})
}

// Redirect is the provider's callback target. Discovery tokens park the
// member on the team-selection page with an intermediate token; an
// organization-bound magic link becomes a full session immediately.
func (h *AuthHandlers) Redirect(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("stytch_token_type")
	token := r.URL.Query().Get("token")

	tokenType, err := auth.ParseTokenType(tag)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	outcome, err := h.Auth.HandleRedirect(r.Context(), tokenType, token)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	if outcome.Session != nil {
		h.completeSessionExchange(w, r, *outcome.Session)
		http.Redirect(w, r, h.appPath("/dashboard"), http.StatusTemporaryRedirect)
		return
	}

	orgsJSON, err := json.Marshal(outcome.Discovery.Organizations)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "internal", Err: err})
		return
	}

	setCookie(w, r, h.CookieDomain, auth.CookieIntermediateToken, outcome.Discovery.IntermediateToken)
	setCookie(w, r, h.CookieDomain, auth.CookieDiscoveredOrgs, encodeCookieValue(string(orgsJSON)))
	http.Redirect(w, r, h.appPath("/dashboard/select-team"), http.StatusTemporaryRedirect)
}

// SelectTeam exchanges the pending intermediate token for a session bound
// to the chosen organization.
func (h *AuthHandlers) SelectTeam(w http.ResponseWriter, r *http.Request) {
	intermediate := cookieValue(r, auth.CookieIntermediateToken)
	orgID := r.URL.Query().Get("org_id")

	tokens, err := h.Auth.ExchangeIntermediate(r.Context(), intermediate, orgID)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	h.completeSessionExchange(w, r, tokens)
	http.Redirect(w, r, h.appPath("/dashboard"), http.StatusSeeOther)
}

// Register creates a new organization from the pending intermediate token
// and logs the member into it.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return
	}

	intermediate := cookieValue(r, auth.CookieIntermediateToken)
	tokens, err := h.Auth.Register(r.Context(), intermediate, r.FormValue("organization"))
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	h.completeSessionExchange(w, r, tokens)
	http.Redirect(w, r, h.appPath("/dashboard"), http.StatusSeeOther)
}

// SwitchTeam moves an already-authenticated member to another organization
// by exchanging the current session. Choosing "new" or any exchange failure
// falls back to a fresh login.
func (h *AuthHandlers) SwitchTeam(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return
	}

	orgID := r.FormValue("organization_id")
	if orgID == "new" {
		http.Redirect(w, r, "/auth/logout", http.StatusFound)
		return
	}

	tokens, err := h.Auth.SwitchTeam(r.Context(), cookieValue(r, auth.CookieSessionToken), orgID)
	if err != nil {
		h.Logger.Warn("session exchange failed, forcing re-auth", "org_id", orgID, "err", err)
		http.Redirect(w, r, "/auth/logout", http.StatusFound)
		return
	}

	setSessionCookies(w, r, h.CookieDomain, tokens)
	http.Redirect(w, r, h.appPath("/dashboard"), http.StatusSeeOther)
}

// Logout revokes the member's sessions and clears the auth cookies.
// Revocation is best effort; cookies are cleared regardless.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if memberID := cookieValue(r, auth.CookieMemberID); memberID != "" {
		if err := h.Auth.Logout(r.Context(), memberID); err != nil {
			h.Logger.Warn("session revocation failed", "member_id", memberID, "err", err)
		}
	}

	clearSessionCookies(w, r, h.CookieDomain)
	http.Redirect(w, r, h.appPath("/dashboard/login"), http.StatusFound)
}

func (h *AuthHandlers) completeSessionExchange(w http.ResponseWriter, r *http.Request, tokens auth.SessionTokens) {
	clearCookie(w, r, h.CookieDomain, auth.CookieDiscoveredOrgs)
	clearCookie(w, r, h.CookieDomain, auth.CookieIntermediateToken)
	setSessionCookies(w, r, h.CookieDomain, tokens)
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
