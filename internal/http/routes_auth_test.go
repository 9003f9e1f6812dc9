package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/learnwithjason/stytch-b2b-saas/internal/domain/auth"
	"github.com/learnwithjason/stytch-b2b-saas/internal/service"
)

// stubProvider implements ports.AuthProvider with canned discovery data.
type stubProvider struct {
	discovery      domainauth.DiscoveryResult
	exchangeErr    error
	revokedMembers []string
}

func (s *stubProvider) OAuthDiscovery(_ context.Context, _ string) (domainauth.DiscoveryResult, error) {
	return s.discovery, nil
}

func (s *stubProvider) MagicLinkDiscovery(_ context.Context, _ string) (domainauth.DiscoveryResult, error) {
	return s.discovery, nil
}

func (s *stubProvider) MagicLinkAuthenticate(_ context.Context, _ string) (domainauth.MagicLinkResult, error) {
	return domainauth.MagicLinkResult{IntermediateToken: "ist-direct", OrganizationID: "org-direct"}, nil
}

func (s *stubProvider) ExchangeIntermediateSession(_ context.Context, token, orgID string) (domainauth.SessionTokens, error) {
	if s.exchangeErr != nil {
		return domainauth.SessionTokens{}, s.exchangeErr
	}
	return domainauth.SessionTokens{MemberID: "m-1", OrgID: orgID, SessionToken: "st-" + token, SessionJWT: "jwt-1"}, nil
}

func (s *stubProvider) ExchangeSession(_ context.Context, _, orgID string) (domainauth.SessionTokens, error) {
	if s.exchangeErr != nil {
		return domainauth.SessionTokens{}, s.exchangeErr
	}
	return domainauth.SessionTokens{MemberID: "m-1", OrgID: orgID, SessionToken: "st-2", SessionJWT: "jwt-2"}, nil
}

func (s *stubProvider) CreateOrganization(_ context.Context, _, name string) (domainauth.SessionTokens, error) {
	return domainauth.SessionTokens{MemberID: "m-1", OrgID: "org-" + name, SessionToken: "st-3", SessionJWT: "jwt-3"}, nil
}

func (s *stubProvider) RevokeSessions(_ context.Context, memberID string) error {
	s.revokedMembers = append(s.revokedMembers, memberID)
	return nil
}

func (s *stubProvider) SendDiscoveryEmail(_ context.Context, _ string) error {
	return errors.New("smtp backends are down")
}

type stubOAuth struct{}

func (stubOAuth) OAuthDiscoveryStartURL(method string) (string, error) {
	if method != "google" && method != "microsoft" {
		return "", errors.New("oauth method " + method + " is unsupported")
	}
	return "https://test.stytch.com/v1/b2b/public/oauth/" + method + "/discovery/start?public_token=pt", nil
}

const testAppURL = "http://localhost:4321"

func newTestRouter(provider *stubProvider, authz *fakeAuthorizer) http.Handler {
	logger := slog.Default()
	if authz == nil {
		authz = &fakeAuthorizer{
			fn: func(_ context.Context, _ string, _ domainauth.AuthorizationCheck) (domainauth.Verdict, error) {
				return domainauth.Verdict{Authorized: true}, nil
			},
		}
	}
	return NewRouter(RouterServices{
		Auth:       service.NewAuthService(provider, logger),
		Authorizer: authz,
		OAuth:      stubOAuth{},
		AppURL:     testAppURL,
		Logger:     logger,
	})
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRedirectDiscoverySetsCookiesAndRedirects(t *testing.T) {
	provider := &stubProvider{
		discovery: domainauth.DiscoveryResult{
			IntermediateToken: "ist-1",
			Organizations: []domainauth.OrgMembership{
				{OrganizationID: "org-1", OrganizationName: "Acme Inc", MembershipType: "active_member"},
				{OrganizationID: "org-2", OrganizationName: "Globex", MembershipType: "invited_member"},
			},
		},
	}
	router := newTestRouter(provider, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/redirect?stytch_token_type=discovery&token=tok", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, testAppURL+"/dashboard/select-team", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	it := cookieByName(cookies, domainauth.CookieIntermediateToken)
	require.NotNil(t, it)
	assert.Equal(t, "ist-1", it.Value)
	assert.Equal(t, "/", it.Path)
	assert.False(t, it.HttpOnly)

	dc := cookieByName(cookies, domainauth.CookieDiscoveredOrgs)
	require.NotNil(t, dc)
	decoded, err := url.QueryUnescape(dc.Value)
	require.NoError(t, err)

	var orgs []domainauth.DiscoveredOrg
	require.NoError(t, json.Unmarshal([]byte(decoded), &orgs))
	require.Len(t, orgs, 2)
	assert.Equal(t, domainauth.DiscoveredOrg{ID: "org-1", Name: "Acme Inc", Status: "active_member"}, orgs[0])
}

func TestRedirectUnknownTokenType(t *testing.T) {
	router := newTestRouter(&stubProvider{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/redirect?stytch_token_type=saml&token=tok", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"saml"`)
}

func TestRedirectMultiTenantMagicLinkCreatesSession(t *testing.T) {
	router := newTestRouter(&stubProvider{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/redirect?stytch_token_type=multi_tenant_magic_links&token=tok", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, testAppURL+"/dashboard", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	org := cookieByName(cookies, domainauth.CookieOrgID)
	require.NotNil(t, org)
	assert.Equal(t, "org-direct", org.Value)
	require.NotNil(t, cookieByName(cookies, domainauth.CookieSessionToken))
	require.NotNil(t, cookieByName(cookies, domainauth.CookieSessionJWT))
	require.NotNil(t, cookieByName(cookies, domainauth.CookieMemberID))
}

func TestSelectTeamExchangesIntermediateToken(t *testing.T) {
	router := newTestRouter(&stubProvider{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/select-team?org_id=org-7", nil)
	req.AddCookie(&http.Cookie{Name: domainauth.CookieIntermediateToken, Value: "ist-9"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, testAppURL+"/dashboard", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	org := cookieByName(cookies, domainauth.CookieOrgID)
	require.NotNil(t, org)
	assert.Equal(t, "org-7", org.Value)

	// transient discovery cookies are cleared
	it := cookieByName(cookies, domainauth.CookieIntermediateToken)
	require.NotNil(t, it)
	assert.Negative(t, it.MaxAge)
	dc := cookieByName(cookies, domainauth.CookieDiscoveredOrgs)
	require.NotNil(t, dc)
	assert.Negative(t, dc.MaxAge)
}

func TestSelectTeamRelaysProviderError(t *testing.T) {
	provider := &stubProvider{
		exchangeErr: &domainauth.ProviderError{StatusCode: 404, Body: []byte(`{"error_type":"organization_not_found"}`)},
	}
	router := newTestRouter(provider, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/select-team?org_id=nope", nil)
	req.AddCookie(&http.Cookie{Name: domainauth.CookieIntermediateToken, Value: "ist"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error_type":"organization_not_found"}`, rec.Body.String())
	assert.Empty(t, rec.Result().Cookies(), "exchange failure must not touch cookies")
}

func TestRegisterCreatesOrgAndSession(t *testing.T) {
	router := newTestRouter(&stubProvider{}, nil)

	form := url.Values{"organization": {"Test Org"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: domainauth.CookieIntermediateToken, Value: "ist"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, testAppURL+"/dashboard", rec.Header().Get("Location"))

	org := cookieByName(rec.Result().Cookies(), domainauth.CookieOrgID)
	require.NotNil(t, org)
	assert.Equal(t, "org-Test Org", org.Value)
}

func TestSwitchTeamNewGoesToLogout(t *testing.T) {
	router := newTestRouter(&stubProvider{}, nil)

	form := url.Values{"organization_id": {"new"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/switch-team", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/logout", rec.Header().Get("Location"))
}

func TestSwitchTeamFailureForcesReauth(t *testing.T) {
	provider := &stubProvider{
		exchangeErr: &domainauth.ProviderError{StatusCode: 403, Body: []byte(`{}`)},
	}
	router := newTestRouter(provider, nil)

	form := url.Values{"organization_id": {"org-2"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/switch-team", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: domainauth.CookieSessionToken, Value: "st"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/logout", rec.Header().Get("Location"))
}

func TestLogoutRevokesAndClearsCookies(t *testing.T) {
	provider := &stubProvider{}
	router := newTestRouter(provider, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/logout", nil)
	for _, c := range sessionCookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, testAppURL+"/dashboard/login", rec.Header().Get("Location"))
	assert.Equal(t, []string{"m-1"}, provider.revokedMembers)

	cookies := rec.Result().Cookies()
	for _, name := range []string{
		domainauth.CookieMemberID,
		domainauth.CookieOrgID,
		domainauth.CookieSessionToken,
		domainauth.CookieSessionJWT,
	} {
		c := cookieByName(cookies, name)
		require.NotNil(t, c, name)
		assert.Negative(t, c.MaxAge, name)
	}
}

func TestDiscoveryStart(t *testing.T) {
	router := newTestRouter(&stubProvider{}, nil)

	t.Run("google", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/discovery/google", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Contains(t, rec.Header().Get("Location"), "/v1/b2b/public/oauth/google/discovery/start")
	})

	t.Run("unsupported", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/discovery/github", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "github")
	})
}

func TestDiscoveryEmailAlwaysAccepts(t *testing.T) {
	router := newTestRouter(&stubProvider{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/discovery/email", strings.NewReader(`{"email_address":"ada@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Please check your email"}`, rec.Body.String())
}
