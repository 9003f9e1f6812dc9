package stytch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/learnwithjason/stytch-b2b-saas/internal/domain/auth"
	"github.com/learnwithjason/stytch-b2b-saas/internal/domain/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		ProjectID:   "project-test-123",
		Secret:      "secret-abc",
		PublicToken: "public-token-xyz",
		BaseURL:     srv.URL,
	})
	require.NoError(t, err)
	return client
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(Config{Secret: "s", BaseURL: "http://x"})
	require.Error(t, err)

	_, err = NewClient(Config{ProjectID: "p", BaseURL: "http://x"})
	require.Error(t, err)

	_, err = NewClient(Config{ProjectID: "p", Secret: "s"})
	require.Error(t, err)
}

func TestOAuthDiscoveryStartURL(t *testing.T) {
	client, err := NewClient(Config{ProjectID: "p", Secret: "s", PublicToken: "pt", BaseURL: "https://test.stytch.com"})
	require.NoError(t, err)

	u, err := client.OAuthDiscoveryStartURL("google")
	require.NoError(t, err)
	assert.Equal(t, "https://test.stytch.com/v1/b2b/public/oauth/google/discovery/start?public_token=pt", u)

	_, err = client.OAuthDiscoveryStartURL("github")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "github")
}

func TestOAuthDiscoveryRequestShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/b2b/oauth/discovery/authenticate", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "project-test-123", user)
		assert.Equal(t, "secret-abc", pass)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tok-1", body["discovery_oauth_token"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"intermediate_session_token": "ist-1",
			"discovered_organizations": []map[string]any{
				{
					"organization": map[string]string{"organization_id": "org-1", "organization_name": "Acme"},
					"membership":   map[string]string{"type": "active_member"},
				},
				{
					// membership objects can be absent
					"organization": map[string]string{"organization_id": "org-2", "organization_name": "Globex"},
				},
			},
		})
	})

	result, err := client.OAuthDiscovery(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "ist-1", result.IntermediateToken)
	require.Len(t, result.Organizations, 2)
	assert.Equal(t, domainauth.OrgMembership{
		OrganizationID:   "org-1",
		OrganizationName: "Acme",
		MembershipType:   "active_member",
	}, result.Organizations[0])
	assert.Empty(t, result.Organizations[1].MembershipType)
}

func TestProviderErrorPreservesStatusAndBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error_type":"invalid_token","error_message":"token expired"}`))
	})

	_, err := client.MagicLinkAuthenticate(context.Background(), "stale")
	var pe *domainauth.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusUnauthorized, pe.StatusCode)
	assert.JSONEq(t, `{"error_type":"invalid_token","error_message":"token expired"}`, string(pe.Body))
}

func TestUpdateOrganizationSendsSessionJWT(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v1/b2b/organizations/org-1", r.URL.Path)
		assert.Equal(t, "jwt-1", r.Header.Get(sessionJWTHeader))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"organization": map[string]any{"organization_id": "org-1", "email_invites": "ALL_ALLOWED"},
		})
	})

	org, err := client.UpdateOrganization(context.Background(), model.OrganizationUpdate{OrganizationID: "org-1"}, "jwt-1")
	require.NoError(t, err)
	assert.Equal(t, "org-1", org.OrganizationID)
	assert.Equal(t, domainauth.PolicyAllAllowed, org.EmailInvites)
}

func TestGetMemberOmitsSessionJWT(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/b2b/organizations/org-1/members/m-1", r.URL.Path)
		assert.Empty(t, r.Header.Get(sessionJWTHeader))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"member": map[string]any{"member_id": "m-1", "name": "Ada"},
		})
	})

	member, err := client.GetMember(context.Background(), "org-1", "m-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", member.Name)
}

func TestSearchMembersRequestShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/b2b/organizations/members/search", r.URL.Path)
		assert.Equal(t, "jwt-1", r.Header.Get(sessionJWTHeader))

		var body struct {
			OrganizationIDs []string `json:"organization_ids"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"org-1"}, body.OrganizationIDs)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"members":       []map[string]any{{"member_id": "m-1"}},
			"organizations": map[string]any{"org-1": map[string]any{"organization_id": "org-1"}},
		})
	})

	result, err := client.SearchMembers(context.Background(), "org-1", "jwt-1")
	require.NoError(t, err)
	require.Len(t, result.Members, 1)
	require.Contains(t, result.Organizations, "org-1")
}

func TestInviteMemberRequestShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/b2b/magic_links/email/invite/send", r.URL.Path)
		assert.Equal(t, "jwt-1", r.Header.Get(sessionJWTHeader))

		var body struct {
			EmailAddress   string `json:"email_address"`
			OrganizationID string `json:"organization_id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "grace@example.com", body.EmailAddress)
		assert.Equal(t, "org-1", body.OrganizationID)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"member": map[string]any{"member_id": "m-new", "email_address": "grace@example.com", "status": "invited"},
		})
	})

	member, err := client.InviteMember(context.Background(), "org-1", "grace@example.com", "jwt-1")
	require.NoError(t, err)
	assert.Equal(t, "m-new", member.MemberID)
	assert.Equal(t, "invited", member.Status)
}

func TestAuthorizeVerdict(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/b2b/sessions/authenticate", r.URL.Path)

		var body struct {
			SessionToken       string `json:"session_token"`
			AuthorizationCheck struct {
				OrganizationID string `json:"organization_id"`
				ResourceID     string `json:"resource_id"`
				Action         string `json:"action"`
			} `json:"authorization_check"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "st-1", body.SessionToken)
		assert.Equal(t, "idea", body.AuthorizationCheck.ResourceID)
		assert.Equal(t, "delete", body.AuthorizationCheck.Action)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"verdict": map[string]any{"authorized": true},
		})
	})

	verdict, err := client.Authorize(context.Background(), "st-1", domainauth.AuthorizationCheck{
		OrganizationID: "org-1",
		Resource:       "idea",
		Action:         "delete",
	})
	require.NoError(t, err)
	assert.True(t, verdict.Authorized)
}

func TestCreateOrganizationSlugsName(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Test Org!", body["organization_name"])
		assert.Equal(t, "test-org", body["organization_slug"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"member_id":     "m-1",
			"organization":  map[string]string{"organization_id": "org-new"},
			"session_token": "st",
			"session_jwt":   "jwt",
		})
	})

	tokens, err := client.CreateOrganization(context.Background(), "ist", "Test Org!")
	require.NoError(t, err)
	assert.Equal(t, "org-new", tokens.OrgID)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Test Org", want: "test-org"},
		{in: "  Already-slugged  ", want: "already-slugged"},
		{in: "Weird!!Chars##Here", want: "weird-chars-here"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify(tt.in), tt.in)
	}
}
