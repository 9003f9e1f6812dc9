package stytch

import (
	"context"
	"fmt"

	domainauth "github.com/learnwithjason/stytch-b2b-saas/internal/domain/auth"
)

// Authorize asks the provider to authenticate a session with an embedded
// authorization check. Only verdict.authorized == true grants access; the
// caller treats every other outcome (including transport errors) as a denial.
func (c *Client) Authorize(ctx context.Context, sessionToken string, check domainauth.AuthorizationCheck) (domainauth.Verdict, error) {
	in := struct {
		SessionToken       string `json:"session_token"`
		AuthorizationCheck struct {
			OrganizationID string `json:"organization_id"`
			ResourceID     string `json:"resource_id"`
			Action         string `json:"action"`
		} `json:"authorization_check"`
	}{SessionToken: sessionToken}
	in.AuthorizationCheck.OrganizationID = check.OrganizationID
	in.AuthorizationCheck.ResourceID = check.Resource
	in.AuthorizationCheck.Action = check.Action

	var resp struct {
		Verdict struct {
			Authorized bool `json:"authorized"`
		} `json:"verdict"`
	}
	if err := c.post(ctx, "/v1/b2b/sessions/authenticate", in, &resp); err != nil {
		return domainauth.Verdict{}, fmt.Errorf("session authenticate: %w", err)
	}

	return domainauth.Verdict{Authorized: resp.Verdict.Authorized}, nil
}

// ExchangeSession swaps the current session for one bound to another
// organization. The provider may refuse (e.g. auth methods don't match),
// in which case the caller forces a fresh login.
func (c *Client) ExchangeSession(ctx context.Context, sessionToken, orgID string) (domainauth.SessionTokens, error) {
	in := struct {
		OrganizationID string `json:"organization_id"`
		SessionToken   string `json:"session_token"`
	}{OrganizationID: orgID, SessionToken: sessionToken}

	var resp struct {
		MemberID     string               `json:"member_id"`
		Organization *organizationSummary `json:"organization"`
		SessionToken string               `json:"session_token"`
		SessionJWT   string               `json:"session_jwt"`
	}
	if err := c.post(ctx, "/v1/b2b/sessions/exchange", in, &resp); err != nil {
		return domainauth.SessionTokens{}, fmt.Errorf("exchange session: %w", err)
	}

	tokens := domainauth.SessionTokens{
		MemberID:     resp.MemberID,
		OrgID:        orgID,
		SessionToken: resp.SessionToken,
		SessionJWT:   resp.SessionJWT,
	}
	if resp.Organization != nil {
		tokens.OrgID = resp.Organization.OrganizationID
	}
	return tokens, nil
}

// RevokeSessions revokes all sessions for a member.
func (c *Client) RevokeSessions(ctx context.Context, memberID string) error {
	in := struct {
		MemberID string `json:"member_id"`
	}{MemberID: memberID}

	if err := c.post(ctx, "/v1/b2b/sessions/revoke", in, nil); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return nil
}
