package stytch

import (
	"context"
	"fmt"

	domainauth "github.com/learnwithjason/stytch-b2b-saas/internal/domain/auth"
)

// Wire shapes for discovery responses. Organization and membership are
// optional in the provider payload; missing objects map to empty fields the
// same way the client-side library treats them.

type organizationSummary struct {
	OrganizationID   string `json:"organization_id"`
	OrganizationName string `json:"organization_name"`
}

type membershipSummary struct {
	Type string `json:"type"`
}

type discoveredOrganization struct {
	Organization *organizationSummary `json:"organization"`
	Membership   *membershipSummary   `json:"membership"`
}

type discoveryResponse struct {
	IntermediateSessionToken string                   `json:"intermediate_session_token"`
	DiscoveredOrganizations  []discoveredOrganization `json:"discovered_organizations"`
}

func (r discoveryResponse) toDomain() domainauth.DiscoveryResult {
	result := domainauth.DiscoveryResult{
		IntermediateToken: r.IntermediateSessionToken,
		Organizations:     make([]domainauth.OrgMembership, 0, len(r.DiscoveredOrganizations)),
	}
	for _, d := range r.DiscoveredOrganizations {
		var m domainauth.OrgMembership
		if d.Organization != nil {
			m.OrganizationID = d.Organization.OrganizationID
			m.OrganizationName = d.Organization.OrganizationName
		}
		if d.Membership != nil {
			m.MembershipType = d.Membership.Type
		}
		result.Organizations = append(result.Organizations, m)
	}
	return result
}

// OAuthDiscovery exchanges a discovery OAuth token for the member's
// discovered organizations.
func (c *Client) OAuthDiscovery(ctx context.Context, token string) (domainauth.DiscoveryResult, error) {
	in := struct {
		DiscoveryOAuthToken string `json:"discovery_oauth_token"`
	}{DiscoveryOAuthToken: token}

	var resp discoveryResponse
	if err := c.post(ctx, "/v1/b2b/oauth/discovery/authenticate", in, &resp); err != nil {
		return domainauth.DiscoveryResult{}, fmt.Errorf("oauth discovery authenticate: %w", err)
	}
	return resp.toDomain(), nil
}

// MagicLinkDiscovery exchanges a discovery magic-link token for the
// member's discovered organizations.
func (c *Client) MagicLinkDiscovery(ctx context.Context, token string) (domainauth.DiscoveryResult, error) {
	in := struct {
		DiscoveryMagicLinksToken string `json:"discovery_magic_links_token"`
	}{DiscoveryMagicLinksToken: token}

	var resp discoveryResponse
	if err := c.post(ctx, "/v1/b2b/magic_links/discovery/authenticate", in, &resp); err != nil {
		return domainauth.DiscoveryResult{}, fmt.Errorf("magic link discovery authenticate: %w", err)
	}
	return resp.toDomain(), nil
}

// ExchangeIntermediateSession turns an intermediate token plus an
// organization id into a full session. This call backs the single choke
// point through which every "become authenticated for org X" transition passes.
func (c *Client) ExchangeIntermediateSession(ctx context.Context, intermediateToken, orgID string) (domainauth.SessionTokens, error) {
	in := struct {
		IntermediateSessionToken string `json:"intermediate_session_token"`
		OrganizationID           string `json:"organization_id"`
	}{IntermediateSessionToken: intermediateToken, OrganizationID: orgID}

	var resp struct {
		MemberID     string `json:"member_id"`
		SessionToken string `json:"session_token"`
		SessionJWT   string `json:"session_jwt"`
	}
	if err := c.post(ctx, "/v1/b2b/discovery/intermediate_sessions/exchange", in, &resp); err != nil {
		return domainauth.SessionTokens{}, fmt.Errorf("exchange intermediate session: %w", err)
	}

	return domainauth.SessionTokens{
		MemberID:     resp.MemberID,
		OrgID:        orgID,
		SessionToken: resp.SessionToken,
		SessionJWT:   resp.SessionJWT,
	}, nil
}

// CreateOrganization registers a new organization from an intermediate
// token; the provider establishes a session for its founding member.
func (c *Client) CreateOrganization(ctx context.Context, intermediateToken, orgName string) (domainauth.SessionTokens, error) {
	in := struct {
		IntermediateSessionToken string `json:"intermediate_session_token"`
		OrganizationName         string `json:"organization_name"`
		OrganizationSlug         string `json:"organization_slug"`
	}{
		IntermediateSessionToken: intermediateToken,
		OrganizationName:         orgName,
		OrganizationSlug:         slugify(orgName),
	}

	var resp struct {
		MemberID     string               `json:"member_id"`
		Organization *organizationSummary `json:"organization"`
		SessionToken string               `json:"session_token"`
		SessionJWT   string               `json:"session_jwt"`
	}
	if err := c.post(ctx, "/v1/b2b/discovery/organizations/create", in, &resp); err != nil {
		return domainauth.SessionTokens{}, fmt.Errorf("create organization: %w", err)
	}

	tokens := domainauth.SessionTokens{
		MemberID:     resp.MemberID,
		SessionToken: resp.SessionToken,
		SessionJWT:   resp.SessionJWT,
	}
	if resp.Organization != nil {
		tokens.OrgID = resp.Organization.OrganizationID
	}
	return tokens, nil
}
