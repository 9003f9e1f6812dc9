package stytch

import (
	"context"
	"fmt"

	domainauth "github.com/learnwithjason/stytch-b2b-saas/internal/domain/auth"
	"github.com/learnwithjason/stytch-b2b-saas/internal/domain/model"
)

// MagicLinkAuthenticate completes an organization-bound magic link. The
// resulting intermediate token is tied to exactly one organization, so no
// tenant-selection step follows.
func (c *Client) MagicLinkAuthenticate(ctx context.Context, token string) (domainauth.MagicLinkResult, error) {
	in := struct {
		MagicLinksToken string `json:"magic_links_token"`
	}{MagicLinksToken: token}

	var resp struct {
		IntermediateSessionToken string `json:"intermediate_session_token"`
		OrganizationID           string `json:"organization_id"`
	}
	if err := c.post(ctx, "/v1/b2b/magic_links/authenticate", in, &resp); err != nil {
		return domainauth.MagicLinkResult{}, fmt.Errorf("magic link authenticate: %w", err)
	}

	return domainauth.MagicLinkResult{
		IntermediateToken: resp.IntermediateSessionToken,
		OrganizationID:    resp.OrganizationID,
	}, nil
}

// InviteMember emails an organization invite magic link. The inviter's
// session JWT rides along so the provider checks their invite permission.
func (c *Client) InviteMember(ctx context.Context, orgID, email, sessionJWT string) (*model.Member, error) {
	in := struct {
		EmailAddress   string `json:"email_address"`
		OrganizationID string `json:"organization_id"`
	}{EmailAddress: email, OrganizationID: orgID}

	var resp memberResponse
	if err := c.post(ctx, "/v1/b2b/magic_links/email/invite/send", in, &resp, withSessionJWT(sessionJWT)); err != nil {
		return nil, fmt.Errorf("invite member: %w", err)
	}
	if resp.Member == nil {
		return nil, fmt.Errorf("invite member: empty response")
	}
	return resp.Member, nil
}

// SendDiscoveryEmail sends a discovery magic link to an email address.
func (c *Client) SendDiscoveryEmail(ctx context.Context, email string) error {
	in := struct {
		EmailAddress string `json:"email_address"`
	}{EmailAddress: email}

	if err := c.post(ctx, "/v1/b2b/magic_links/email/discovery/send", in, nil); err != nil {
		return fmt.Errorf("send discovery email: %w", err)
	}
	return nil
}
