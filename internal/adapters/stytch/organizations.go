package stytch

import (
	"context"
	"fmt"
	"net/url"

	"github.com/learnwithjason/stytch-b2b-saas/internal/domain/model"
)

type organizationResponse struct {
	Organization *model.Organization `json:"organization"`
}

// GetOrganization fetches one organization's full record, including its
// auth-method and email-invite settings.
func (c *Client) GetOrganization(ctx context.Context, orgID string) (*model.Organization, error) {
	var resp organizationResponse
	path := "/v1/b2b/organizations/" + url.PathEscape(orgID)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("get organization: %w", err)
	}
	if resp.Organization == nil {
		return nil, fmt.Errorf("get organization: empty response")
	}
	return resp.Organization, nil
}

// UpdateOrganization applies a partial settings update. The caller's
// session JWT rides along so the provider enforces its own RBAC on the write.
func (c *Client) UpdateOrganization(ctx context.Context, update model.OrganizationUpdate, sessionJWT string) (*model.Organization, error) {
	var resp organizationResponse
	path := "/v1/b2b/organizations/" + url.PathEscape(update.OrganizationID)
	if err := c.put(ctx, path, update, &resp, withSessionJWT(sessionJWT)); err != nil {
		return nil, fmt.Errorf("update organization: %w", err)
	}
	if resp.Organization == nil {
		return nil, fmt.Errorf("update organization: empty response")
	}
	return resp.Organization, nil
}
