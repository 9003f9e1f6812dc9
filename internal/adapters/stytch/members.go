package stytch

import (
	"context"
	"fmt"
	"net/url"

	"github.com/learnwithjason/stytch-b2b-saas/internal/domain/model"
	"github.com/learnwithjason/stytch-b2b-saas/internal/ports"
)

// Compile-time checks that the client satisfies every provider port.
var (
	_ ports.AuthProvider    = (*Client)(nil)
	_ ports.Authorizer      = (*Client)(nil)
	_ ports.OrganizationAPI = (*Client)(nil)
)

type memberResponse struct {
	Member *model.Member `json:"member"`
}

func memberPath(orgID, memberID string) string {
	return "/v1/b2b/organizations/" + url.PathEscape(orgID) + "/members/" + url.PathEscape(memberID)
}

// SearchMembers lists every member of an organization along with the
// organization records the search spanned, keyed by organization id.
func (c *Client) SearchMembers(ctx context.Context, orgID, sessionJWT string) (*ports.MemberSearchResult, error) {
	in := struct {
		OrganizationIDs []string `json:"organization_ids"`
	}{OrganizationIDs: []string{orgID}}

	var resp struct {
		Members       []model.Member                `json:"members"`
		Organizations map[string]model.Organization `json:"organizations"`
	}
	if err := c.post(ctx, "/v1/b2b/organizations/members/search", in, &resp, withSessionJWT(sessionJWT)); err != nil {
		return nil, fmt.Errorf("search members: %w", err)
	}

	return &ports.MemberSearchResult{
		Members:       resp.Members,
		Organizations: resp.Organizations,
	}, nil
}

// GetMember fetches a single member record.
func (c *Client) GetMember(ctx context.Context, orgID, memberID string) (*model.Member, error) {
	var resp memberResponse
	if err := c.get(ctx, memberPath(orgID, memberID), &resp); err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	if resp.Member == nil {
		return nil, fmt.Errorf("get member: empty response")
	}
	return resp.Member, nil
}

// UpdateMemberName changes a member's display name. The session JWT makes
// the provider authorize the write as that member.
func (c *Client) UpdateMemberName(ctx context.Context, orgID, memberID, name, sessionJWT string) (*model.Member, error) {
	in := struct {
		Name string `json:"name"`
	}{Name: name}

	var resp memberResponse
	if err := c.put(ctx, memberPath(orgID, memberID), in, &resp, withSessionJWT(sessionJWT)); err != nil {
		return nil, fmt.Errorf("update member name: %w", err)
	}
	if resp.Member == nil {
		return nil, fmt.Errorf("update member name: empty response")
	}
	return resp.Member, nil
}
