// Package auth contains domain-level types for the provider-backed
// authentication flows. It is pure and free of framework/adapter concerns.
package auth

import "fmt"

// TokenType is the closed set of token tags the provider attaches to its
// redirect callback. Dispatch over it is exhaustive; an unrecognized tag
// fails at parse time instead of falling through a string comparison chain.
type TokenType int

const (
	// TokenTypeDiscoveryOAuth is issued after OAuth-based discovery
	// (Google or Microsoft). Yields a list of organizations to choose from.
	TokenTypeDiscoveryOAuth TokenType = iota
	// TokenTypeDiscoveryMagicLink is issued after an email magic-link
	// discovery flow. Yields a list of organizations to choose from.
	TokenTypeDiscoveryMagicLink
	// TokenTypeMultiTenantMagicLink is issued by an organization-scoped
	// magic link. Bound to exactly one organization, no selection step.
	TokenTypeMultiTenantMagicLink
)

// tokenTypeTags are the wire values used in the stytch_token_type query param.
var tokenTypeTags = map[string]TokenType{
	"discovery_oauth":          TokenTypeDiscoveryOAuth,
	"discovery":                TokenTypeDiscoveryMagicLink,
	"multi_tenant_magic_links": TokenTypeMultiTenantMagicLink,
}

// ParseTokenType maps a redirect tag to its TokenType. Unknown tags are an
// integration bug on the caller's side and surface as an error carrying the tag.
func ParseTokenType(tag string) (TokenType, error) {
	t, ok := tokenTypeTags[tag]
	if !ok {
		return 0, fmt.Errorf("unknown token type %q", tag)
	}
	return t, nil
}

func (t TokenType) String() string {
	for tag, tt := range tokenTypeTags {
		if tt == t {
			return tag
		}
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Cookie names are a fixed contract with the provider's client-side library
// and the dashboard; they must not be renamed. All are path-scoped to "/".
const (
	// CookieIntermediateToken holds a pending cross-org auth handle.
	CookieIntermediateToken = "intermediate_token"
	// CookieDiscoveredOrgs holds a JSON array of {id,name,status} entries.
	CookieDiscoveredOrgs = "discovered_orgs"
	// CookieMemberID holds the current member id.
	CookieMemberID = "stytch_member_id"
	// CookieOrgID holds the current tenant id.
	CookieOrgID = "stytch_org_id"
	// CookieSessionToken holds the opaque session token.
	CookieSessionToken = "stytch_session"
	// CookieSessionJWT holds the signed session JWT for provider-side RBAC checks.
	CookieSessionJWT = "stytch_session_jwt"
)

// SessionTokens is the full set of values that make a session. They are
// written to cookies all together; a request missing any of them has no session.
type SessionTokens struct {
	MemberID     string
	OrgID        string
	SessionToken string
	SessionJWT   string
}

// OrgMembership is one (organization, membership) pair from a discovery response.
type OrgMembership struct {
	OrganizationID   string
	OrganizationName string
	MembershipType   string
}

// DiscoveryResult is the provider's answer to a discovery authenticate call:
// an intermediate token plus zero or more organizations the member may join.
// Zero organizations is a valid state (brand-new user).
type DiscoveryResult struct {
	IntermediateToken string
	Organizations     []OrgMembership
}

// DiscoveredOrg is the client-facing shape stored in the discovered_orgs cookie.
type DiscoveredOrg struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// MagicLinkResult is the outcome of a direct (organization-bound) magic link
// authenticate call.
type MagicLinkResult struct {
	IntermediateToken string
	OrganizationID    string
}

// AuthorizationCheck names the resource/action/org triple a session must be
// authorized for.
type AuthorizationCheck struct {
	OrganizationID string
	Resource       string
	Action         string
}

// Verdict is the provider's RBAC decision. Only an explicit authorized
// verdict grants access; anything else is a denial.
type Verdict struct {
	Authorized bool
}

// Policy is the provider's tri-state settings vocabulary.
type Policy string

const (
	PolicyAllAllowed Policy = "ALL_ALLOWED"
	PolicyRestricted Policy = "RESTRICTED"
	PolicyNotAllowed Policy = "NOT_ALLOWED"
)

// AllAuthMethods is the full set of auth methods an organization can allow.
// A submitted allowed-methods list covering all of them maps to ALL_ALLOWED.
var AllAuthMethods = []string{
	"sso",
	"magic_link",
	"password",
	"google_oauth",
	"microsoft_oauth",
}
