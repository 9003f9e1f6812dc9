// Package ports defines interfaces (hexagonal ports) for the auth provider
// and local storage. Implementations live in internal/adapters and
// internal/data; orchestration in internal/service.
package ports

import (
	"context"

	domainauth "github.com/learnwithjason/stytch-b2b-saas/internal/domain/auth"
	"github.com/learnwithjason/stytch-b2b-saas/internal/domain/model"
)

// AuthProvider covers the provider's authentication flows: discovery,
// direct magic links, intermediate-session exchange, tenant switching,
// organization registration, and session revocation.
//
// Every method is a single blocking call with no retries. Non-success
// provider responses surface as *auth.ProviderError so callers can
// propagate status and body verbatim.
type AuthProvider interface {
	// OAuthDiscovery exchanges a discovery OAuth token for the member's
	// discovered organizations and an intermediate session token.
	OAuthDiscovery(ctx context.Context, token string) (domainauth.DiscoveryResult, error)

	// MagicLinkDiscovery is the magic-link flavor of OAuthDiscovery.
	MagicLinkDiscovery(ctx context.Context, token string) (domainauth.DiscoveryResult, error)

	// MagicLinkAuthenticate completes an organization-bound magic link,
	// yielding an intermediate token tied to exactly one organization.
	MagicLinkAuthenticate(ctx context.Context, token string) (domainauth.MagicLinkResult, error)

	// ExchangeIntermediateSession turns an intermediate token plus a chosen
	// organization id into a full session.
	ExchangeIntermediateSession(ctx context.Context, intermediateToken, orgID string) (domainauth.SessionTokens, error)

	// ExchangeSession swaps a session bound to one organization for a
	// session bound to another, without re-authentication.
	ExchangeSession(ctx context.Context, sessionToken, orgID string) (domainauth.SessionTokens, error)

	// CreateOrganization registers a new organization from an intermediate
	// token and returns the session established for its first member.
	CreateOrganization(ctx context.Context, intermediateToken, orgName string) (domainauth.SessionTokens, error)

	// RevokeSessions revokes all of a member's sessions.
	RevokeSessions(ctx context.Context, memberID string) error

	// SendDiscoveryEmail sends a discovery magic link to an email address.
	SendDiscoveryEmail(ctx context.Context, email string) error
}

// Authorizer asks the provider whether a session may perform an action on a
// resource within an organization. Verdicts are never cached; every gated
// request re-checks.
type Authorizer interface {
	Authorize(ctx context.Context, sessionToken string, check domainauth.AuthorizationCheck) (domainauth.Verdict, error)
}

// MemberSearchResult is a provider member search response: the matching
// members plus the organizations they were searched within, keyed by org id.
type MemberSearchResult struct {
	Members       []model.Member
	Organizations map[string]model.Organization
}

// MemberDirectory looks up provider members. Split from OrganizationAPI so
// consumers that only read member identities (the idea mirror sync) do not
// see administration methods.
type MemberDirectory interface {
	GetMember(ctx context.Context, orgID, memberID string) (*model.Member, error)
}

// OrganizationAPI proxies organization and member administration to the
// provider. Calls carrying a session JWT are additionally authorized
// provider-side for that member.
type OrganizationAPI interface {
	MemberDirectory

	GetOrganization(ctx context.Context, orgID string) (*model.Organization, error)
	UpdateOrganization(ctx context.Context, update model.OrganizationUpdate, sessionJWT string) (*model.Organization, error)
	SearchMembers(ctx context.Context, orgID, sessionJWT string) (*MemberSearchResult, error)
	UpdateMemberName(ctx context.Context, orgID, memberID, name, sessionJWT string) (*model.Member, error)
	InviteMember(ctx context.Context, orgID, email, sessionJWT string) (*model.Member, error)
}
