// Package service contains the application services that orchestrate the
// auth provider, local storage, and domain rules.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/learnwithjason/stytch-b2b-saas/internal/domain/auth"
	apperrors "github.com/learnwithjason/stytch-b2b-saas/internal/errors"
	"github.com/learnwithjason/stytch-b2b-saas/internal/ports"
)

// DiscoveryOutcome is a redirect that discovered organizations: the member
// holds an intermediate token and must pick (or create) a tenant next.
type DiscoveryOutcome struct {
	IntermediateToken string
	Organizations     []auth.DiscoveredOrg
}

// RedirectOutcome is the result of dispatching a provider redirect. Exactly
// one of Discovery or Session is set.
type RedirectOutcome struct {
	Discovery *DiscoveryOutcome
	Session   *auth.SessionTokens
}

// AuthService orchestrates the provider-backed authentication flows.
type AuthService struct {
	provider ports.AuthProvider
	logger   *slog.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(provider ports.AuthProvider, logger *slog.Logger) *AuthService {
	return &AuthService{provider: provider, logger: logger.With("service", "auth")}
}

// HandleRedirect dispatches a provider redirect callback on its token type.
// Discovery tokens resolve to an org-selection step; organization-bound magic
// links go straight to a full session.
func (s *AuthService) HandleRedirect(ctx context.Context, tokenType auth.TokenType, token string) (RedirectOutcome, error) {
	switch tokenType {
	case auth.TokenTypeDiscoveryOAuth:
		result, err := s.provider.OAuthDiscovery(ctx, token)
		if err != nil {
			return RedirectOutcome{}, err
		}
		return RedirectOutcome{Discovery: discoveryOutcome(result)}, nil

	case auth.TokenTypeDiscoveryMagicLink:
		result, err := s.provider.MagicLinkDiscovery(ctx, token)
		if err != nil {
			return RedirectOutcome{}, err
		}
		return RedirectOutcome{Discovery: discoveryOutcome(result)}, nil

	case auth.TokenTypeMultiTenantMagicLink:
		link, err := s.provider.MagicLinkAuthenticate(ctx, token)
		if err != nil {
			return RedirectOutcome{}, err
		}
		session, err := s.provider.ExchangeIntermediateSession(ctx, link.IntermediateToken, link.OrganizationID)
		if err != nil {
			return RedirectOutcome{}, err
		}
		return RedirectOutcome{Session: &session}, nil

	default:
		return RedirectOutcome{}, fmt.Errorf("unhandled token type %v", tokenType)
	}
}

func discoveryOutcome(result auth.DiscoveryResult) *DiscoveryOutcome {
	orgs := make([]auth.DiscoveredOrg, 0, len(result.Organizations))
	for _, m := range result.Organizations {
		orgs = append(orgs, auth.DiscoveredOrg{
			ID:     m.OrganizationID,
			Name:   m.OrganizationName,
			Status: m.MembershipType,
		})
	}
	return &DiscoveryOutcome{
		IntermediateToken: result.IntermediateToken,
		Organizations:     orgs,
	}
}

// ExchangeIntermediate converts a pending intermediate token plus a chosen
// organization into a full session.
func (s *AuthService) ExchangeIntermediate(ctx context.Context, intermediateToken, orgID string) (auth.SessionTokens, error) {
	return s.provider.ExchangeIntermediateSession(ctx, intermediateToken, orgID)
}

// Register creates a new organization from an intermediate token and logs
// the member into it.
func (s *AuthService) Register(ctx context.Context, intermediateToken, orgName string) (auth.SessionTokens, error) {
	orgName = strings.TrimSpace(orgName)
	if orgName == "" {
		return auth.SessionTokens{}, apperrors.ValidationField("organization", "organization name is required")
	}
	return s.provider.CreateOrganization(ctx, intermediateToken, orgName)
}

// SwitchTeam exchanges the current session for one bound to another
// organization without re-authentication.
func (s *AuthService) SwitchTeam(ctx context.Context, sessionToken, orgID string) (auth.SessionTokens, error) {
	return s.provider.ExchangeSession(ctx, sessionToken, orgID)
}

// Logout revokes all of the member's sessions.
func (s *AuthService) Logout(ctx context.Context, memberID string) error {
	return s.provider.RevokeSessions(ctx, memberID)
}

// SendDiscoveryEmail asks the provider to email a discovery magic link.
func (s *AuthService) SendDiscoveryEmail(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperrors.ValidationField("email", "email is required")
	}
	return s.provider.SendDiscoveryEmail(ctx, email)
}
