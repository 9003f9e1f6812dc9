package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/learnwithjason/stytch-b2b-saas/internal/data"
	"github.com/learnwithjason/stytch-b2b-saas/internal/domain/auth"
	"github.com/learnwithjason/stytch-b2b-saas/internal/domain/model"
	apperrors "github.com/learnwithjason/stytch-b2b-saas/internal/errors"
	"github.com/learnwithjason/stytch-b2b-saas/internal/ports"
)

// TeamMember is the reduced member shape sent to the dashboard. Provider
// default roles (stytch_ prefix) are filtered out; only app roles remain.
type TeamMember struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Status string   `json:"status"`
	Roles  []string `json:"roles"`
}

// TeamMeta carries list-level flags for the members page.
type TeamMeta struct {
	InvitesAllowed bool `json:"invites_allowed"`
}

// TeamMembers is the members-page payload.
type TeamMembers struct {
	Members []TeamMember `json:"members"`
	Meta    TeamMeta     `json:"meta"`
}

// TeamSettingsInput is the raw team-settings form submission. Allowed
// domains arrive as one comma-separated string.
type TeamSettingsInput struct {
	EmailInvites         bool
	AllowedAuthMethods   []string
	EmailAllowedDomains  string
	EmailJITProvisioning bool
}

// TeamService proxies organization and member administration to the
// provider and keeps the local user mirror in step.
type TeamService struct {
	orgs   ports.OrganizationAPI
	users  ports.UserRepository
	logger *slog.Logger
}

// NewTeamService creates a TeamService.
func NewTeamService(orgs ports.OrganizationAPI, users ports.UserRepository, logger *slog.Logger) *TeamService {
	return &TeamService{orgs: orgs, users: users, logger: logger.With("service", "team")}
}

// ListMembers returns the organization's members reduced to dashboard
// fields, plus whether email invites are open to everyone.
func (s *TeamService) ListMembers(ctx context.Context, orgID, sessionJWT string) (*TeamMembers, error) {
	result, err := s.orgs.SearchMembers(ctx, orgID, sessionJWT)
	if err != nil {
		return nil, err
	}

	members := make([]TeamMember, 0, len(result.Members))
	for _, m := range result.Members {
		roles := make([]string, 0, len(m.Roles))
		for _, r := range m.Roles {
			if strings.HasPrefix(r.RoleID, "stytch_") {
				continue
			}
			roles = append(roles, r.RoleID)
		}
		members = append(members, TeamMember{
			ID:     m.MemberID,
			Name:   m.Name,
			Email:  m.EmailAddress,
			Status: m.Status,
			Roles:  roles,
		})
	}

	invitesAllowed := false
	if org, ok := result.Organizations[orgID]; ok {
		invitesAllowed = org.EmailInvites == auth.PolicyAllAllowed
	}

	return &TeamMembers{
		Members: members,
		Meta:    TeamMeta{InvitesAllowed: invitesAllowed},
	}, nil
}

// InviteMember emails an organization invite under the inviter's own
// authorization. The invitee is mirrored lazily on their first idea.
func (s *TeamService) InviteMember(ctx context.Context, orgID, email, sessionJWT string) (*model.Member, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.ValidationField("email", "email is required")
	}
	return s.orgs.InviteMember(ctx, orgID, email, sessionJWT)
}

// GetSettings returns the organization record as the provider holds it.
func (s *TeamService) GetSettings(ctx context.Context, orgID string) (*model.Organization, error) {
	return s.orgs.GetOrganization(ctx, orgID)
}

// UpdateSettings maps the settings form onto the provider's tri-state
// vocabulary and applies the update under the member's own authorization.
func (s *TeamService) UpdateSettings(ctx context.Context, orgID string, in TeamSettingsInput, sessionJWT string) (*model.Organization, error) {
	domains, err := parseAllowedDomains(in.EmailAllowedDomains)
	if err != nil {
		return nil, err
	}

	update := model.OrganizationUpdate{
		OrganizationID:     orgID,
		AllowedAuthMethods: in.AllowedAuthMethods,
		AuthMethods:        authMethodsPolicy(in.AllowedAuthMethods),
		EmailInvites:       auth.PolicyNotAllowed,
	}
	if in.EmailInvites {
		update.EmailInvites = auth.PolicyAllAllowed
	}

	update.EmailAllowedDomains = domains
	if in.EmailJITProvisioning && len(domains) > 0 {
		update.EmailJITProvisioning = auth.PolicyRestricted
	} else {
		update.EmailJITProvisioning = auth.PolicyNotAllowed
	}

	return s.orgs.UpdateOrganization(ctx, update, sessionJWT)
}

// authMethodsPolicy is ALL_ALLOWED only when every known method is allowed.
func authMethodsPolicy(allowed []string) auth.Policy {
	for _, m := range auth.AllAuthMethods {
		found := false
		for _, a := range allowed {
			if a == m {
				found = true
				break
			}
		}
		if !found {
			return auth.PolicyRestricted
		}
	}
	return auth.PolicyAllAllowed
}

// parseAllowedDomains splits a comma-separated domain list and rejects
// entries without a registrable domain under a known public suffix.
func parseAllowedDomains(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	domains := make([]string, 0, len(parts))
	for _, p := range parts {
		d := strings.ToLower(strings.TrimSpace(p))
		if d == "" {
			continue
		}
		if _, err := publicsuffix.EffectiveTLDPlusOne(d); err != nil {
			return nil, apperrors.ValidationField("email_allowed_domains", "invalid domain: "+d)
		}
		domains = append(domains, d)
	}
	return domains, nil
}

// GetAccount returns the current member's provider record.
func (s *TeamService) GetAccount(ctx context.Context, orgID, memberID string) (*model.Member, error) {
	return s.orgs.GetMember(ctx, orgID, memberID)
}

// UpdateAccountName renames the member at the provider and keeps the local
// mirror in step. A missing mirror row is fine; it is created lazily elsewhere.
func (s *TeamService) UpdateAccountName(ctx context.Context, orgID, memberID, name, sessionJWT string) (*model.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ValidationField("name", "name is required")
	}

	member, err := s.orgs.UpdateMemberName(ctx, orgID, memberID, name, sessionJWT)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateName(ctx, memberID, name); err != nil && !errors.Is(err, data.ErrUserNotFound) {
		s.logger.WarnContext(ctx, "failed to sync mirrored user name", "member_id", memberID, "err", err)
	}

	return member, nil
}
