package model

import "github.com/learnwithjason/stytch-b2b-saas/internal/domain/auth"

// Organization mirrors the provider's organization object for the fields
// this app surfaces. JSON tags follow the provider wire names because the
// team-settings page renders the object as returned.
type Organization struct {
	OrganizationID   string `json:"organization_id"`
	OrganizationName string `json:"organization_name"`
	OrganizationSlug string `json:"organization_slug"`

	// Auth settings use the provider's tri-state vocabulary.
	EmailInvites         auth.Policy `json:"email_invites"`
	AuthMethods          auth.Policy `json:"auth_methods"`
	EmailJITProvisioning auth.Policy `json:"email_jit_provisioning"`

	AllowedAuthMethods  []string `json:"allowed_auth_methods"`
	EmailAllowedDomains []string `json:"email_allowed_domains"`
}

// OrganizationUpdate carries the settings fields the dashboard can change,
// already mapped to provider vocabulary.
type OrganizationUpdate struct {
	OrganizationID       string      `json:"-"`
	AuthMethods          auth.Policy `json:"auth_methods"`
	AllowedAuthMethods   []string    `json:"allowed_auth_methods"`
	EmailInvites         auth.Policy `json:"email_invites"`
	EmailJITProvisioning auth.Policy `json:"email_jit_provisioning"`
	EmailAllowedDomains  []string    `json:"email_allowed_domains,omitempty"`
}
