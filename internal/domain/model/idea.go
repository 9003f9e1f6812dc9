package model

import (
	"strings"
	"time"

	apperrors "github.com/learnwithjason/stytch-b2b-saas/internal/errors"
)

// IdeaStatus tracks where an idea is in its lifecycle.
type IdeaStatus string

const (
	IdeaStatusPending  IdeaStatus = "pending"
	IdeaStatusApproved IdeaStatus = "approved"
	IdeaStatusRejected IdeaStatus = "rejected"
)

// IsValid returns true for known statuses.
func (s IdeaStatus) IsValid() bool {
	switch s {
	case IdeaStatusPending, IdeaStatusApproved, IdeaStatusRejected:
		return true
	}
	return false
}

// Idea is a member-submitted idea scoped to one team. Creator and Team are
// opaque references to provider-managed member/org ids; the provider is the
// source of truth for whether those ids still exist.
type Idea struct {
	ID        string     `db:"id"         json:"id"`
	Text      string     `db:"text"       json:"text"`
	Status    IdeaStatus `db:"status"     json:"status"`
	Creator   string     `db:"creator"    json:"creator"`
	Team      string     `db:"team"       json:"team"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// CreateIdeaRequest carries the fields needed to insert an idea.
// The store assigns the id.
type CreateIdeaRequest struct {
	Text    string
	Status  IdeaStatus
	Creator string
	Team    string
}

// Validate checks required fields before insert.
func (r *CreateIdeaRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return apperrors.ValidationField("text", "idea text is required")
	}
	if r.Creator == "" {
		return apperrors.ValidationField("creator", "creator member id is required")
	}
	if r.Team == "" {
		return apperrors.ValidationField("team", "team organization id is required")
	}
	if r.Status != "" && !r.Status.IsValid() {
		return apperrors.ValidationField("status", "unknown idea status")
	}
	return nil
}
