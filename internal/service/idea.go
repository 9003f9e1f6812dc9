package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/learnwithjason/stytch-b2b-saas/internal/data"
	"github.com/learnwithjason/stytch-b2b-saas/internal/domain/model"
	"github.com/learnwithjason/stytch-b2b-saas/internal/ports"
)

// IdeaService handles the app's own idea records. Creating an idea also
// lazily mirrors the creator's provider identity into the local users table
// so lists can render display names without a provider round trip.
type IdeaService struct {
	ideas   ports.IdeaRepository
	users   ports.UserRepository
	members ports.MemberDirectory
	logger  *slog.Logger
}

// NewIdeaService creates an IdeaService.
func NewIdeaService(ideas ports.IdeaRepository, users ports.UserRepository, members ports.MemberDirectory, logger *slog.Logger) *IdeaService {
	return &IdeaService{ideas: ideas, users: users, members: members, logger: logger.With("service", "idea")}
}

// List returns every idea belonging to the organization.
func (s *IdeaService) List(ctx context.Context, orgID string) ([]*model.Idea, error) {
	return s.ideas.ListByTeam(ctx, orgID)
}

// Create stores a new pending idea for the member. If the member has no
// mirror row yet, their identity is fetched from the provider and mirrored
// first; a concurrent insert of the same member is not an error.
func (s *IdeaService) Create(ctx context.Context, orgID, memberID, text string) (*model.Idea, error) {
	if err := s.ensureUserMirrored(ctx, orgID, memberID); err != nil {
		return nil, err
	}

	return s.ideas.Create(ctx, &model.CreateIdeaRequest{
		Text:    text,
		Status:  model.IdeaStatusPending,
		Creator: memberID,
		Team:    orgID,
	})
}

// Delete removes an idea and returns the deleted record.
func (s *IdeaService) Delete(ctx context.Context, id string) (*model.Idea, error) {
	return s.ideas.Delete(ctx, id)
}

func (s *IdeaService) ensureUserMirrored(ctx context.Context, orgID, memberID string) error {
	_, err := s.users.Get(ctx, memberID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, data.ErrUserNotFound) {
		return fmt.Errorf("look up mirrored user: %w", err)
	}

	member, err := s.members.GetMember(ctx, orgID, memberID)
	if err != nil {
		return fmt.Errorf("fetch member for mirror: %w", err)
	}

	createErr := s.users.Create(ctx, &model.User{ID: member.MemberID, Name: member.Name})
	if createErr != nil && !errors.Is(createErr, data.ErrUserExists) {
		return fmt.Errorf("mirror user: %w", createErr)
	}
	return nil
}
