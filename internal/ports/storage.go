package ports

import (
	"context"

	"github.com/learnwithjason/stytch-b2b-saas/internal/domain/model"
)

// IdeaRepository persists idea records. Ids are assigned by the store on
// insert; creator/team are opaque foreign strings.
type IdeaRepository interface {
	ListByTeam(ctx context.Context, orgID string) ([]*model.Idea, error)
	Create(ctx context.Context, req *model.CreateIdeaRequest) (*model.Idea, error)
	Delete(ctx context.Context, id string) (*model.Idea, error)
}

// UserRepository persists the member display-name mirror.
type UserRepository interface {
	Get(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateName(ctx context.Context, id, name string) error
}
