package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnwithjason/stytch-b2b-saas/internal/data"
	"github.com/learnwithjason/stytch-b2b-saas/internal/domain/model"
)

// fakeIdeaRepo implements ports.IdeaRepository with overridable behaviors.
type fakeIdeaRepo struct {
	listByTeamFn func(ctx context.Context, orgID string) ([]*model.Idea, error)
	createFn     func(ctx context.Context, req *model.CreateIdeaRequest) (*model.Idea, error)
	deleteFn     func(ctx context.Context, id string) (*model.Idea, error)
}

func (f *fakeIdeaRepo) ListByTeam(ctx context.Context, orgID string) ([]*model.Idea, error) {
	return f.listByTeamFn(ctx, orgID)
}

func (f *fakeIdeaRepo) Create(ctx context.Context, req *model.CreateIdeaRequest) (*model.Idea, error) {
	return f.createFn(ctx, req)
}

func (f *fakeIdeaRepo) Delete(ctx context.Context, id string) (*model.Idea, error) {
	return f.deleteFn(ctx, id)
}

// fakeMemberDirectory implements ports.MemberDirectory.
type fakeMemberDirectory struct {
	getMemberFn func(ctx context.Context, orgID, memberID string) (*model.Member, error)
	calls       int
}

func (f *fakeMemberDirectory) GetMember(ctx context.Context, orgID, memberID string) (*model.Member, error) {
	f.calls++
	return f.getMemberFn(ctx, orgID, memberID)
}

func TestCreateIdeaMirrorsUnknownMember(t *testing.T) {
	var created *model.User
	users := &fakeUserRepo{
		getFn: func(_ context.Context, id string) (*model.User, error) {
			return nil, data.ErrUserNotFound
		},
		createFn: func(_ context.Context, user *model.User) error {
			created = user
			return nil
		},
	}
	members := &fakeMemberDirectory{
		getMemberFn: func(_ context.Context, orgID, memberID string) (*model.Member, error) {
			assert.Equal(t, "org-1", orgID)
			assert.Equal(t, "m-1", memberID)
			return &model.Member{MemberID: "m-1", Name: "Ada"}, nil
		},
	}
	ideas := &fakeIdeaRepo{
		createFn: func(_ context.Context, req *model.CreateIdeaRequest) (*model.Idea, error) {
			assert.Equal(t, "m-1", req.Creator)
			assert.Equal(t, "org-1", req.Team)
			assert.Equal(t, model.IdeaStatusPending, req.Status)
			return &model.Idea{ID: "idea-1", Text: req.Text, Status: req.Status, Creator: req.Creator, Team: req.Team}, nil
		},
	}
	svc := NewIdeaService(ideas, users, members, testLogger())

	idea, err := svc.Create(context.Background(), "org-1", "m-1", "build a moat")
	require.NoError(t, err)
	assert.Equal(t, "idea-1", idea.ID)
	require.NotNil(t, created)
	assert.Equal(t, &model.User{ID: "m-1", Name: "Ada"}, created)
	assert.Equal(t, 1, members.calls)
}

func TestCreateIdeaSkipsMirrorForKnownMember(t *testing.T) {
	users := &fakeUserRepo{
		getFn: func(_ context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Name: "Ada"}, nil
		},
	}
	members := &fakeMemberDirectory{
		getMemberFn: func(_ context.Context, _, _ string) (*model.Member, error) {
			t.Fatal("provider should not be called for a mirrored member")
			return nil, nil
		},
	}
	ideas := &fakeIdeaRepo{
		createFn: func(_ context.Context, req *model.CreateIdeaRequest) (*model.Idea, error) {
			return &model.Idea{ID: "idea-2"}, nil
		},
	}
	svc := NewIdeaService(ideas, users, members, testLogger())

	_, err := svc.Create(context.Background(), "org-1", "m-1", "text")
	require.NoError(t, err)
	assert.Equal(t, 0, members.calls)
}

func TestCreateIdeaToleratesConcurrentMirror(t *testing.T) {
	users := &fakeUserRepo{
		getFn: func(_ context.Context, _ string) (*model.User, error) {
			return nil, data.ErrUserNotFound
		},
		createFn: func(_ context.Context, _ *model.User) error {
			return data.ErrUserExists
		},
	}
	members := &fakeMemberDirectory{
		getMemberFn: func(_ context.Context, _, _ string) (*model.Member, error) {
			return &model.Member{MemberID: "m-1", Name: "Ada"}, nil
		},
	}
	ideas := &fakeIdeaRepo{
		createFn: func(_ context.Context, _ *model.CreateIdeaRequest) (*model.Idea, error) {
			return &model.Idea{ID: "idea-3"}, nil
		},
	}
	svc := NewIdeaService(ideas, users, members, testLogger())

	idea, err := svc.Create(context.Background(), "org-1", "m-1", "text")
	require.NoError(t, err)
	assert.Equal(t, "idea-3", idea.ID)
}

func TestListIdeas(t *testing.T) {
	ideas := &fakeIdeaRepo{
		listByTeamFn: func(_ context.Context, orgID string) ([]*model.Idea, error) {
			assert.Equal(t, "org-1", orgID)
			return []*model.Idea{{ID: "a"}, {ID: "b"}}, nil
		},
	}
	svc := NewIdeaService(ideas, &fakeUserRepo{}, &fakeMemberDirectory{}, testLogger())

	got, err := svc.List(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestDeleteIdeaNotFound(t *testing.T) {
	ideas := &fakeIdeaRepo{
		deleteFn: func(_ context.Context, id string) (*model.Idea, error) {
			return nil, data.ErrIdeaNotFound
		},
	}
	svc := NewIdeaService(ideas, &fakeUserRepo{}, &fakeMemberDirectory{}, testLogger())

	_, err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, data.ErrIdeaNotFound)
}
