package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/learnwithjason/stytch-b2b-saas/internal/data/pgxutil"
	"github.com/learnwithjason/stytch-b2b-saas/internal/domain/model"
)

// IdeaRepo provides database operations for ideas.
type IdeaRepo struct {
	DB *sql.DB
}

// NewIdeaRepo creates a new IdeaRepo.
func NewIdeaRepo(db *sql.DB) *IdeaRepo {
	return &IdeaRepo{DB: db}
}

const ideaColumns = `id, text, status, creator, team, created_at`

// ListByTeam retrieves all ideas belonging to one team, newest first.
func (r *IdeaRepo) ListByTeam(ctx context.Context, orgID string) ([]*model.Idea, error) {
	var rowsOut []model.Idea
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+ideaColumns+`
			FROM ideas
			WHERE team = $1
			ORDER BY created_at DESC`, orgID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Idea])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list ideas: %w", err)
	}

	res := make([]*model.Idea, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Create inserts a new idea with a store-assigned id.
func (r *IdeaRepo) Create(ctx context.Context, req *model.CreateIdeaRequest) (*model.Idea, error) {
	if req == nil {
		return nil, errors.New("create idea request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.IdeaStatusPending
	}

	var out model.Idea
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO ideas (id, text, status, creator, team)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+ideaColumns,
			uuid.NewString(), req.Text, status, req.Creator, req.Team)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Idea])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create idea: %w", err)
	}
	return &out, nil
}

// Delete removes an idea by id and returns the deleted record.
func (r *IdeaRepo) Delete(ctx context.Context, id string) (*model.Idea, error) {
	var out model.Idea
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			DELETE FROM ideas
			WHERE id = $1
			RETURNING `+ideaColumns, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Idea])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrIdeaNotFound
		}
		return nil, fmt.Errorf("failed to delete idea: %w", err)
	}
	return &out, nil
}
