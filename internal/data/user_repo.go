package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/learnwithjason/stytch-b2b-saas/internal/data/pgxutil"
	"github.com/learnwithjason/stytch-b2b-saas/internal/domain/model"
)

// UserRepo provides database operations for the member display-name mirror.
// Ids are the provider's member ids, so inserts can race with themselves when
// two requests sync the same member; unique violations map to ErrUserExists.
type UserRepo struct {
	DB *sql.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// Get retrieves a mirrored user by member id.
func (r *UserRepo) Get(ctx context.Context, id string) (*model.User, error) {
	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT id, name FROM users WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &out, nil
}

// Create inserts a mirrored user.
func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	if user == nil {
		return errors.New("user is required")
	}

	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, `INSERT INTO users (id, name) VALUES ($1, $2)`, user.ID, user.Name)
		return err
	}); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdateName changes a mirrored user's display name.
func (r *UserRepo) UpdateName(ctx context.Context, id, name string) error {
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, `UPDATE users SET name = $2 WHERE id = $1`, id, name)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrUserNotFound
		}
		return nil
	}); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("failed to update user name: %w", err)
	}
	return nil
}
