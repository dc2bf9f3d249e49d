// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teamhub-dev/teamhub-backend/internal/adapter/postgres"
	"github.com/teamhub-dev/teamhub-backend/internal/domain"
)

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const allColumns = "id, name, email"

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a user. A duplicate email maps to domain.ErrConflict.
func (r *Repo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Insert("users").
		Columns("id", "name", "email", "created_at").
		Values(u.ID, u.Name, u.Email, time.Now().UTC()).
		Suffix("RETURNING " + allColumns).
		ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("build insert user: %w", err)
	}

	var out domain.User
	if err := pgxscan.Get(ctx, q, &out, sql, args...); err != nil {
		return domain.User{}, postgres.MapError(err, "user", u.ID)
	}
	return out, nil
}

// GetByID returns a user by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(allColumns).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("build select user: %w", err)
	}

	var out domain.User
	if err := pgxscan.Get(ctx, q, &out, sql, args...); err != nil {
		return domain.User{}, postgres.MapError(err, "user", id)
	}
	return out, nil
}

// GetByEmail returns a user by email. Invitations address people by email.
func (r *Repo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(allColumns).
		From("users").
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("build select user by email: %w", err)
	}

	var out domain.User
	if err := pgxscan.Get(ctx, q, &out, sql, args...); err != nil {
		return domain.User{}, postgres.MapError(err, "user", uuid.Nil)
	}
	return out, nil
}
