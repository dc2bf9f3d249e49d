// Package member implements the workspace membership repository using PostgreSQL.
package member

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teamhub-dev/teamhub-backend/internal/adapter/postgres"
	"github.com/teamhub-dev/teamhub-backend/internal/domain"
)

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const allColumns = "id, workspace_id, user_id, role, created_at"

// Repo provides workspace membership persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new membership repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a membership. A duplicate (workspace, user) pair or a second
// OWNER for the workspace maps to domain.ErrConflict via the unique indexes.
func (r *Repo) Create(ctx context.Context, m domain.Member) (domain.Member, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Insert("workspace_members").
		Columns("id", "workspace_id", "user_id", "role", "created_at").
		Values(m.ID, m.WorkspaceID, m.UserID, string(m.Role), m.CreatedAt).
		Suffix("RETURNING " + allColumns).
		ToSql()
	if err != nil {
		return domain.Member{}, fmt.Errorf("build insert member: %w", err)
	}

	var out domain.Member
	if err := pgxscan.Get(ctx, q, &out, sql, args...); err != nil {
		return domain.Member{}, postgres.MapError(err, "workspace_member", m.ID)
	}
	return out, nil
}

// GetByWorkspaceAndUser returns the membership binding userID to workspaceID.
func (r *Repo) GetByWorkspaceAndUser(ctx context.Context, workspaceID, userID uuid.UUID) (domain.Member, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(allColumns).
		From("workspace_members").
		Where(squirrel.Eq{"workspace_id": workspaceID, "user_id": userID}).
		ToSql()
	if err != nil {
		return domain.Member{}, fmt.Errorf("build select member: %w", err)
	}

	var out domain.Member
	if err := pgxscan.Get(ctx, q, &out, sql, args...); err != nil {
		return domain.Member{}, postgres.MapError(err, "workspace_member", userID)
	}
	return out, nil
}

// GetByID returns a membership by its row ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Member, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(allColumns).
		From("workspace_members").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.Member{}, fmt.Errorf("build select member: %w", err)
	}

	var out domain.Member
	if err := pgxscan.Get(ctx, q, &out, sql, args...); err != nil {
		return domain.Member{}, postgres.MapError(err, "workspace_member", id)
	}
	return out, nil
}

// ListByWorkspace returns all memberships of a workspace, oldest first, so
// the owner comes out on top.
func (r *Repo) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Member, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(allColumns).
		From("workspace_members").
		Where(squirrel.Eq{"workspace_id": workspaceID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list members: %w", err)
	}

	var out []domain.Member
	if err := pgxscan.Select(ctx, q, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list members of workspace %s: %w", workspaceID, err)
	}
	return out, nil
}

// Delete removes a membership row.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Delete("workspace_members").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete member: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "workspace_member", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("workspace_member %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
