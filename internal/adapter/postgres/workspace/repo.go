// Package workspace implements the Workspace repository using PostgreSQL.
package workspace

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

const allColumns = "id, name, description, owner_id, is_deleted, deleted_at, created_at, updated_at"

// Repo provides workspace persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new workspace repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new workspace and returns the persisted row.
func (r *Repo) Create(ctx context.Context, ws domain.Workspace) (domain.Workspace, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Insert("workspaces").
		Columns("id", "name", "description", "owner_id", "created_at", "updated_at").
		Values(ws.ID, ws.Name, ws.Description, ws.OwnerID, ws.CreatedAt, ws.UpdatedAt).
		Suffix("RETURNING " + allColumns).
		ToSql()
	if err != nil {
		return domain.Workspace{}, fmt.Errorf("build insert workspace: %w", err)
	}

	var out domain.Workspace
	if err := pgxscan.Get(ctx, q, &out, sql, args...); err != nil {
		return domain.Workspace{}, postgres.MapError(err, "workspace", ws.ID)
	}
	return out, nil
}

// GetByID returns an active (non-deleted) workspace.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Workspace, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(allColumns).
		From("workspaces").
		Where(squirrel.Eq{"id": id, "is_deleted": false}).
		ToSql()
	if err != nil {
		return domain.Workspace{}, fmt.Errorf("build select workspace: %w", err)
	}

	var out domain.Workspace
	if err := pgxscan.Get(ctx, q, &out, sql, args...); err != nil {
		return domain.Workspace{}, postgres.MapError(err, "workspace", id)
	}
	return out, nil
}

// Update persists name and description changes, bumping updated_at.
func (r *Repo) Update(ctx context.Context, ws domain.Workspace) (domain.Workspace, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Update("workspaces").
		Set("name", ws.Name).
		Set("description", ws.Description).
		Set("updated_at", ws.UpdatedAt).
		Where(squirrel.Eq{"id": ws.ID, "is_deleted": false}).
		Suffix("RETURNING " + allColumns).
		ToSql()
	if err != nil {
		return domain.Workspace{}, fmt.Errorf("build update workspace: %w", err)
	}

	var out domain.Workspace
	if err := pgxscan.Get(ctx, q, &out, sql, args...); err != nil {
		return domain.Workspace{}, postgres.MapError(err, "workspace", ws.ID)
	}
	return out, nil
}

// SoftDelete moves an active workspace to the trash at the given instant.
func (r *Repo) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Update("workspaces").
		Set("is_deleted", true).
		Set("deleted_at", at).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id, "is_deleted": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build soft delete workspace: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "workspace", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("workspace %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete removes the workspace row permanently. Memberships, projects, tasks,
// comments and activity entries go with it via ON DELETE CASCADE.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Delete("workspaces").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete workspace: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "workspace", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("workspace %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListByUser returns active workspaces the user is a member of, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select("w.id", "w.name", "w.description", "w.owner_id", "w.is_deleted", "w.deleted_at", "w.created_at", "w.updated_at").
		From("workspaces w").
		Join("workspace_members m ON m.workspace_id = w.id").
		Where(squirrel.Eq{"m.user_id": userID, "w.is_deleted": false}).
		OrderBy("w.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list workspaces: %w", err)
	}

	var out []domain.Workspace
	if err := pgxscan.Select(ctx, q, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list workspaces for user %s: %w", userID, err)
	}
	return out, nil
}
