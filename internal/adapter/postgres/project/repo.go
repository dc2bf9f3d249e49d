// Package project implements the Project repository using PostgreSQL.
// Soft-delete state lives in the is_deleted/deleted_at columns; active reads
// filter trashed rows at the query level.
package project

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

const allColumns = "id, workspace_id, name, description, is_deleted, deleted_at, created_at, updated_at"

// Repo provides project persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new project repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new project and returns the persisted row.
func (r *Repo) Create(ctx context.Context, p domain.Project) (domain.Project, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Insert("projects").
		Columns("id", "workspace_id", "name", "description", "created_at", "updated_at").
		Values(p.ID, p.WorkspaceID, p.Name, p.Description, p.CreatedAt, p.UpdatedAt).
		Suffix("RETURNING " + allColumns).
		ToSql()
	if err != nil {
		return domain.Project{}, fmt.Errorf("build insert project: %w", err)
	}

	var out domain.Project
	if err := pgxscan.Get(ctx, q, &out, sql, args...); err != nil {
		return domain.Project{}, postgres.MapError(err, "project", p.ID)
	}
	return out, nil
}

// GetByID returns an active project. Trashed projects come back as
// domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error) {
	return r.get(ctx, squirrel.Eq{"id": id, "is_deleted": false}, id)
}

// GetByIDAny returns a project regardless of trash state. Restore and purge
// need to see trashed rows.
func (r *Repo) GetByIDAny(ctx context.Context, id uuid.UUID) (domain.Project, error) {
	return r.get(ctx, squirrel.Eq{"id": id}, id)
}

func (r *Repo) get(ctx context.Context, where squirrel.Eq, id uuid.UUID) (domain.Project, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(allColumns).From("projects").Where(where).ToSql()
	if err != nil {
		return domain.Project{}, fmt.Errorf("build select project: %w", err)
	}

	var out domain.Project
	if err := pgxscan.Get(ctx, q, &out, sql, args...); err != nil {
		return domain.Project{}, postgres.MapError(err, "project", id)
	}
	return out, nil
}

// GetByIDForUpdate returns a project regardless of trash state, locking the
// row for the duration of the surrounding transaction. Purge uses it so a
// concurrent restore cannot revive the row mid-delete.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.Project, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(allColumns).
		From("projects").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return domain.Project{}, fmt.Errorf("build select project for update: %w", err)
	}

	var out domain.Project
	if err := pgxscan.Get(ctx, q, &out, sql, args...); err != nil {
		return domain.Project{}, postgres.MapError(err, "project", id)
	}
	return out, nil
}

// Update persists name and description changes on an active project.
func (r *Repo) Update(ctx context.Context, p domain.Project) (domain.Project, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Update("projects").
		Set("name", p.Name).
		Set("description", p.Description).
		Set("updated_at", p.UpdatedAt).
		Where(squirrel.Eq{"id": p.ID, "is_deleted": false}).
		Suffix("RETURNING " + allColumns).
		ToSql()
	if err != nil {
		return domain.Project{}, fmt.Errorf("build update project: %w", err)
	}

	var out domain.Project
	if err := pgxscan.Get(ctx, q, &out, sql, args...); err != nil {
		return domain.Project{}, postgres.MapError(err, "project", p.ID)
	}
	return out, nil
}

// ListByWorkspace returns active projects of a workspace, newest first.
func (r *Repo) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Project, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(allColumns).
		From("projects").
		Where(squirrel.Eq{"workspace_id": workspaceID, "is_deleted": false}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list projects: %w", err)
	}

	var out []domain.Project
	if err := pgxscan.Select(ctx, q, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list projects of workspace %s: %w", workspaceID, err)
	}
	return out, nil
}

// ListDeletedByWorkspace returns trashed projects of a workspace, most
// recently deleted first.
func (r *Repo) ListDeletedByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Project, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(allColumns).
		From("projects").
		Where(squirrel.Eq{"workspace_id": workspaceID, "is_deleted": true}).
		OrderBy("deleted_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list deleted projects: %w", err)
	}

	var out []domain.Project
	if err := pgxscan.Select(ctx, q, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list deleted projects of workspace %s: %w", workspaceID, err)
	}
	return out, nil
}

// SoftDelete moves an active project to the trash at the given instant.
func (r *Repo) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Update("projects").
		Set("is_deleted", true).
		Set("deleted_at", at).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id, "is_deleted": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build soft delete project: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "project", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Restore brings a trashed project back to active state.
func (r *Repo) Restore(ctx context.Context, id uuid.UUID, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Update("projects").
		Set("is_deleted", false).
		Set("deleted_at", nil).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id, "is_deleted": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build restore project: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "project", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// HardDelete removes the project row permanently. Its tasks and their
// comments go with it via ON DELETE CASCADE.
func (r *Repo) HardDelete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Delete("projects").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build hard delete project: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "project", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteExpired permanently removes trashed projects of the workspace whose
// deletion moment is strictly before cutoff. Returns the number of projects
// removed; cascaded task rows are not counted.
func (r *Repo) DeleteExpired(ctx context.Context, workspaceID uuid.UUID, cutoff time.Time) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Delete("projects").
		Where(squirrel.Eq{"workspace_id": workspaceID, "is_deleted": true}).
		Where(squirrel.Lt{"deleted_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete expired projects: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "project", workspaceID)
	}
	return tag.RowsAffected(), nil
}
