// Package activity implements the activity log repository using PostgreSQL.
// The table is append-only: no update or delete operations exist.
package activity

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

const allColumns = "id, workspace_id, actor_id, activity_type, target_type, target_id, target_name, details, created_at"

// Repo provides activity log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new activity repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create appends an activity entry and returns the persisted row.
func (r *Repo) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Insert("activity_logs").
		Columns("id", "workspace_id", "actor_id", "activity_type", "target_type",
			"target_id", "target_name", "details", "created_at").
		Values(a.ID, a.WorkspaceID, a.ActorID, string(a.Type), string(a.TargetType),
			a.TargetID, a.TargetName, a.Details, a.CreatedAt).
		Suffix("RETURNING " + allColumns).
		ToSql()
	if err != nil {
		return domain.Activity{}, fmt.Errorf("build insert activity: %w", err)
	}

	var out domain.Activity
	if err := pgxscan.Get(ctx, q, &out, sql, args...); err != nil {
		return domain.Activity{}, postgres.MapError(err, "activity", a.ID)
	}
	return out, nil
}

// ListByWorkspace returns workspace activity, newest first, with limit/offset
// pagination.
func (r *Repo) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, limit, offset int) ([]domain.Activity, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(allColumns).
		From("activity_logs").
		Where(squirrel.Eq{"workspace_id": workspaceID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list activity: %w", err)
	}

	var out []domain.Activity
	if err := pgxscan.Select(ctx, q, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list activity of workspace %s: %w", workspaceID, err)
	}
	return out, nil
}
