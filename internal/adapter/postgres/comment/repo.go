// Package comment implements the task comment repository using PostgreSQL.
package comment

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

const allColumns = "id, task_id, author_id, content, created_at"

// Repo provides comment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new comment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a comment and returns the persisted row.
func (r *Repo) Create(ctx context.Context, c domain.Comment) (domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Insert("comments").
		Columns("id", "task_id", "author_id", "content", "created_at").
		Values(c.ID, c.TaskID, c.AuthorID, c.Content, c.CreatedAt).
		Suffix("RETURNING " + allColumns).
		ToSql()
	if err != nil {
		return domain.Comment{}, fmt.Errorf("build insert comment: %w", err)
	}

	var out domain.Comment
	if err := pgxscan.Get(ctx, q, &out, sql, args...); err != nil {
		return domain.Comment{}, postgres.MapError(err, "comment", c.ID)
	}
	return out, nil
}

// ListByTask returns the comments of a task, oldest first.
func (r *Repo) ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(allColumns).
		From("comments").
		Where(squirrel.Eq{"task_id": taskID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list comments: %w", err)
	}

	var out []domain.Comment
	if err := pgxscan.Select(ctx, q, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list comments of task %s: %w", taskID, err)
	}
	return out, nil
}
