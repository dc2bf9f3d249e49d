// Package task implements the Task repository using PostgreSQL.
//
// Active reads exclude both trashed tasks and tasks whose parent project is
// trashed: a task inside a trashed project is invisible even when the task
// row itself is not marked deleted.
package task

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

const allColumns = "id, project_id, title, description, status, priority, assignee_id, creator_id, due_date, display_order, is_deleted, deleted_at, created_at, updated_at"

const tAllColumns = "t.id, t.project_id, t.title, t.description, t.status, t.priority, t.assignee_id, t.creator_id, t.due_date, t.display_order, t.is_deleted, t.deleted_at, t.created_at, t.updated_at"

// Repo provides task persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new task repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new task and returns the persisted row.
func (r *Repo) Create(ctx context.Context, t domain.Task) (domain.Task, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Insert("tasks").
		Columns("id", "project_id", "title", "description", "status", "priority",
			"assignee_id", "creator_id", "due_date", "display_order", "created_at", "updated_at").
		Values(t.ID, t.ProjectID, t.Title, t.Description, string(t.Status), string(t.Priority),
			t.AssigneeID, t.CreatorID, t.DueDate, t.DisplayOrder, t.CreatedAt, t.UpdatedAt).
		Suffix("RETURNING " + allColumns).
		ToSql()
	if err != nil {
		return domain.Task{}, fmt.Errorf("build insert task: %w", err)
	}

	var out domain.Task
	if err := pgxscan.Get(ctx, q, &out, sql, args...); err != nil {
		return domain.Task{}, postgres.MapError(err, "task", t.ID)
	}
	return out, nil
}

// GetByID returns an active task whose parent project is also active.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Task, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(tAllColumns).
		From("tasks t").
		Join("projects p ON p.id = t.project_id").
		Where(squirrel.Eq{"t.id": id, "t.is_deleted": false, "p.is_deleted": false}).
		ToSql()
	if err != nil {
		return domain.Task{}, fmt.Errorf("build select task: %w", err)
	}

	var out domain.Task
	if err := pgxscan.Get(ctx, q, &out, sql, args...); err != nil {
		return domain.Task{}, postgres.MapError(err, "task", id)
	}
	return out, nil
}

// GetByIDAny returns a task regardless of trash state. Restore and purge need
// to see trashed rows.
func (r *Repo) GetByIDAny(ctx context.Context, id uuid.UUID) (domain.Task, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(allColumns).
		From("tasks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.Task{}, fmt.Errorf("build select task: %w", err)
	}

	var out domain.Task
	if err := pgxscan.Get(ctx, q, &out, sql, args...); err != nil {
		return domain.Task{}, postgres.MapError(err, "task", id)
	}
	return out, nil
}

// GetByIDForUpdate returns a task regardless of trash state, locking the row
// for the duration of the surrounding transaction. Purge uses it so a
// concurrent restore cannot revive the row mid-delete.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.Task, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(allColumns).
		From("tasks").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return domain.Task{}, fmt.Errorf("build select task for update: %w", err)
	}

	var out domain.Task
	if err := pgxscan.Get(ctx, q, &out, sql, args...); err != nil {
		return domain.Task{}, postgres.MapError(err, "task", id)
	}
	return out, nil
}

// Update persists the mutable fields of an active task.
func (r *Repo) Update(ctx context.Context, t domain.Task) (domain.Task, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Update("tasks").
		Set("title", t.Title).
		Set("description", t.Description).
		Set("status", string(t.Status)).
		Set("priority", string(t.Priority)).
		Set("assignee_id", t.AssigneeID).
		Set("due_date", t.DueDate).
		Set("display_order", t.DisplayOrder).
		Set("updated_at", t.UpdatedAt).
		Where(squirrel.Eq{"id": t.ID, "is_deleted": false}).
		Suffix("RETURNING " + allColumns).
		ToSql()
	if err != nil {
		return domain.Task{}, fmt.Errorf("build update task: %w", err)
	}

	var out domain.Task
	if err := pgxscan.Get(ctx, q, &out, sql, args...); err != nil {
		return domain.Task{}, postgres.MapError(err, "task", t.ID)
	}
	return out, nil
}

// ListByProject returns active tasks of a project in board order. A non-nil
// status narrows the listing to one column of the board.
func (r *Repo) ListByProject(ctx context.Context, projectID uuid.UUID, status *domain.TaskStatus) ([]domain.Task, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sel := qb.Select(allColumns).
		From("tasks").
		Where(squirrel.Eq{"project_id": projectID, "is_deleted": false}).
		OrderBy("display_order ASC", "created_at ASC")
	if status != nil {
		sel = sel.Where(squirrel.Eq{"status": string(*status)})
	}

	sql, args, err := sel.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list tasks: %w", err)
	}

	var out []domain.Task
	if err := pgxscan.Select(ctx, q, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list tasks of project %s: %w", projectID, err)
	}
	return out, nil
}

// ListByAssignee returns active tasks assigned to the user across a
// workspace, soonest due date first, undated tasks last.
func (r *Repo) ListByAssignee(ctx context.Context, workspaceID, userID uuid.UUID) ([]domain.Task, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(tAllColumns).
		From("tasks t").
		Join("projects p ON p.id = t.project_id").
		Where(squirrel.Eq{
			"p.workspace_id": workspaceID,
			"t.assignee_id":  userID,
			"t.is_deleted":   false,
			"p.is_deleted":   false,
		}).
		OrderBy("t.due_date ASC NULLS LAST", "t.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list assigned tasks: %w", err)
	}

	var out []domain.Task
	if err := pgxscan.Select(ctx, q, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list tasks assigned to %s: %w", userID, err)
	}
	return out, nil
}

// ListDeletedByWorkspace returns trashed tasks across all projects of a
// workspace, most recently deleted first. Tasks of trashed projects are not
// listed individually; the project entry in the trash covers them.
func (r *Repo) ListDeletedByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Task, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(tAllColumns).
		From("tasks t").
		Join("projects p ON p.id = t.project_id").
		Where(squirrel.Eq{"p.workspace_id": workspaceID, "t.is_deleted": true, "p.is_deleted": false}).
		OrderBy("t.deleted_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list deleted tasks: %w", err)
	}

	var out []domain.Task
	if err := pgxscan.Select(ctx, q, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list deleted tasks of workspace %s: %w", workspaceID, err)
	}
	return out, nil
}

// DueBetween returns active, assigned, not-yet-done tasks with a due date in
// [from, to], across all workspaces. Used by the due-date sweep.
func (r *Repo) DueBetween(ctx context.Context, from, to time.Time) ([]domain.Task, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(tAllColumns).
		From("tasks t").
		Join("projects p ON p.id = t.project_id").
		Where(squirrel.Eq{"t.is_deleted": false, "p.is_deleted": false}).
		Where("t.assignee_id IS NOT NULL").
		Where(squirrel.NotEq{"t.status": string(domain.TaskStatusDone)}).
		Where(squirrel.GtOrEq{"t.due_date": from}).
		Where(squirrel.LtOrEq{"t.due_date": to}).
		OrderBy("t.due_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build due tasks query: %w", err)
	}

	var out []domain.Task
	if err := pgxscan.Select(ctx, q, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list tasks due between %s and %s: %w", from, to, err)
	}
	return out, nil
}

// Reorder rewrites display_order for the given tasks of a project in one
// batch. IDs not belonging to the project are skipped.
func (r *Repo) Reorder(ctx context.Context, projectID uuid.UUID, orderedIDs []uuid.UUID, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const sql = `UPDATE tasks SET display_order = $3, updated_at = $4
		WHERE id = $1 AND project_id = $2 AND is_deleted = FALSE`

	for i, id := range orderedIDs {
		if _, err := q.Exec(ctx, sql, id, projectID, i, at); err != nil {
			return postgres.MapError(err, "task", id)
		}
	}
	return nil
}

// SoftDelete moves an active task to the trash at the given instant.
func (r *Repo) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Update("tasks").
		Set("is_deleted", true).
		Set("deleted_at", at).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id, "is_deleted": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build soft delete task: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "task", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Restore brings a trashed task back to active state.
func (r *Repo) Restore(ctx context.Context, id uuid.UUID, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Update("tasks").
		Set("is_deleted", false).
		Set("deleted_at", nil).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id, "is_deleted": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build restore task: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "task", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// HardDelete removes the task row permanently. Comments go with it via
// ON DELETE CASCADE.
func (r *Repo) HardDelete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Delete("tasks").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build hard delete task: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "task", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteExpired permanently removes trashed tasks of the workspace whose
// deletion moment is strictly before cutoff. Returns the number of rows
// removed.
func (r *Repo) DeleteExpired(ctx context.Context, workspaceID uuid.UUID, cutoff time.Time) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const sql = `DELETE FROM tasks t USING projects p
		WHERE p.id = t.project_id AND p.workspace_id = $1
		  AND t.is_deleted AND t.deleted_at < $2`

	tag, err := q.Exec(ctx, sql, workspaceID, cutoff)
	if err != nil {
		return 0, postgres.MapError(err, "task", workspaceID)
	}
	return tag.RowsAffected(), nil
}
