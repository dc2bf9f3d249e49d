package domain

import (
	"time"

	"github.com/google/uuid"
)

// Task is a unit of work inside a project. ProjectID is immutable after
// creation. DueDate carries date precision only; the time-of-day part is
// always midnight UTC.
type Task struct {
	ID           uuid.UUID    `db:"id"`
	ProjectID    uuid.UUID    `db:"project_id"`
	Title        string       `db:"title"`
	Description  string       `db:"description"`
	Status       TaskStatus   `db:"status"`
	Priority     TaskPriority `db:"priority"`
	AssigneeID   *uuid.UUID   `db:"assignee_id"`
	CreatorID    uuid.UUID    `db:"creator_id"`
	DueDate      *time.Time   `db:"due_date"`
	DisplayOrder int          `db:"display_order"`
	IsDeleted    bool         `db:"is_deleted"`
	DeletedAt    *time.Time   `db:"deleted_at"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

// Trashed reports whether the task sits in the trash.
func (t *Task) Trashed() bool { return t.IsDeleted }

// AssignedTo reports whether the task is currently assigned to userID.
func (t *Task) AssignedTo(userID uuid.UUID) bool {
	return t.AssigneeID != nil && *t.AssigneeID == userID
}

// Comment is a remark on a task. Comments are not part of the soft-delete
// lifecycle; they disappear with their task on purge.
type Comment struct {
	ID        uuid.UUID `db:"id"`
	TaskID    uuid.UUID `db:"task_id"`
	AuthorID  uuid.UUID `db:"author_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}
