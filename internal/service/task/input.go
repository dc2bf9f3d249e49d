package task

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/teamhub-dev/teamhub-backend/internal/domain"
)

const (
	maxTitleLen   = 200
	maxContentLen = 4000
)

// CreateInput carries the fields for creating a task. Zero-valued Status
// and Priority default to TODO and MEDIUM.
type CreateInput struct {
	ProjectID   uuid.UUID
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	AssigneeID  *uuid.UUID
	DueDate     *time.Time
}

// Validate checks the input and applies enum defaults.
func (in *CreateInput) Validate() error {
	if in.ProjectID == uuid.Nil {
		return domain.NewValidationError("project_id", "must not be empty")
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.NewValidationError("title", "must not be empty")
	}
	if len(title) > maxTitleLen {
		return domain.NewValidationError("title", "too long (max 200)")
	}
	if in.Status == "" {
		in.Status = domain.TaskStatusTodo
	}
	if !in.Status.IsValid() {
		return domain.NewValidationError("status", "unknown status")
	}
	if in.Priority == "" {
		in.Priority = domain.TaskPriorityMedium
	}
	if !in.Priority.IsValid() {
		return domain.NewValidationError("priority", "unknown priority")
	}
	return nil
}

// UpdateInput carries the full replacement state for a task. The project
// binding is not updatable.
type UpdateInput struct {
	TaskID      uuid.UUID
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	AssigneeID  *uuid.UUID
	DueDate     *time.Time
}

// Validate checks the input.
func (in UpdateInput) Validate() error {
	if in.TaskID == uuid.Nil {
		return domain.NewValidationError("task_id", "must not be empty")
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.NewValidationError("title", "must not be empty")
	}
	if len(title) > maxTitleLen {
		return domain.NewValidationError("title", "too long (max 200)")
	}
	if !in.Status.IsValid() {
		return domain.NewValidationError("status", "unknown status")
	}
	if !in.Priority.IsValid() {
		return domain.NewValidationError("priority", "unknown priority")
	}
	return nil
}

// AddCommentInput carries the fields for commenting on a task.
type AddCommentInput struct {
	TaskID  uuid.UUID
	Content string
}

// Validate checks the input.
func (in AddCommentInput) Validate() error {
	if in.TaskID == uuid.Nil {
		return domain.NewValidationError("task_id", "must not be empty")
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return domain.NewValidationError("content", "must not be empty")
	}
	if len(content) > maxContentLen {
		return domain.NewValidationError("content", "too long (max 4000)")
	}
	return nil
}
