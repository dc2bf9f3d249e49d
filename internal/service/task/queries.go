package task

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/teamhub-dev/teamhub-backend/internal/domain"
	"github.com/teamhub-dev/teamhub-backend/pkg/ctxutil"
)

// Get returns an active task the caller can see.
func (s *Service) Get(ctx context.Context, taskID uuid.UUID) (*domain.Task, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrAccessDenied
	}

	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	workspaceID, err := s.workspaceOf(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	if _, err = s.guard.Member(ctx, actorID, workspaceID); err != nil {
		return nil, err
	}

	return &t, nil
}

// ListByProject returns the project's active tasks in display order,
// optionally filtered to one status.
func (s *Service) ListByProject(ctx context.Context, projectID uuid.UUID, status *domain.TaskStatus) ([]domain.Task, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrAccessDenied
	}

	if status != nil && !status.IsValid() {
		return nil, domain.NewValidationError("status", "unknown status")
	}

	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	if _, err = s.guard.Member(ctx, actorID, p.WorkspaceID); err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListByProject(ctx, projectID, status)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

// ListMine returns the caller's assigned tasks in the workspace, nearest
// due date first.
func (s *Service) ListMine(ctx context.Context, workspaceID uuid.UUID) ([]domain.Task, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrAccessDenied
	}

	if _, err := s.guard.Member(ctx, actorID, workspaceID); err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListByAssignee(ctx, workspaceID, actorID)
	if err != nil {
		return nil, fmt.Errorf("list assigned tasks: %w", err)
	}

	return tasks, nil
}
