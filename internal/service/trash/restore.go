package trash

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/teamhub-dev/teamhub-backend/internal/domain"
	"github.com/teamhub-dev/teamhub-backend/pkg/ctxutil"
)

// RestoreTask brings a trashed task back to active state. Restoring a task
// that is not in the trash fails with ErrInvalidState.
func (s *Service) RestoreTask(ctx context.Context, taskID uuid.UUID) (*domain.Task, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrAccessDenied
	}

	t, err := s.tasks.GetByIDAny(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	p, err := s.projects.GetByIDAny(ctx, t.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	if _, err = s.guard.Authorize(ctx, actorID, p.WorkspaceID, domain.CapManageProjects); err != nil {
		return nil, err
	}

	if !t.Trashed() {
		return nil, fmt.Errorf("task %s is not in the trash: %w", taskID, domain.ErrInvalidState)
	}

	now := s.clock.Now().UTC()
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if restoreErr := s.tasks.Restore(txCtx, t.ID, now); restoreErr != nil {
			return fmt.Errorf("restore task: %w", restoreErr)
		}

		recordErr := s.activity.Record(txCtx, domain.Activity{
			WorkspaceID: p.WorkspaceID,
			ActorID:     actorID,
			Type:        domain.ActivityTaskRestored,
			TargetType:  domain.TargetTask,
			TargetID:    t.ID,
			TargetName:  t.Title,
		})
		if recordErr != nil {
			return fmt.Errorf("record activity: %w", recordErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	t.IsDeleted = false
	t.DeletedAt = nil
	t.UpdatedAt = now

	s.log.InfoContext(ctx, "task restored", slog.String("task_id", t.ID.String()))

	return &t, nil
}

// RestoreProject brings a trashed project back to active state, making its
// live tasks visible again. Restoring a project that is not in the trash
// fails with ErrInvalidState.
func (s *Service) RestoreProject(ctx context.Context, projectID uuid.UUID) (*domain.Project, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrAccessDenied
	}

	p, err := s.projects.GetByIDAny(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	if _, err = s.guard.Authorize(ctx, actorID, p.WorkspaceID, domain.CapManageProjects); err != nil {
		return nil, err
	}

	if !p.Trashed() {
		return nil, fmt.Errorf("project %s is not in the trash: %w", projectID, domain.ErrInvalidState)
	}

	now := s.clock.Now().UTC()
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if restoreErr := s.projects.Restore(txCtx, p.ID, now); restoreErr != nil {
			return fmt.Errorf("restore project: %w", restoreErr)
		}

		recordErr := s.activity.Record(txCtx, domain.Activity{
			WorkspaceID: p.WorkspaceID,
			ActorID:     actorID,
			Type:        domain.ActivityProjectRestored,
			TargetType:  domain.TargetProject,
			TargetID:    p.ID,
			TargetName:  p.Name,
		})
		if recordErr != nil {
			return fmt.Errorf("record activity: %w", recordErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	p.IsDeleted = false
	p.DeletedAt = nil
	p.UpdatedAt = now

	s.log.InfoContext(ctx, "project restored", slog.String("project_id", p.ID.String()))

	return &p, nil
}
