package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/teamhub-dev/teamhub-backend/internal/domain"
	"github.com/teamhub-dev/teamhub-backend/pkg/ctxutil"
)

// Delete moves a task to the trash.
func (s *Service) Delete(ctx context.Context, taskID uuid.UUID) error {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrAccessDenied
	}

	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("get task: %w", err)
	}

	workspaceID, err := s.workspaceOf(ctx, t)
	if err != nil {
		return fmt.Errorf("get project: %w", err)
	}

	if _, err = s.guard.Authorize(ctx, actorID, workspaceID, domain.CapEditTasks); err != nil {
		return err
	}

	now := time.Now().UTC()
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.tasks.SoftDelete(txCtx, t.ID, now); deleteErr != nil {
			return fmt.Errorf("soft delete task: %w", deleteErr)
		}

		recordErr := s.activity.Record(txCtx, domain.Activity{
			WorkspaceID: workspaceID,
			ActorID:     actorID,
			Type:        domain.ActivityTaskDeleted,
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
		return err
	}

	s.log.InfoContext(ctx, "task moved to trash", slog.String("task_id", t.ID.String()))

	return nil
}

// Reorder rewrites the display order of a project's tasks to match
// orderedIDs.
func (s *Service) Reorder(ctx context.Context, projectID uuid.UUID, orderedIDs []uuid.UUID) error {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrAccessDenied
	}

	if len(orderedIDs) == 0 {
		return domain.NewValidationError("task_ids", "must not be empty")
	}

	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("get project: %w", err)
	}

	if _, err = s.guard.Authorize(ctx, actorID, p.WorkspaceID, domain.CapEditTasks); err != nil {
		return err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		return s.tasks.Reorder(txCtx, projectID, orderedIDs, time.Now().UTC())
	})
	if err != nil {
		return fmt.Errorf("reorder tasks: %w", err)
	}

	s.log.InfoContext(ctx, "tasks reordered",
		slog.String("project_id", projectID.String()),
		slog.Int("count", len(orderedIDs)),
	)

	return nil
}
