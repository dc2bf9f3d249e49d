package trash

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/teamhub-dev/teamhub-backend/internal/domain"
	"github.com/teamhub-dev/teamhub-backend/pkg/ctxutil"
)

// PermanentDeleteTask removes a trashed task for good. The row is locked
// before the trash check so a concurrent restore cannot race the purge.
func (s *Service) PermanentDeleteTask(ctx context.Context, taskID uuid.UUID) error {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrAccessDenied
	}

	t, err := s.tasks.GetByIDAny(ctx, taskID)
	if err != nil {
		return fmt.Errorf("get task: %w", err)
	}

	p, err := s.projects.GetByIDAny(ctx, t.ProjectID)
	if err != nil {
		return fmt.Errorf("get project: %w", err)
	}

	if _, err = s.guard.Authorize(ctx, actorID, p.WorkspaceID, domain.CapIsOwner); err != nil {
		return err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		locked, lockErr := s.tasks.GetByIDForUpdate(txCtx, taskID)
		if lockErr != nil {
			return fmt.Errorf("lock task: %w", lockErr)
		}
		if !locked.Trashed() {
			return fmt.Errorf("task %s is not in the trash: %w", taskID, domain.ErrInvalidState)
		}
		if deleteErr := s.tasks.HardDelete(txCtx, taskID); deleteErr != nil {
			return fmt.Errorf("purge task: %w", deleteErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "task purged", slog.String("task_id", taskID.String()))

	return nil
}

// PermanentDeleteProject removes a trashed project and, through the
// database cascade, every task and comment under it.
func (s *Service) PermanentDeleteProject(ctx context.Context, projectID uuid.UUID) error {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrAccessDenied
	}

	p, err := s.projects.GetByIDAny(ctx, projectID)
	if err != nil {
		return fmt.Errorf("get project: %w", err)
	}

	if _, err = s.guard.Authorize(ctx, actorID, p.WorkspaceID, domain.CapIsOwner); err != nil {
		return err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		locked, lockErr := s.projects.GetByIDForUpdate(txCtx, projectID)
		if lockErr != nil {
			return fmt.Errorf("lock project: %w", lockErr)
		}
		if !locked.Trashed() {
			return fmt.Errorf("project %s is not in the trash: %w", projectID, domain.ErrInvalidState)
		}
		if deleteErr := s.projects.HardDelete(txCtx, projectID); deleteErr != nil {
			return fmt.Errorf("purge project: %w", deleteErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "project purged", slog.String("project_id", projectID.String()))

	return nil
}

// EmptyTrash purges every task and project of the workspace whose trash
// stay exceeds the retention window. One transaction covers the whole
// sweep; the deletes take row locks, so concurrent restores either finish
// first or wait and find the rows gone.
func (s *Service) EmptyTrash(ctx context.Context, workspaceID uuid.UUID) (int64, error) {
	if err := s.authorize(ctx, workspaceID, domain.CapIsOwner); err != nil {
		return 0, err
	}

	cutoff := s.clock.Now().UTC().Add(-s.retention)

	var purged int64
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		tasks, taskErr := s.tasks.DeleteExpired(txCtx, workspaceID, cutoff)
		if taskErr != nil {
			return fmt.Errorf("purge expired tasks: %w", taskErr)
		}

		projects, projectErr := s.projects.DeleteExpired(txCtx, workspaceID, cutoff)
		if projectErr != nil {
			return fmt.Errorf("purge expired projects: %w", projectErr)
		}

		purged = tasks + projects
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "trash emptied",
		slog.String("workspace_id", workspaceID.String()),
		slog.Int64("purged", purged),
	)

	return purged, nil
}
