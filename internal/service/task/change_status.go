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

// ChangeStatus moves a task to another status. The activity entry records
// the transition; the creator gets a notification unless they made the
// change themselves.
func (s *Service) ChangeStatus(ctx context.Context, taskID uuid.UUID, status domain.TaskStatus) (*domain.Task, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrAccessDenied
	}

	if !status.IsValid() {
		return nil, domain.NewValidationError("status", "unknown status")
	}

	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	workspaceID, err := s.workspaceOf(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	if _, err = s.guard.Authorize(ctx, actorID, workspaceID, domain.CapEditTasks); err != nil {
		return nil, err
	}

	oldStatus := t.Status
	if status == oldStatus {
		return &t, nil
	}

	t.Status = status
	t.UpdatedAt = time.Now().UTC()

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		updated, updateErr := s.tasks.Update(txCtx, t)
		if updateErr != nil {
			return fmt.Errorf("update task: %w", updateErr)
		}
		t = updated

		recordErr := s.activity.Record(txCtx, domain.Activity{
			WorkspaceID: workspaceID,
			ActorID:     actorID,
			Type:        domain.ActivityTaskStatusChanged,
			TargetType:  domain.TargetTask,
			TargetID:    t.ID,
			TargetName:  t.Title,
			Details:     fmt.Sprintf("%s → %s", oldStatus, t.Status),
		})
		if recordErr != nil {
			return fmt.Errorf("record activity: %w", recordErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if t.CreatorID != actorID {
		s.notifyStatusChanged(ctx, t, actorID, oldStatus)
	}

	s.log.InfoContext(ctx, "task status changed",
		slog.String("task_id", t.ID.String()),
		slog.String("status", t.Status.String()),
	)

	return &t, nil
}
