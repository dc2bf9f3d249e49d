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

// Assign sets or clears the task's assignee. Assigning to the same user is
// a no-op: no write, no notification. The new assignee is notified unless
// they assigned themselves.
func (s *Service) Assign(ctx context.Context, taskID uuid.UUID, assigneeID *uuid.UUID) (*domain.Task, error) {
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

	if _, err = s.guard.Authorize(ctx, actorID, workspaceID, domain.CapEditTasks); err != nil {
		return nil, err
	}

	if sameAssignee(t.AssigneeID, assigneeID) {
		return &t, nil
	}

	if assigneeID != nil {
		if err = s.requireMember(ctx, *assigneeID, workspaceID); err != nil {
			return nil, err
		}
	}

	t.AssigneeID = assigneeID
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
			Type:        domain.ActivityTaskAssigned,
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

	if t.AssigneeID != nil && *t.AssigneeID != actorID {
		s.notifyAssigned(ctx, t, actorID)
	}

	s.log.InfoContext(ctx, "task assignment changed", slog.String("task_id", t.ID.String()))

	return &t, nil
}
