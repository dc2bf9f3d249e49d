package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/teamhub-dev/teamhub-backend/internal/domain"
	"github.com/teamhub-dev/teamhub-backend/pkg/ctxutil"
)

// Update replaces a task's editable fields. A status change embedded in
// the update notifies the task creator, a changed assignee gets an
// assignment notification. The actor never notifies themselves.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Task, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrAccessDenied
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	t, err := s.tasks.GetByID(ctx, input.TaskID)
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
	assigneeChanged := !sameAssignee(t.AssigneeID, input.AssigneeID)
	if assigneeChanged && input.AssigneeID != nil {
		if err = s.requireMember(ctx, *input.AssigneeID, workspaceID); err != nil {
			return nil, err
		}
	}

	t.Title = strings.TrimSpace(input.Title)
	t.Description = strings.TrimSpace(input.Description)
	t.Status = input.Status
	t.Priority = input.Priority
	t.AssigneeID = input.AssigneeID
	t.DueDate = input.DueDate
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
			Type:        domain.ActivityTaskUpdated,
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

	if t.Status != oldStatus && t.CreatorID != actorID {
		s.notifyStatusChanged(ctx, t, actorID, oldStatus)
	}
	if assigneeChanged && t.AssigneeID != nil && *t.AssigneeID != actorID {
		s.notifyAssigned(ctx, t, actorID)
	}

	s.log.InfoContext(ctx, "task updated", slog.String("task_id", t.ID.String()))

	return &t, nil
}

func sameAssignee(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// notifyStatusChanged tells the task creator about the new status.
// Failures are logged only.
func (s *Service) notifyStatusChanged(ctx context.Context, t domain.Task, actorID uuid.UUID, oldStatus domain.TaskStatus) {
	_, _, err := s.notify.Dispatch(ctx, domain.Notification{
		Type:        domain.NotificationTaskStatusChanged,
		Title:       "Task status changed",
		Message:     fmt.Sprintf("%q moved from %s to %s", t.Title, oldStatus, t.Status),
		RecipientID: t.CreatorID,
		SenderID:    &actorID,
		TargetType:  domain.TargetTask,
		TargetID:    t.ID,
	})
	if err != nil {
		s.log.WarnContext(ctx, "status notification failed",
			slog.String("task_id", t.ID.String()),
			slog.Any("error", err),
		)
	}
}
