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

// Create creates a task in the project. An assignee, when given, must be a
// member of the project's workspace. The assignee gets a notification
// unless they created the task themselves.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Task, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrAccessDenied
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	p, err := s.projects.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	if _, err = s.guard.Authorize(ctx, actorID, p.WorkspaceID, domain.CapEditTasks); err != nil {
		return nil, err
	}

	if input.AssigneeID != nil {
		if err = s.requireMember(ctx, *input.AssigneeID, p.WorkspaceID); err != nil {
			return nil, err
		}
	}

	// The new task goes to the end of the project's board.
	siblings, err := s.tasks.ListByProject(ctx, input.ProjectID, nil)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	now := time.Now().UTC()
	t := domain.Task{
		ID:           uuid.New(),
		ProjectID:    input.ProjectID,
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		Status:       input.Status,
		Priority:     input.Priority,
		AssigneeID:   input.AssigneeID,
		CreatorID:    actorID,
		DueDate:      input.DueDate,
		DisplayOrder: len(siblings),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		created, createErr := s.tasks.Create(txCtx, t)
		if createErr != nil {
			return fmt.Errorf("create task: %w", createErr)
		}
		t = created

		recordErr := s.activity.Record(txCtx, domain.Activity{
			WorkspaceID: p.WorkspaceID,
			ActorID:     actorID,
			Type:        domain.ActivityTaskCreated,
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

	s.log.InfoContext(ctx, "task created",
		slog.String("task_id", t.ID.String()),
		slog.String("project_id", t.ProjectID.String()),
	)

	return &t, nil
}

// notifyAssigned sends the assignment notification. Failures are logged
// only: the task state already committed.
func (s *Service) notifyAssigned(ctx context.Context, t domain.Task, actorID uuid.UUID) {
	_, _, err := s.notify.Dispatch(ctx, domain.Notification{
		Type:        domain.NotificationTaskAssigned,
		Title:       "Task assigned to you",
		Message:     fmt.Sprintf("You were assigned %q", t.Title),
		RecipientID: *t.AssigneeID,
		SenderID:    &actorID,
		TargetType:  domain.TargetTask,
		TargetID:    t.ID,
	})
	if err != nil {
		s.log.WarnContext(ctx, "assignment notification failed",
			slog.String("task_id", t.ID.String()),
			slog.Any("error", err),
		)
	}
}
