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

const detailsPreviewRunes = 50

// AddComment adds a comment to a task. Any workspace member can comment,
// including viewers. The task's assignee is notified unless they wrote the
// comment themselves.
func (s *Service) AddComment(ctx context.Context, input AddCommentInput) (*domain.Comment, error) {
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

	if _, err = s.guard.Member(ctx, actorID, workspaceID); err != nil {
		return nil, err
	}

	c := domain.Comment{
		ID:        uuid.New(),
		TaskID:    t.ID,
		AuthorID:  actorID,
		Content:   strings.TrimSpace(input.Content),
		CreatedAt: time.Now().UTC(),
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		created, createErr := s.comments.Create(txCtx, c)
		if createErr != nil {
			return fmt.Errorf("create comment: %w", createErr)
		}
		c = created

		recordErr := s.activity.Record(txCtx, domain.Activity{
			WorkspaceID: workspaceID,
			ActorID:     actorID,
			Type:        domain.ActivityCommentAdded,
			TargetType:  domain.TargetTask,
			TargetID:    t.ID,
			TargetName:  t.Title,
			Details:     truncateRunes(c.Content, detailsPreviewRunes),
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
		s.notifyCommentAdded(ctx, t, actorID)
	}

	s.log.InfoContext(ctx, "comment added",
		slog.String("task_id", t.ID.String()),
		slog.String("comment_id", c.ID.String()),
	)

	return &c, nil
}

// ListComments returns a task's comments, oldest first.
func (s *Service) ListComments(ctx context.Context, taskID uuid.UUID) ([]domain.Comment, error) {
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

	comments, err := s.comments.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return comments, nil
}

func (s *Service) notifyCommentAdded(ctx context.Context, t domain.Task, actorID uuid.UUID) {
	_, _, err := s.notify.Dispatch(ctx, domain.Notification{
		Type:        domain.NotificationCommentAdded,
		Title:       "New comment",
		Message:     fmt.Sprintf("New comment on %q", t.Title),
		RecipientID: *t.AssigneeID,
		SenderID:    &actorID,
		TargetType:  domain.TargetTask,
		TargetID:    t.ID,
	})
	if err != nil {
		s.log.WarnContext(ctx, "comment notification failed",
			slog.String("task_id", t.ID.String()),
			slog.Any("error", err),
		)
	}
}

// truncateRunes cuts s to at most n runes, appending an ellipsis when
// anything was cut.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
