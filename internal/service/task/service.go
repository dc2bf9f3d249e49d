// Package task implements task management: CRUD, status and assignment
// changes, ordering and comments.
package task

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/teamhub-dev/teamhub-backend/internal/domain"
)

type taskRepo interface {
	Create(ctx context.Context, t domain.Task) (domain.Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Task, error)
	Update(ctx context.Context, t domain.Task) (domain.Task, error)
	ListByProject(ctx context.Context, projectID uuid.UUID, status *domain.TaskStatus) ([]domain.Task, error)
	ListByAssignee(ctx context.Context, workspaceID, userID uuid.UUID) ([]domain.Task, error)
	Reorder(ctx context.Context, projectID uuid.UUID, orderedIDs []uuid.UUID, at time.Time) error
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error
}

type projectReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error)
}

type commentRepo interface {
	Create(ctx context.Context, c domain.Comment) (domain.Comment, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.Comment, error)
}

type accessGuard interface {
	Authorize(ctx context.Context, userID, workspaceID uuid.UUID, cap domain.Capability) (*domain.Member, error)
	Member(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.Member, error)
}

type activityRecorder interface {
	Record(ctx context.Context, a domain.Activity) error
}

type notifier interface {
	Dispatch(ctx context.Context, n domain.Notification) (*domain.Notification, domain.PushResult, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service handles tasks and their comments. Notifications go out after the
// owning transaction has committed and never fail the operation.
type Service struct {
	log      *slog.Logger
	tasks    taskRepo
	projects projectReader
	comments commentRepo
	guard    accessGuard
	activity activityRecorder
	notify   notifier
	tx       txManager
}

func NewService(
	log *slog.Logger,
	tasks taskRepo,
	projects projectReader,
	comments commentRepo,
	guard accessGuard,
	activity activityRecorder,
	notify notifier,
	tx txManager,
) *Service {
	return &Service{
		log:      log.With("service", "task"),
		tasks:    tasks,
		projects: projects,
		comments: comments,
		guard:    guard,
		activity: activity,
		notify:   notify,
		tx:       tx,
	}
}

// workspaceOf resolves the workspace a task belongs to through its parent
// project.
func (s *Service) workspaceOf(ctx context.Context, t domain.Task) (uuid.UUID, error) {
	p, err := s.projects.GetByID(ctx, t.ProjectID)
	if err != nil {
		return uuid.Nil, err
	}
	return p.WorkspaceID, nil
}

// requireMember translates a failed membership lookup for an assignee into
// a validation error. The assignee is input, not the caller, so access
// wording would mislead.
func (s *Service) requireMember(ctx context.Context, userID, workspaceID uuid.UUID) error {
	_, err := s.guard.Member(ctx, userID, workspaceID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrAccessDenied):
		return domain.NewValidationError("assignee_id", "must be a member of the workspace")
	default:
		return err
	}
}
