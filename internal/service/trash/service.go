// Package trash implements the soft-delete lifecycle: listing trashed
// entities, restoring them and purging them for good.
package trash

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/teamhub-dev/teamhub-backend/internal/config"
	"github.com/teamhub-dev/teamhub-backend/internal/domain"
	"github.com/teamhub-dev/teamhub-backend/pkg/ctxutil"
)

type taskTrashRepo interface {
	GetByIDAny(ctx context.Context, id uuid.UUID) (domain.Task, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.Task, error)
	ListDeletedByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Task, error)
	Restore(ctx context.Context, id uuid.UUID, at time.Time) error
	HardDelete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, workspaceID uuid.UUID, cutoff time.Time) (int64, error)
}

type projectTrashRepo interface {
	GetByIDAny(ctx context.Context, id uuid.UUID) (domain.Project, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.Project, error)
	ListDeletedByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Project, error)
	Restore(ctx context.Context, id uuid.UUID, at time.Time) error
	HardDelete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, workspaceID uuid.UUID, cutoff time.Time) (int64, error)
}

type accessGuard interface {
	Authorize(ctx context.Context, userID, workspaceID uuid.UUID, cap domain.Capability) (*domain.Member, error)
}

type activityRecorder interface {
	Record(ctx context.Context, a domain.Activity) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service manages the LIVE, TRASHED and PURGED states of tasks and
// projects. Purge is physical deletion; a purged row is gone, only its
// activity trail survives.
type Service struct {
	log       *slog.Logger
	tasks     taskTrashRepo
	projects  projectTrashRepo
	guard     accessGuard
	activity  activityRecorder
	tx        txManager
	clock     clockwork.Clock
	retention time.Duration
}

func NewService(
	log *slog.Logger,
	cfg config.Lifecycle,
	tasks taskTrashRepo,
	projects projectTrashRepo,
	guard accessGuard,
	activity activityRecorder,
	tx txManager,
	clock clockwork.Clock,
) *Service {
	return &Service{
		log:       log.With("service", "trash"),
		tasks:     tasks,
		projects:  projects,
		guard:     guard,
		activity:  activity,
		tx:        tx,
		clock:     clock,
		retention: cfg.TrashRetention(),
	}
}

// authorize runs the capability check for the calling user.
func (s *Service) authorize(ctx context.Context, workspaceID uuid.UUID, cap domain.Capability) error {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrAccessDenied
	}
	_, err := s.guard.Authorize(ctx, actorID, workspaceID, cap)
	return err
}

// ListDeletedTasks returns the workspace's trashed tasks, newest deletion
// first. Tasks hidden because their parent project is trashed are not
// listed; restoring the project brings them back as a unit.
func (s *Service) ListDeletedTasks(ctx context.Context, workspaceID uuid.UUID) ([]domain.Task, error) {
	if err := s.authorize(ctx, workspaceID, domain.CapManageProjects); err != nil {
		return nil, err
	}
	return s.tasks.ListDeletedByWorkspace(ctx, workspaceID)
}

// ListDeletedProjects returns the workspace's trashed projects, newest
// deletion first.
func (s *Service) ListDeletedProjects(ctx context.Context, workspaceID uuid.UUID) ([]domain.Project, error) {
	if err := s.authorize(ctx, workspaceID, domain.CapManageProjects); err != nil {
		return nil, err
	}
	return s.projects.ListDeletedByWorkspace(ctx, workspaceID)
}
