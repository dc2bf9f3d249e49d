// Package workspace manages workspaces and their memberships.
package workspace

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/teamhub-dev/teamhub-backend/internal/domain"
)

type workspaceRepo interface {
	Create(ctx context.Context, ws domain.Workspace) (domain.Workspace, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Workspace, error)
	Update(ctx context.Context, ws domain.Workspace) (domain.Workspace, error)
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error)
}

type memberRepo interface {
	Create(ctx context.Context, m domain.Member) (domain.Member, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Member, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Member, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
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

// Service provides workspace and membership operations.
type Service struct {
	workspaces workspaceRepo
	members    memberRepo
	users      userRepo
	guard      accessGuard
	activity   activityRecorder
	notify     notifier
	tx         txManager
	log        *slog.Logger
}

// NewService creates a new Workspace service.
func NewService(
	log *slog.Logger,
	workspaces workspaceRepo,
	members memberRepo,
	users userRepo,
	guard accessGuard,
	activity activityRecorder,
	notify notifier,
	tx txManager,
) *Service {
	return &Service{
		workspaces: workspaces,
		members:    members,
		users:      users,
		guard:      guard,
		activity:   activity,
		notify:     notify,
		tx:         tx,
		log:        log.With("service", "workspace"),
	}
}
