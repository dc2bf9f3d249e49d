// Package project implements project management inside a workspace.
package project

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/teamhub-dev/teamhub-backend/internal/domain"
)

type projectRepo interface {
	Create(ctx context.Context, p domain.Project) (domain.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error)
	Update(ctx context.Context, p domain.Project) (domain.Project, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Project, error)
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error
}

type accessGuard interface {
	Authorize(ctx context.Context, userID, workspaceID uuid.UUID, cap domain.Capability) (*domain.Member, error)
	Member(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.Member, error)
}

type activityRecorder interface {
	Record(ctx context.Context, a domain.Activity) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service handles project lifecycle within a workspace. Soft deletion
// moves a project to the trash; restoration and purge live in the trash
// service.
type Service struct {
	log      *slog.Logger
	projects projectRepo
	guard    accessGuard
	activity activityRecorder
	tx       txManager
}

func NewService(
	log *slog.Logger,
	projects projectRepo,
	guard accessGuard,
	activity activityRecorder,
	tx txManager,
) *Service {
	return &Service{
		log:      log.With("service", "project"),
		projects: projects,
		guard:    guard,
		activity: activity,
		tx:       tx,
	}
}
