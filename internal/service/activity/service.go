// Package activity implements the append-only audit trail of a workspace.
package activity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/teamhub-dev/teamhub-backend/internal/domain"
	"github.com/teamhub-dev/teamhub-backend/pkg/ctxutil"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

type activityRepo interface {
	Create(ctx context.Context, a domain.Activity) (domain.Activity, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, limit, offset int) ([]domain.Activity, error)
}

type accessGuard interface {
	Member(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.Member, error)
}

// Service records and reads activity entries. Record runs inside the
// caller's transaction: when the surrounding state change rolls back, the
// entry goes with it, and when the append fails, the state change aborts.
// The trail is complete by construction.
type Service struct {
	log        *slog.Logger
	activities activityRepo
	guard      accessGuard
}

func NewService(log *slog.Logger, activities activityRepo, guard accessGuard) *Service {
	return &Service{
		log:        log.With("service", "activity"),
		activities: activities,
		guard:      guard,
	}
}

// Record appends one activity entry, filling in the identifier and
// timestamp. Callers pass the entry with everything else set.
func (s *Service) Record(ctx context.Context, a domain.Activity) error {
	if a.WorkspaceID == uuid.Nil {
		return domain.NewValidationError("workspace_id", "must not be empty")
	}
	if !a.Type.IsValid() {
		return domain.NewValidationError("activity_type", "unknown activity type")
	}
	if !a.TargetType.IsValid() {
		return domain.NewValidationError("target_type", "unknown target type")
	}

	a.ID = uuid.New()
	a.CreatedAt = time.Now().UTC()

	if _, err := s.activities.Create(ctx, a); err != nil {
		return fmt.Errorf("append activity: %w", err)
	}

	return nil
}

// ListRecent returns the workspace's newest entries. The limit is clamped
// to 1..100; zero or negative means the default of 50.
func (s *Service) ListRecent(ctx context.Context, workspaceID uuid.UUID, limit int) ([]domain.Activity, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrAccessDenied
	}

	if _, err := s.guard.Member(ctx, actorID, workspaceID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	entries, err := s.activities.ListByWorkspace(ctx, workspaceID, limit, 0)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	return entries, nil
}
