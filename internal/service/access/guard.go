// Package access is the single role-check enforcement point. Every mutating
// operation in the other services calls Authorize before touching state; no
// service re-implements its own role logic.
package access

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/teamhub-dev/teamhub-backend/internal/domain"
)

type memberDirectory interface {
	GetByWorkspaceAndUser(ctx context.Context, workspaceID, userID uuid.UUID) (domain.Member, error)
}

// Guard answers "may this user do this in this workspace".
type Guard struct {
	members memberDirectory
	log     *slog.Logger
}

// NewGuard creates a new access guard.
func NewGuard(log *slog.Logger, members memberDirectory) *Guard {
	return &Guard{
		members: members,
		log:     log.With("service", "access"),
	}
}

// Authorize loads the user's membership in the workspace and checks the role
// matrix for the capability. A missing membership comes back as plain
// ErrAccessDenied so the caller cannot tell "no such workspace" from "not a
// member". An insufficient role comes back as AccessDeniedError carrying the
// capability. Roles are re-read on every call, never cached.
func (g *Guard) Authorize(ctx context.Context, userID, workspaceID uuid.UUID, cap domain.Capability) (*domain.Member, error) {
	member, err := g.members.GetByWorkspaceAndUser(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAccessDenied
		}
		return nil, fmt.Errorf("load membership: %w", err)
	}

	if !member.Role.Can(cap) {
		g.log.DebugContext(ctx, "capability denied",
			slog.String("user_id", userID.String()),
			slog.String("workspace_id", workspaceID.String()),
			slog.String("role", member.Role.String()),
			slog.String("capability", cap.String()),
		)
		return nil, domain.NewAccessDeniedError(cap)
	}

	return &member, nil
}

// Member loads the user's membership without any capability requirement.
// Read-only operations use it: any member of the workspace may look.
func (g *Guard) Member(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.Member, error) {
	member, err := g.members.GetByWorkspaceAndUser(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAccessDenied
		}
		return nil, fmt.Errorf("load membership: %w", err)
	}
	return &member, nil
}
