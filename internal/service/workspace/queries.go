package workspace

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/teamhub-dev/teamhub-backend/internal/domain"
	"github.com/teamhub-dev/teamhub-backend/pkg/ctxutil"
)

// Get returns a workspace the caller is a member of.
func (s *Service) Get(ctx context.Context, workspaceID uuid.UUID) (*domain.Workspace, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrAccessDenied
	}

	if _, err := s.guard.Member(ctx, actorID, workspaceID); err != nil {
		return nil, err
	}

	ws, err := s.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	return &ws, nil
}

// ListMine returns the workspaces the caller belongs to.
func (s *Service) ListMine(ctx context.Context) ([]domain.Workspace, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrAccessDenied
	}

	list, err := s.workspaces.ListByUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	return list, nil
}

// ListMembers returns the memberships of a workspace the caller belongs to.
func (s *Service) ListMembers(ctx context.Context, workspaceID uuid.UUID) ([]domain.Member, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrAccessDenied
	}

	if _, err := s.guard.Member(ctx, actorID, workspaceID); err != nil {
		return nil, err
	}

	list, err := s.members.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return list, nil
}
