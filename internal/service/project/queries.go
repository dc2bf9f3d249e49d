package project

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/teamhub-dev/teamhub-backend/internal/domain"
	"github.com/teamhub-dev/teamhub-backend/pkg/ctxutil"
)

// Get returns an active project the caller can see.
func (s *Service) Get(ctx context.Context, projectID uuid.UUID) (*domain.Project, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrAccessDenied
	}

	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	if _, err = s.guard.Member(ctx, actorID, p.WorkspaceID); err != nil {
		return nil, err
	}

	return &p, nil
}

// ListByWorkspace returns the workspace's active projects.
func (s *Service) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Project, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrAccessDenied
	}

	if _, err := s.guard.Member(ctx, actorID, workspaceID); err != nil {
		return nil, err
	}

	projects, err := s.projects.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	return projects, nil
}
