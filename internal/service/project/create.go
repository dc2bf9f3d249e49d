package project

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

// Create creates a project in the workspace.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Project, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrAccessDenied
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.guard.Authorize(ctx, actorID, input.WorkspaceID, domain.CapManageProjects); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := domain.Project{
		ID:          uuid.New(),
		WorkspaceID: input.WorkspaceID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		created, createErr := s.projects.Create(txCtx, p)
		if createErr != nil {
			return fmt.Errorf("create project: %w", createErr)
		}
		p = created

		recordErr := s.activity.Record(txCtx, domain.Activity{
			WorkspaceID: p.WorkspaceID,
			ActorID:     actorID,
			Type:        domain.ActivityProjectCreated,
			TargetType:  domain.TargetProject,
			TargetID:    p.ID,
			TargetName:  p.Name,
		})
		if recordErr != nil {
			return fmt.Errorf("record activity: %w", recordErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "project created",
		slog.String("project_id", p.ID.String()),
		slog.String("workspace_id", p.WorkspaceID.String()),
	)

	return &p, nil
}
