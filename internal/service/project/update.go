package project

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/teamhub-dev/teamhub-backend/internal/domain"
	"github.com/teamhub-dev/teamhub-backend/pkg/ctxutil"
)

// Update changes a project's name and description. The workspace binding
// never changes.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Project, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrAccessDenied
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	p, err := s.projects.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	if _, err = s.guard.Authorize(ctx, actorID, p.WorkspaceID, domain.CapManageProjects); err != nil {
		return nil, err
	}

	p.Name = strings.TrimSpace(input.Name)
	p.Description = strings.TrimSpace(input.Description)
	p.UpdatedAt = time.Now().UTC()

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		updated, updateErr := s.projects.Update(txCtx, p)
		if updateErr != nil {
			return fmt.Errorf("update project: %w", updateErr)
		}
		p = updated

		recordErr := s.activity.Record(txCtx, domain.Activity{
			WorkspaceID: p.WorkspaceID,
			ActorID:     actorID,
			Type:        domain.ActivityProjectUpdated,
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

	s.log.InfoContext(ctx, "project updated", slog.String("project_id", p.ID.String()))

	return &p, nil
}
