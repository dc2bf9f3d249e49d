package project

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/teamhub-dev/teamhub-backend/internal/domain"
	"github.com/teamhub-dev/teamhub-backend/pkg/ctxutil"
)

// Delete moves a project to the trash. Its tasks stay untouched but
// disappear from all normal reads until the project is restored.
func (s *Service) Delete(ctx context.Context, projectID uuid.UUID) error {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrAccessDenied
	}

	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("get project: %w", err)
	}

	if _, err = s.guard.Authorize(ctx, actorID, p.WorkspaceID, domain.CapManageProjects); err != nil {
		return err
	}

	now := time.Now().UTC()
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.projects.SoftDelete(txCtx, p.ID, now); deleteErr != nil {
			return fmt.Errorf("soft delete project: %w", deleteErr)
		}

		recordErr := s.activity.Record(txCtx, domain.Activity{
			WorkspaceID: p.WorkspaceID,
			ActorID:     actorID,
			Type:        domain.ActivityProjectDeleted,
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
		return err
	}

	s.log.InfoContext(ctx, "project moved to trash", slog.String("project_id", p.ID.String()))

	return nil
}
