package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/teamhub-dev/teamhub-backend/internal/domain"
	"github.com/teamhub-dev/teamhub-backend/pkg/ctxutil"
)

// Update renames a workspace or changes its description.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Workspace, error) {
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

	ws, err := s.workspaces.GetByID(ctx, input.WorkspaceID)
	if err != nil {
		return nil, fmt.Errorf("get workspace: %w", err)
	}

	ws.Name = strings.TrimSpace(input.Name)
	ws.Description = strings.TrimSpace(input.Description)
	ws.UpdatedAt = time.Now().UTC()

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		updated, updateErr := s.workspaces.Update(txCtx, ws)
		if updateErr != nil {
			return fmt.Errorf("update workspace: %w", updateErr)
		}
		ws = updated

		recordErr := s.activity.Record(txCtx, domain.Activity{
			WorkspaceID: ws.ID,
			ActorID:     actorID,
			Type:        domain.ActivityWorkspaceUpdated,
			TargetType:  domain.TargetWorkspace,
			TargetID:    ws.ID,
			TargetName:  ws.Name,
		})
		if recordErr != nil {
			return fmt.Errorf("record activity: %w", recordErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "workspace updated",
		slog.String("workspace_id", ws.ID.String()),
		slog.String("actor_id", actorID.String()),
	)

	return &ws, nil
}
