package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/teamhub-dev/teamhub-backend/internal/domain"
	"github.com/teamhub-dev/teamhub-backend/pkg/ctxutil"
)

// Delete soft-deletes a workspace. Only the owner may do this. Projects and
// tasks inside stay untouched; they become unreachable because every lookup
// path goes through the workspace.
func (s *Service) Delete(ctx context.Context, workspaceID uuid.UUID) error {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrAccessDenied
	}

	if _, err := s.guard.Authorize(ctx, actorID, workspaceID, domain.CapIsOwner); err != nil {
		return err
	}

	ws, err := s.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("get workspace: %w", err)
	}

	now := time.Now().UTC()
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.workspaces.SoftDelete(txCtx, workspaceID, now); deleteErr != nil {
			return fmt.Errorf("soft delete workspace: %w", deleteErr)
		}

		recordErr := s.activity.Record(txCtx, domain.Activity{
			WorkspaceID: workspaceID,
			ActorID:     actorID,
			Type:        domain.ActivityWorkspaceDeleted,
			TargetType:  domain.TargetWorkspace,
			TargetID:    workspaceID,
			TargetName:  ws.Name,
		})
		if recordErr != nil {
			return fmt.Errorf("record activity: %w", recordErr)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "workspace deleted",
		slog.String("workspace_id", workspaceID.String()),
		slog.String("actor_id", actorID.String()),
	)

	return nil
}
