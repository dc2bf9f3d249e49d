package workspace

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/teamhub-dev/teamhub-backend/internal/domain"
	"github.com/teamhub-dev/teamhub-backend/pkg/ctxutil"
)

// RemoveMember removes a membership from the workspace. The OWNER membership
// can never be removed; ownership leaves a workspace only when the workspace
// itself goes.
func (s *Service) RemoveMember(ctx context.Context, workspaceID, memberID uuid.UUID) error {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrAccessDenied
	}

	if _, err := s.guard.Authorize(ctx, actorID, workspaceID, domain.CapManageMembers); err != nil {
		return err
	}

	target, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return fmt.Errorf("get membership: %w", err)
	}
	if target.WorkspaceID != workspaceID {
		return fmt.Errorf("workspace_member %s: %w", memberID, domain.ErrNotFound)
	}
	if target.Role == domain.RoleOwner {
		return fmt.Errorf("cannot remove the workspace owner: %w", domain.ErrConflict)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.members.Delete(txCtx, memberID); deleteErr != nil {
			return fmt.Errorf("delete membership: %w", deleteErr)
		}

		recordErr := s.activity.Record(txCtx, domain.Activity{
			WorkspaceID: workspaceID,
			ActorID:     actorID,
			Type:        domain.ActivityMemberRemoved,
			TargetType:  domain.TargetMember,
			TargetID:    memberID,
			Details:     target.UserID.String(),
		})
		if recordErr != nil {
			return fmt.Errorf("record activity: %w", recordErr)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "member removed",
		slog.String("workspace_id", workspaceID.String()),
		slog.String("member_id", memberID.String()),
		slog.String("actor_id", actorID.String()),
	)

	return nil
}
