package workspace

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

// Create creates a workspace with the caller as OWNER. The workspace row,
// the OWNER membership and the activity entry commit atomically.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Workspace, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrAccessDenied
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ws := domain.Workspace{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		OwnerID:     actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		created, createErr := s.workspaces.Create(txCtx, ws)
		if createErr != nil {
			return fmt.Errorf("create workspace: %w", createErr)
		}
		ws = created

		_, memberErr := s.members.Create(txCtx, domain.Member{
			ID:          uuid.New(),
			WorkspaceID: ws.ID,
			UserID:      actorID,
			Role:        domain.RoleOwner,
			CreatedAt:   now,
		})
		if memberErr != nil {
			return fmt.Errorf("create owner membership: %w", memberErr)
		}

		recordErr := s.activity.Record(txCtx, domain.Activity{
			WorkspaceID: ws.ID,
			ActorID:     actorID,
			Type:        domain.ActivityWorkspaceCreated,
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

	s.log.InfoContext(ctx, "workspace created",
		slog.String("workspace_id", ws.ID.String()),
		slog.String("owner_id", actorID.String()),
	)

	return &ws, nil
}
