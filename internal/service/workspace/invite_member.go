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

// InviteMember adds an existing user to the workspace with the given role.
// The invitee is addressed by email. A push notification goes out to the
// invitee after the membership has committed.
func (s *Service) InviteMember(ctx context.Context, input InviteMemberInput) (*domain.Member, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrAccessDenied
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.guard.Authorize(ctx, actorID, input.WorkspaceID, domain.CapManageMembers); err != nil {
		return nil, err
	}

	ws, err := s.workspaces.GetByID(ctx, input.WorkspaceID)
	if err != nil {
		return nil, fmt.Errorf("get workspace: %w", err)
	}

	invitee, err := s.users.GetByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		return nil, fmt.Errorf("find invitee: %w", err)
	}

	now := time.Now().UTC()
	member := domain.Member{
		ID:          uuid.New(),
		WorkspaceID: input.WorkspaceID,
		UserID:      invitee.ID,
		Role:        input.Role,
		CreatedAt:   now,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		created, createErr := s.members.Create(txCtx, member)
		if createErr != nil {
			return fmt.Errorf("create membership: %w", createErr)
		}
		member = created

		recordErr := s.activity.Record(txCtx, domain.Activity{
			WorkspaceID: input.WorkspaceID,
			ActorID:     actorID,
			Type:        domain.ActivityMemberInvited,
			TargetType:  domain.TargetMember,
			TargetID:    member.ID,
			TargetName:  invitee.Name,
			Details:     string(input.Role),
		})
		if recordErr != nil {
			return fmt.Errorf("record activity: %w", recordErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// After commit: the membership exists whatever happens to the notification.
	_, _, notifyErr := s.notify.Dispatch(ctx, domain.Notification{
		Type:        domain.NotificationMemberInvited,
		Title:       fmt.Sprintf("You were added to %q", ws.Name),
		RecipientID: invitee.ID,
		SenderID:    &actorID,
		TargetType:  domain.TargetWorkspace,
		TargetID:    ws.ID,
	})
	if notifyErr != nil {
		s.log.WarnContext(ctx, "invite notification failed",
			slog.String("workspace_id", ws.ID.String()),
			slog.String("invitee_id", invitee.ID.String()),
			slog.Any("error", notifyErr),
		)
	}

	s.log.InfoContext(ctx, "member invited",
		slog.String("workspace_id", ws.ID.String()),
		slog.String("invitee_id", invitee.ID.String()),
		slog.String("role", member.Role.String()),
	)

	return &member, nil
}
