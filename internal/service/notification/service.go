// Package notification implements durable notifications with best-effort
// real-time delivery.
package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/teamhub-dev/teamhub-backend/internal/domain"
	"github.com/teamhub-dev/teamhub-backend/pkg/ctxutil"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

type notificationRepo interface {
	Create(ctx context.Context, n domain.Notification) (domain.Notification, error)
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit, offset int) ([]domain.Notification, error)
	ListUnreadByRecipient(ctx context.Context, recipientID uuid.UUID, limit, offset int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, id, recipientID uuid.UUID) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
}

type pushChannel interface {
	Push(ctx context.Context, userID uuid.UUID, n domain.Notification) error
}

// Service persists notifications and pushes them to connected clients.
// Persistence is the contract; the push is opportunistic. Dispatch is
// called after the caller's own transaction has committed, so a slow or
// failing push can never undo a state change.
type Service struct {
	log           *slog.Logger
	notifications notificationRepo
	push          pushChannel
}

func NewService(log *slog.Logger, notifications notificationRepo, push pushChannel) *Service {
	return &Service{
		log:           log.With("service", "notification"),
		notifications: notifications,
		push:          push,
	}
}

// Dispatch stores the notification and attempts real-time delivery. A
// storage failure propagates; a push failure degrades to a skipped
// PushResult.
func (s *Service) Dispatch(ctx context.Context, n domain.Notification) (*domain.Notification, domain.PushResult, error) {
	if n.RecipientID == uuid.Nil {
		return nil, domain.PushResult{}, domain.NewValidationError("recipient_id", "must not be empty")
	}
	if !n.Type.IsValid() {
		return nil, domain.PushResult{}, domain.NewValidationError("notification_type", "unknown notification type")
	}

	n.ID = uuid.New()
	n.IsRead = false
	n.CreatedAt = time.Now().UTC()

	stored, err := s.notifications.Create(ctx, n)
	if err != nil {
		return nil, domain.PushResult{}, fmt.Errorf("store notification: %w", err)
	}

	if pushErr := s.push.Push(ctx, stored.RecipientID, stored); pushErr != nil {
		s.log.DebugContext(ctx, "push skipped",
			slog.String("notification_id", stored.ID.String()),
			slog.String("recipient_id", stored.RecipientID.String()),
			slog.Any("reason", pushErr),
		)
		return &stored, domain.PushSkipped(pushErr.Error()), nil
	}

	return &stored, domain.PushDelivered(), nil
}

// List returns the caller's notifications, newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]domain.Notification, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrAccessDenied
	}

	limit = clampLimit(limit)
	ns, err := s.notifications.ListByRecipient(ctx, actorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return ns, nil
}

// ListUnread returns the caller's unread notifications, newest first.
func (s *Service) ListUnread(ctx context.Context, limit, offset int) ([]domain.Notification, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrAccessDenied
	}

	limit = clampLimit(limit)
	ns, err := s.notifications.ListUnreadByRecipient(ctx, actorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list unread notifications: %w", err)
	}
	return ns, nil
}

// CountUnread returns the caller's unread badge count.
func (s *Service) CountUnread(ctx context.Context) (int, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrAccessDenied
	}

	count, err := s.notifications.CountUnread(ctx, actorID)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks one of the caller's notifications as read. The lookup is
// scoped to the caller, so another user's notification simply is not found.
func (s *Service) MarkRead(ctx context.Context, notificationID uuid.UUID) error {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrAccessDenied
	}

	if err := s.notifications.MarkRead(ctx, notificationID, actorID); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks every unread notification of the caller as read and
// returns how many changed.
func (s *Service) MarkAllRead(ctx context.Context) (int64, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrAccessDenied
	}

	n, err := s.notifications.MarkAllRead(ctx, actorID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return n, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
