package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification is the durable record of a user-facing event. The recipient
// is always a member of the workspace owning the target at creation time;
// that holds by construction, not by a foreign-key check.
type Notification struct {
	ID          uuid.UUID        `db:"id"`
	Type        NotificationType `db:"notification_type"`
	Title       string           `db:"title"`
	Message     string           `db:"message"`
	RecipientID uuid.UUID        `db:"recipient_id"`
	SenderID    *uuid.UUID       `db:"sender_id"`
	TargetType  TargetType       `db:"target_type"`
	TargetID    uuid.UUID        `db:"target_id"`
	IsRead      bool             `db:"is_read"`
	CreatedAt   time.Time        `db:"created_at"`
}

// PushResult is the outcome of the best-effort real-time delivery attempt.
// A skipped push is not an error: the durable row already exists.
type PushResult struct {
	Delivered  bool
	SkipReason string
}

// Delivered is the successful push outcome.
func PushDelivered() PushResult { return PushResult{Delivered: true} }

// PushSkipped records why the real-time delivery did not happen.
func PushSkipped(reason string) PushResult {
	return PushResult{Delivered: false, SkipReason: reason}
}
