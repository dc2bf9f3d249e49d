package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is one append-only audit event. Rows are never updated or
// deleted; the target name is denormalized so the entry survives a purge of
// the entity it describes.
type Activity struct {
	ID          uuid.UUID    `db:"id"`
	WorkspaceID uuid.UUID    `db:"workspace_id"`
	ActorID     uuid.UUID    `db:"actor_id"`
	Type        ActivityType `db:"activity_type"`
	TargetType  TargetType   `db:"target_type"`
	TargetID    uuid.UUID    `db:"target_id"`
	TargetName  string       `db:"target_name"`
	Details     string       `db:"details"`
	CreatedAt   time.Time    `db:"created_at"`
}
