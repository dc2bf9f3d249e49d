package domain

import (
	"time"

	"github.com/google/uuid"
)

// Workspace is the top-level tenant. The owner is fixed at creation; the
// only way to change it would be a workspace transfer, which does not exist.
type Workspace struct {
	ID          uuid.UUID  `db:"id"`
	Name        string     `db:"name"`
	Description string     `db:"description"`
	OwnerID     uuid.UUID  `db:"owner_id"`
	IsDeleted   bool       `db:"is_deleted"`
	DeletedAt   *time.Time `db:"deleted_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// Member binds a user to a workspace with a role. The (workspace, user)
// pair is unique; exactly one OWNER membership exists per workspace.
type Member struct {
	ID          uuid.UUID `db:"id"`
	WorkspaceID uuid.UUID `db:"workspace_id"`
	UserID      uuid.UUID `db:"user_id"`
	Role        Role      `db:"role"`
	CreatedAt   time.Time `db:"created_at"`
}

// User is a minimal projection of an account. Account lifecycle and
// authentication live outside this core.
type User struct {
	ID    uuid.UUID `db:"id"`
	Name  string    `db:"name"`
	Email string    `db:"email"`
}
