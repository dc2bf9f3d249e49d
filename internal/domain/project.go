package domain

import (
	"time"

	"github.com/google/uuid"
)

// Project groups tasks inside a workspace. WorkspaceID is immutable after
// creation.
type Project struct {
	ID          uuid.UUID  `db:"id"`
	WorkspaceID uuid.UUID  `db:"workspace_id"`
	Name        string     `db:"name"`
	Description string     `db:"description"`
	IsDeleted   bool       `db:"is_deleted"`
	DeletedAt   *time.Time `db:"deleted_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// Trashed reports whether the project sits in the trash.
func (p *Project) Trashed() bool { return p.IsDeleted }
