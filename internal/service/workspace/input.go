package workspace

import (
	"strings"

	"github.com/google/uuid"

	"github.com/teamhub-dev/teamhub-backend/internal/domain"
)

const maxNameLen = 200

// CreateInput carries the fields for creating a workspace.
type CreateInput struct {
	Name        string
	Description string
}

// Validate checks the input.
func (in CreateInput) Validate() error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.NewValidationError("name", "must not be empty")
	}
	if len(name) > maxNameLen {
		return domain.NewValidationError("name", "too long (max 200)")
	}
	return nil
}

// UpdateInput carries the fields for updating a workspace.
type UpdateInput struct {
	WorkspaceID uuid.UUID
	Name        string
	Description string
}

// Validate checks the input.
func (in UpdateInput) Validate() error {
	if in.WorkspaceID == uuid.Nil {
		return domain.NewValidationError("workspace_id", "must not be empty")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.NewValidationError("name", "must not be empty")
	}
	if len(name) > maxNameLen {
		return domain.NewValidationError("name", "too long (max 200)")
	}
	return nil
}

// InviteMemberInput carries the fields for inviting a user to a workspace.
type InviteMemberInput struct {
	WorkspaceID uuid.UUID
	Email       string
	Role        domain.Role
}

// Validate checks the input. The OWNER role is not assignable: a workspace
// has exactly one owner, fixed at creation.
func (in InviteMemberInput) Validate() error {
	if in.WorkspaceID == uuid.Nil {
		return domain.NewValidationError("workspace_id", "must not be empty")
	}
	if strings.TrimSpace(in.Email) == "" {
		return domain.NewValidationError("email", "must not be empty")
	}
	if !in.Role.IsValid() {
		return domain.NewValidationError("role", "unknown role")
	}
	if in.Role == domain.RoleOwner {
		return domain.NewValidationError("role", "OWNER is not assignable")
	}
	return nil
}
