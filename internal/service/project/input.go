package project

import (
	"strings"

	"github.com/google/uuid"

	"github.com/teamhub-dev/teamhub-backend/internal/domain"
)

const maxNameLen = 200

// CreateInput carries the fields for creating a project.
type CreateInput struct {
	WorkspaceID uuid.UUID
	Name        string
	Description string
}

// Validate checks the input.
func (in CreateInput) Validate() error {
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

// UpdateInput carries the fields for updating a project.
type UpdateInput struct {
	ProjectID   uuid.UUID
	Name        string
	Description string
}

// Validate checks the input.
func (in UpdateInput) Validate() error {
	if in.ProjectID == uuid.Nil {
		return domain.NewValidationError("project_id", "must not be empty")
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
