package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teamhub-dev/teamhub-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// now returns a timestamp truncated to microseconds, matching timestamptz precision.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// SeedUser creates a user row and returns the filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	user := domain.User{
		ID:    uuid.New(),
		Name:  "Test User " + suffix,
		Email: "testuser-" + suffix + "@example.com",
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, name, email, created_at)
		 VALUES ($1, $2, $3, $4)`,
		user.ID, user.Name, user.Email, now(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert: %v", err)
	}

	return user
}

// SeedWorkspace creates a workspace owned by ownerID together with the
// owner's OWNER membership, and returns the workspace.
func SeedWorkspace(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID) domain.Workspace {
	t.Helper()

	suffix := uniqueSuffix()
	ts := now()
	ws := domain.Workspace{
		ID:        uuid.New(),
		Name:      "Workspace " + suffix,
		OwnerID:   ownerID,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO workspaces (id, name, description, owner_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		ws.ID, ws.Name, ws.Description, ws.OwnerID, ws.CreatedAt, ws.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedWorkspace insert workspace: %v", err)
	}

	SeedMember(t, pool, ws.ID, ownerID, domain.RoleOwner)

	return ws
}

// SeedMember creates a membership row and returns it.
func SeedMember(t *testing.T, pool *pgxpool.Pool, workspaceID, userID uuid.UUID, role domain.Role) domain.Member {
	t.Helper()

	m := domain.Member{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        role,
		CreatedAt:   now(),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO workspace_members (id, workspace_id, user_id, role, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.WorkspaceID, m.UserID, string(m.Role), m.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedMember insert: %v", err)
	}

	return m
}

// SeedProject creates an active project in the workspace and returns it.
func SeedProject(t *testing.T, pool *pgxpool.Pool, workspaceID uuid.UUID) domain.Project {
	t.Helper()

	suffix := uniqueSuffix()
	ts := now()
	p := domain.Project{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        "Project " + suffix,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO projects (id, workspace_id, name, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.WorkspaceID, p.Name, p.Description, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProject insert: %v", err)
	}

	return p
}

// SeedTask creates an active TODO task in the project and returns it.
func SeedTask(t *testing.T, pool *pgxpool.Pool, projectID, creatorID uuid.UUID) domain.Task {
	t.Helper()

	suffix := uniqueSuffix()
	ts := now()
	task := domain.Task{
		ID:        uuid.New(),
		ProjectID: projectID,
		Title:     "Task " + suffix,
		Status:    domain.TaskStatusTodo,
		Priority:  domain.TaskPriorityMedium,
		CreatorID: creatorID,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO tasks (id, project_id, title, description, status, priority, creator_id, display_order, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		task.ID, task.ProjectID, task.Title, task.Description,
		string(task.Status), string(task.Priority), task.CreatorID,
		task.DisplayOrder, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTask insert: %v", err)
	}

	return task
}

// SoftDeleteTask marks the task deleted at the given instant, bypassing the
// service layer.
func SoftDeleteTask(t *testing.T, pool *pgxpool.Pool, taskID uuid.UUID, deletedAt time.Time) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`UPDATE tasks SET is_deleted = TRUE, deleted_at = $2, updated_at = $2 WHERE id = $1`,
		taskID, deletedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SoftDeleteTask: %v", err)
	}
}

// SoftDeleteProject marks the project deleted at the given instant, bypassing
// the service layer.
func SoftDeleteProject(t *testing.T, pool *pgxpool.Pool, projectID uuid.UUID, deletedAt time.Time) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`UPDATE projects SET is_deleted = TRUE, deleted_at = $2, updated_at = $2 WHERE id = $1`,
		projectID, deletedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SoftDeleteProject: %v", err)
	}
}
