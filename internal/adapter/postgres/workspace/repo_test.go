package workspace_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamhub-dev/teamhub-backend/internal/adapter/postgres/testhelper"
	"github.com/teamhub-dev/teamhub-backend/internal/adapter/postgres/workspace"
	"github.com/teamhub-dev/teamhub-backend/internal/domain"
)

func TestRepo_CreateAndGet(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := workspace.New(pool)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	in := domain.Workspace{
		ID:        uuid.New(),
		Name:      "Acme",
		OwnerID:   owner.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := repo.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, in.Name, created.Name)
	assert.Equal(t, owner.ID, created.OwnerID)

	got, err := repo.GetByID(ctx, in.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestRepo_ListByUser_OnlyMemberships(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := workspace.New(pool)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	mine := testhelper.SeedWorkspace(t, pool, owner.ID)

	otherOwner := testhelper.SeedUser(t, pool)
	testhelper.SeedWorkspace(t, pool, otherOwner.ID)

	list, err := repo.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)
}

func TestRepo_Delete_CascadesMembers(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := workspace.New(pool)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	ws := testhelper.SeedWorkspace(t, pool, owner.ID)

	require.NoError(t, repo.Delete(ctx, ws.ID))

	var exists bool
	err := pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM workspace_members WHERE workspace_id = $1)`, ws.ID).Scan(&exists)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, repo.Delete(ctx, ws.ID), domain.ErrNotFound)
}
