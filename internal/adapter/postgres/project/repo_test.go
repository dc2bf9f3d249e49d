package project_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamhub-dev/teamhub-backend/internal/adapter/postgres/project"
	"github.com/teamhub-dev/teamhub-backend/internal/adapter/postgres/testhelper"
	"github.com/teamhub-dev/teamhub-backend/internal/domain"
)

func TestRepo_CreateAndGet(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := project.New(pool)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	ws := testhelper.SeedWorkspace(t, pool, owner.ID)

	now := time.Now().UTC().Truncate(time.Microsecond)
	in := domain.Project{
		ID:          uuid.New(),
		WorkspaceID: ws.ID,
		Name:        "Launch",
		Description: "Q3 launch plan",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := repo.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, in.Name, created.Name)

	got, err := repo.GetByID(ctx, in.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestRepo_SoftDeleteHidesAndRestoreReveals(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := project.New(pool)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	ws := testhelper.SeedWorkspace(t, pool, owner.ID)
	seeded := testhelper.SeedProject(t, pool, ws.ID)

	now := time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, repo.SoftDelete(ctx, seeded.ID, now))

	_, err := repo.GetByID(ctx, seeded.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	trashed, err := repo.GetByIDAny(ctx, seeded.ID)
	require.NoError(t, err)
	assert.True(t, trashed.IsDeleted)

	list, err := repo.ListByWorkspace(ctx, ws.ID)
	require.NoError(t, err)
	for _, p := range list {
		assert.NotEqual(t, seeded.ID, p.ID)
	}

	deleted, err := repo.ListDeletedByWorkspace(ctx, ws.ID)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, seeded.ID, deleted[0].ID)

	require.NoError(t, repo.Restore(ctx, seeded.ID, now))

	restored, err := repo.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)
	assert.Nil(t, restored.DeletedAt)
}

func TestRepo_DeleteExpired_CascadesTasks(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := project.New(pool)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	ws := testhelper.SeedWorkspace(t, pool, owner.ID)

	now := time.Now().UTC()
	cutoff := now.Add(-30 * 24 * time.Hour)

	expired := testhelper.SeedProject(t, pool, ws.ID)
	orphan := testhelper.SeedTask(t, pool, expired.ID, owner.ID)
	testhelper.SoftDeleteProject(t, pool, expired.ID, now.Add(-31*24*time.Hour))

	recent := testhelper.SeedProject(t, pool, ws.ID)
	testhelper.SoftDeleteProject(t, pool, recent.ID, now.Add(-29*24*time.Hour))

	n, err := repo.DeleteExpired(ctx, ws.ID, cutoff)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = repo.GetByIDAny(ctx, expired.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetByIDAny(ctx, recent.ID)
	require.NoError(t, err)

	// Task rows of the purged project are gone too.
	var exists bool
	err = pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tasks WHERE id = $1)`, orphan.ID).Scan(&exists)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRepo_Update_SkipsTrashed(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := project.New(pool)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	ws := testhelper.SeedWorkspace(t, pool, owner.ID)
	seeded := testhelper.SeedProject(t, pool, ws.ID)
	testhelper.SoftDeleteProject(t, pool, seeded.ID, time.Now().UTC())

	seeded.Name = "Renamed"
	seeded.UpdatedAt = time.Now().UTC()
	_, err := repo.Update(ctx, seeded)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
