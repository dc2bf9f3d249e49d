package access

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamhub-dev/teamhub-backend/internal/domain"
)

type mockMemberDirectory struct {
	GetByWorkspaceAndUserFunc func(ctx context.Context, workspaceID, userID uuid.UUID) (domain.Member, error)
}

func (m *mockMemberDirectory) GetByWorkspaceAndUser(ctx context.Context, workspaceID, userID uuid.UUID) (domain.Member, error) {
	if m.GetByWorkspaceAndUserFunc != nil {
		return m.GetByWorkspaceAndUserFunc(ctx, workspaceID, userID)
	}
	return domain.Member{}, domain.ErrNotFound
}

func memberWith(role domain.Role) *mockMemberDirectory {
	return &mockMemberDirectory{
		GetByWorkspaceAndUserFunc: func(_ context.Context, workspaceID, userID uuid.UUID) (domain.Member, error) {
			return domain.Member{
				ID:          uuid.New(),
				WorkspaceID: workspaceID,
				UserID:      userID,
				Role:        role,
			}, nil
		},
	}
}

func TestAuthorize_Allowed(t *testing.T) {
	t.Parallel()

	guard := NewGuard(slog.Default(), memberWith(domain.RoleAdmin))

	member, err := guard.Authorize(context.Background(), uuid.New(), uuid.New(), domain.CapManageProjects)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, domain.RoleAdmin, member.Role)
}

func TestAuthorize_InsufficientRole(t *testing.T) {
	t.Parallel()

	guard := NewGuard(slog.Default(), memberWith(domain.RoleViewer))

	_, err := guard.Authorize(context.Background(), uuid.New(), uuid.New(), domain.CapEditTasks)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	var denied *domain.AccessDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, domain.CapEditTasks, denied.Capability)
}

func TestAuthorize_NoMembership_PlainDenied(t *testing.T) {
	t.Parallel()

	guard := NewGuard(slog.Default(), &mockMemberDirectory{})

	_, err := guard.Authorize(context.Background(), uuid.New(), uuid.New(), domain.CapEditTasks)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	// A bare membership miss must not leak which capability was asked for.
	var denied *domain.AccessDeniedError
	assert.False(t, errors.As(err, &denied))
	// And it must not surface as ErrNotFound.
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

func TestAuthorize_RepoErrorPassesThrough(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")
	guard := NewGuard(slog.Default(), &mockMemberDirectory{
		GetByWorkspaceAndUserFunc: func(context.Context, uuid.UUID, uuid.UUID) (domain.Member, error) {
			return domain.Member{}, boom
		},
	})

	_, err := guard.Authorize(context.Background(), uuid.New(), uuid.New(), domain.CapIsOwner)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, domain.ErrAccessDenied))
}

func TestMember_AnyRolePasses(t *testing.T) {
	t.Parallel()

	guard := NewGuard(slog.Default(), memberWith(domain.RoleViewer))

	member, err := guard.Member(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, domain.RoleViewer, member.Role)
}

func TestMember_NoMembershipDenied(t *testing.T) {
	t.Parallel()

	guard := NewGuard(slog.Default(), &mockMemberDirectory{})

	_, err := guard.Member(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestAuthorize_OwnerCapabilityPerRole(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		role    domain.Role
		allowed bool
	}{
		{domain.RoleOwner, true},
		{domain.RoleAdmin, false},
		{domain.RoleMember, false},
		{domain.RoleViewer, false},
	} {
		t.Run(tc.role.String(), func(t *testing.T) {
			t.Parallel()

			guard := NewGuard(slog.Default(), memberWith(tc.role))
			_, err := guard.Authorize(context.Background(), uuid.New(), uuid.New(), domain.CapIsOwner)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrAccessDenied)
			}
		})
	}
}
