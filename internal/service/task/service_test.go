package task

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamhub-dev/teamhub-backend/internal/domain"
	"github.com/teamhub-dev/teamhub-backend/pkg/ctxutil"
)

type mockTaskRepo struct {
	CreateFunc         func(ctx context.Context, t domain.Task) (domain.Task, error)
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (domain.Task, error)
	UpdateFunc         func(ctx context.Context, t domain.Task) (domain.Task, error)
	ListByProjectFunc  func(ctx context.Context, projectID uuid.UUID, status *domain.TaskStatus) ([]domain.Task, error)
	ListByAssigneeFunc func(ctx context.Context, workspaceID, userID uuid.UUID) ([]domain.Task, error)
	ReorderFunc        func(ctx context.Context, projectID uuid.UUID, orderedIDs []uuid.UUID, at time.Time) error
	SoftDeleteFunc     func(ctx context.Context, id uuid.UUID, at time.Time) error

	Updated []domain.Task
}

func (m *mockTaskRepo) Create(ctx context.Context, t domain.Task) (domain.Task, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return t, nil
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Task, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return domain.Task{ID: id, ProjectID: uuid.New(), Title: "Task", Status: domain.TaskStatusTodo, Priority: domain.TaskPriorityMedium, CreatorID: uuid.New()}, nil
}

func (m *mockTaskRepo) Update(ctx context.Context, t domain.Task) (domain.Task, error) {
	m.Updated = append(m.Updated, t)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return t, nil
}

func (m *mockTaskRepo) ListByProject(ctx context.Context, projectID uuid.UUID, status *domain.TaskStatus) ([]domain.Task, error) {
	if m.ListByProjectFunc != nil {
		return m.ListByProjectFunc(ctx, projectID, status)
	}
	return nil, nil
}

func (m *mockTaskRepo) ListByAssignee(ctx context.Context, workspaceID, userID uuid.UUID) ([]domain.Task, error) {
	if m.ListByAssigneeFunc != nil {
		return m.ListByAssigneeFunc(ctx, workspaceID, userID)
	}
	return nil, nil
}

func (m *mockTaskRepo) Reorder(ctx context.Context, projectID uuid.UUID, orderedIDs []uuid.UUID, at time.Time) error {
	if m.ReorderFunc != nil {
		return m.ReorderFunc(ctx, projectID, orderedIDs, at)
	}
	return nil
}

func (m *mockTaskRepo) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, id, at)
	}
	return nil
}

type mockProjectReader struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (domain.Project, error)
}

func (m *mockProjectReader) GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return domain.Project{ID: id, WorkspaceID: uuid.New(), Name: "Project"}, nil
}

type mockCommentRepo struct {
	CreateFunc     func(ctx context.Context, c domain.Comment) (domain.Comment, error)
	ListByTaskFunc func(ctx context.Context, taskID uuid.UUID) ([]domain.Comment, error)
}

func (m *mockCommentRepo) Create(ctx context.Context, c domain.Comment) (domain.Comment, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return c, nil
}

func (m *mockCommentRepo) ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.Comment, error) {
	if m.ListByTaskFunc != nil {
		return m.ListByTaskFunc(ctx, taskID)
	}
	return nil, nil
}

type mockGuard struct {
	AuthorizeFunc func(ctx context.Context, userID, workspaceID uuid.UUID, cap domain.Capability) (*domain.Member, error)
	MemberFunc    func(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.Member, error)
}

func (m *mockGuard) Authorize(ctx context.Context, userID, workspaceID uuid.UUID, cap domain.Capability) (*domain.Member, error) {
	if m.AuthorizeFunc != nil {
		return m.AuthorizeFunc(ctx, userID, workspaceID, cap)
	}
	return &domain.Member{UserID: userID, WorkspaceID: workspaceID, Role: domain.RoleMember}, nil
}

func (m *mockGuard) Member(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.Member, error) {
	if m.MemberFunc != nil {
		return m.MemberFunc(ctx, userID, workspaceID)
	}
	return &domain.Member{UserID: userID, WorkspaceID: workspaceID, Role: domain.RoleMember}, nil
}

type mockRecorder struct {
	RecordFunc func(ctx context.Context, a domain.Activity) error
	Recorded   []domain.Activity
}

func (m *mockRecorder) Record(ctx context.Context, a domain.Activity) error {
	m.Recorded = append(m.Recorded, a)
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, a)
	}
	return nil
}

type mockNotifier struct {
	DispatchFunc func(ctx context.Context, n domain.Notification) (*domain.Notification, domain.PushResult, error)
	Dispatched   []domain.Notification
}

func (m *mockNotifier) Dispatch(ctx context.Context, n domain.Notification) (*domain.Notification, domain.PushResult, error) {
	m.Dispatched = append(m.Dispatched, n)
	if m.DispatchFunc != nil {
		return m.DispatchFunc(ctx, n)
	}
	return &n, domain.PushDelivered(), nil
}

type mockTxManager struct{}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type deps struct {
	tasks    *mockTaskRepo
	projects *mockProjectReader
	comments *mockCommentRepo
	guard    *mockGuard
	recorder *mockRecorder
	notifier *mockNotifier
}

func defaultDeps() *deps {
	return &deps{
		tasks:    &mockTaskRepo{},
		projects: &mockProjectReader{},
		comments: &mockCommentRepo{},
		guard:    &mockGuard{},
		recorder: &mockRecorder{},
		notifier: &mockNotifier{},
	}
}

func newTestService(d *deps) *Service {
	return NewService(slog.Default(), d.tasks, d.projects, d.comments, d.guard, d.recorder, d.notifier, &mockTxManager{})
}

func actorCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithUserID(context.Background(), userID)
}

// fixture wires a task whose parent project resolves to a fixed workspace.
func fixture(d *deps, t domain.Task, workspaceID uuid.UUID) {
	d.tasks.GetByIDFunc = func(_ context.Context, id uuid.UUID) (domain.Task, error) {
		tt := t
		tt.ID = id
		return tt, nil
	}
	d.projects.GetByIDFunc = func(_ context.Context, id uuid.UUID) (domain.Project, error) {
		return domain.Project{ID: id, WorkspaceID: workspaceID, Name: "Project"}, nil
	}
}

func TestCreate_DefaultsAndOrder(t *testing.T) {
	t.Parallel()

	d := defaultDeps()
	d.tasks.ListByProjectFunc = func(context.Context, uuid.UUID, *domain.TaskStatus) ([]domain.Task, error) {
		return make([]domain.Task, 3), nil
	}

	svc := newTestService(d)
	actor := uuid.New()
	created, err := svc.Create(actorCtx(actor), CreateInput{ProjectID: uuid.New(), Title: " Ship it "})
	require.NoError(t, err)

	assert.Equal(t, "Ship it", created.Title)
	assert.Equal(t, domain.TaskStatusTodo, created.Status)
	assert.Equal(t, domain.TaskPriorityMedium, created.Priority)
	assert.Equal(t, 3, created.DisplayOrder)
	assert.Equal(t, actor, created.CreatorID)

	require.Len(t, d.recorder.Recorded, 1)
	assert.Equal(t, domain.ActivityTaskCreated, d.recorder.Recorded[0].Type)
	assert.Empty(t, d.notifier.Dispatched)
}

func TestCreate_NotifiesAssignee(t *testing.T) {
	t.Parallel()

	d := defaultDeps()
	svc := newTestService(d)

	actor := uuid.New()
	assignee := uuid.New()
	_, err := svc.Create(actorCtx(actor), CreateInput{ProjectID: uuid.New(), Title: "Ship it", AssigneeID: &assignee})
	require.NoError(t, err)

	require.Len(t, d.notifier.Dispatched, 1)
	n := d.notifier.Dispatched[0]
	assert.Equal(t, domain.NotificationTaskAssigned, n.Type)
	assert.Equal(t, assignee, n.RecipientID)
	require.NotNil(t, n.SenderID)
	assert.Equal(t, actor, *n.SenderID)
}

func TestCreate_SelfAssignmentIsSilent(t *testing.T) {
	t.Parallel()

	d := defaultDeps()
	svc := newTestService(d)

	actor := uuid.New()
	_, err := svc.Create(actorCtx(actor), CreateInput{ProjectID: uuid.New(), Title: "Ship it", AssigneeID: &actor})
	require.NoError(t, err)

	assert.Empty(t, d.notifier.Dispatched)
}

func TestCreate_AssigneeMustBeMember(t *testing.T) {
	t.Parallel()

	d := defaultDeps()
	outsider := uuid.New()
	d.guard.MemberFunc = func(_ context.Context, userID, workspaceID uuid.UUID) (*domain.Member, error) {
		if userID == outsider {
			return nil, domain.ErrAccessDenied
		}
		return &domain.Member{UserID: userID, WorkspaceID: workspaceID, Role: domain.RoleMember}, nil
	}

	svc := newTestService(d)
	_, err := svc.Create(actorCtx(uuid.New()), CreateInput{ProjectID: uuid.New(), Title: "Ship it", AssigneeID: &outsider})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreate_ViewerDenied(t *testing.T) {
	t.Parallel()

	d := defaultDeps()
	d.guard.AuthorizeFunc = func(_ context.Context, _, _ uuid.UUID, cap domain.Capability) (*domain.Member, error) {
		assert.Equal(t, domain.CapEditTasks, cap)
		return nil, domain.NewAccessDeniedError(cap)
	}

	svc := newTestService(d)
	_, err := svc.Create(actorCtx(uuid.New()), CreateInput{ProjectID: uuid.New(), Title: "Ship it"})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestUpdate_StatusChangeNotifiesCreator(t *testing.T) {
	t.Parallel()

	creator := uuid.New()
	actor := uuid.New()
	d := defaultDeps()
	fixture(d, domain.Task{
		ProjectID: uuid.New(),
		Title:     "Ship it",
		Status:    domain.TaskStatusTodo,
		Priority:  domain.TaskPriorityMedium,
		CreatorID: creator,
	}, uuid.New())

	svc := newTestService(d)
	_, err := svc.Update(actorCtx(actor), UpdateInput{
		TaskID:   uuid.New(),
		Title:    "Ship it",
		Status:   domain.TaskStatusDone,
		Priority: domain.TaskPriorityMedium,
	})
	require.NoError(t, err)

	require.Len(t, d.notifier.Dispatched, 1)
	n := d.notifier.Dispatched[0]
	assert.Equal(t, domain.NotificationTaskStatusChanged, n.Type)
	assert.Equal(t, creator, n.RecipientID)
}

func TestUpdate_CreatorActorNotNotified(t *testing.T) {
	t.Parallel()

	creator := uuid.New()
	d := defaultDeps()
	fixture(d, domain.Task{
		ProjectID: uuid.New(),
		Title:     "Ship it",
		Status:    domain.TaskStatusTodo,
		Priority:  domain.TaskPriorityMedium,
		CreatorID: creator,
	}, uuid.New())

	svc := newTestService(d)
	_, err := svc.Update(actorCtx(creator), UpdateInput{
		TaskID:   uuid.New(),
		Title:    "Ship it",
		Status:   domain.TaskStatusDone,
		Priority: domain.TaskPriorityMedium,
	})
	require.NoError(t, err)

	assert.Empty(t, d.notifier.Dispatched)
}

func TestUpdate_UnchangedAssigneeNotRenotified(t *testing.T) {
	t.Parallel()

	assignee := uuid.New()
	d := defaultDeps()
	fixture(d, domain.Task{
		ProjectID:  uuid.New(),
		Title:      "Ship it",
		Status:     domain.TaskStatusTodo,
		Priority:   domain.TaskPriorityMedium,
		AssigneeID: &assignee,
		CreatorID:  uuid.New(),
	}, uuid.New())

	svc := newTestService(d)
	creatorActorCtx := actorCtx(uuid.New())
	_, err := svc.Update(creatorActorCtx, UpdateInput{
		TaskID:     uuid.New(),
		Title:      "Ship it",
		Status:     domain.TaskStatusTodo,
		Priority:   domain.TaskPriorityMedium,
		AssigneeID: &assignee,
	})
	require.NoError(t, err)

	for _, n := range d.notifier.Dispatched {
		assert.NotEqual(t, domain.NotificationTaskAssigned, n.Type)
	}
}

func TestChangeStatus_RecordsTransition(t *testing.T) {
	t.Parallel()

	d := defaultDeps()
	fixture(d, domain.Task{
		ProjectID: uuid.New(),
		Title:     "Ship it",
		Status:    domain.TaskStatusInProgress,
		Priority:  domain.TaskPriorityMedium,
		CreatorID: uuid.New(),
	}, uuid.New())

	svc := newTestService(d)
	updated, err := svc.ChangeStatus(actorCtx(uuid.New()), uuid.New(), domain.TaskStatusReview)
	require.NoError(t, err)

	assert.Equal(t, domain.TaskStatusReview, updated.Status)
	require.Len(t, d.recorder.Recorded, 1)
	assert.Equal(t, domain.ActivityTaskStatusChanged, d.recorder.Recorded[0].Type)
	assert.Equal(t, "IN_PROGRESS → REVIEW", d.recorder.Recorded[0].Details)
}

func TestChangeStatus_SameStatusIsNoop(t *testing.T) {
	t.Parallel()

	d := defaultDeps()
	fixture(d, domain.Task{
		ProjectID: uuid.New(),
		Title:     "Ship it",
		Status:    domain.TaskStatusDone,
		Priority:  domain.TaskPriorityMedium,
		CreatorID: uuid.New(),
	}, uuid.New())

	svc := newTestService(d)
	_, err := svc.ChangeStatus(actorCtx(uuid.New()), uuid.New(), domain.TaskStatusDone)
	require.NoError(t, err)

	assert.Empty(t, d.tasks.Updated)
	assert.Empty(t, d.recorder.Recorded)
	assert.Empty(t, d.notifier.Dispatched)
}

func TestAssign_SameAssigneeIsNoop(t *testing.T) {
	t.Parallel()

	assignee := uuid.New()
	d := defaultDeps()
	fixture(d, domain.Task{
		ProjectID:  uuid.New(),
		Title:      "Ship it",
		Status:     domain.TaskStatusTodo,
		Priority:   domain.TaskPriorityMedium,
		AssigneeID: &assignee,
		CreatorID:  uuid.New(),
	}, uuid.New())

	svc := newTestService(d)
	_, err := svc.Assign(actorCtx(uuid.New()), uuid.New(), &assignee)
	require.NoError(t, err)

	assert.Empty(t, d.tasks.Updated)
	assert.Empty(t, d.notifier.Dispatched)
}

func TestAssign_NewAssigneeNotified(t *testing.T) {
	t.Parallel()

	d := defaultDeps()
	fixture(d, domain.Task{
		ProjectID: uuid.New(),
		Title:     "Ship it",
		Status:    domain.TaskStatusTodo,
		Priority:  domain.TaskPriorityMedium,
		CreatorID: uuid.New(),
	}, uuid.New())

	svc := newTestService(d)
	assignee := uuid.New()
	updated, err := svc.Assign(actorCtx(uuid.New()), uuid.New(), &assignee)
	require.NoError(t, err)

	require.NotNil(t, updated.AssigneeID)
	assert.Equal(t, assignee, *updated.AssigneeID)

	require.Len(t, d.notifier.Dispatched, 1)
	assert.Equal(t, domain.NotificationTaskAssigned, d.notifier.Dispatched[0].Type)
	assert.Equal(t, assignee, d.notifier.Dispatched[0].RecipientID)
}

func TestDelete_SoftDeletesAndRecords(t *testing.T) {
	t.Parallel()

	d := defaultDeps()
	fixture(d, domain.Task{
		ProjectID: uuid.New(),
		Title:     "Ship it",
		Status:    domain.TaskStatusTodo,
		Priority:  domain.TaskPriorityMedium,
		CreatorID: uuid.New(),
	}, uuid.New())

	var deleted bool
	d.tasks.SoftDeleteFunc = func(context.Context, uuid.UUID, time.Time) error {
		deleted = true
		return nil
	}

	svc := newTestService(d)
	require.NoError(t, svc.Delete(actorCtx(uuid.New()), uuid.New()))

	assert.True(t, deleted)
	require.Len(t, d.recorder.Recorded, 1)
	assert.Equal(t, domain.ActivityTaskDeleted, d.recorder.Recorded[0].Type)
}

func TestAddComment_TruncatesDetails(t *testing.T) {
	t.Parallel()

	d := defaultDeps()
	fixture(d, domain.Task{
		ProjectID: uuid.New(),
		Title:     "Ship it",
		Status:    domain.TaskStatusTodo,
		Priority:  domain.TaskPriorityMedium,
		CreatorID: uuid.New(),
	}, uuid.New())

	svc := newTestService(d)
	long := strings.Repeat("я", 80)
	_, err := svc.AddComment(actorCtx(uuid.New()), AddCommentInput{TaskID: uuid.New(), Content: long})
	require.NoError(t, err)

	require.Len(t, d.recorder.Recorded, 1)
	details := d.recorder.Recorded[0].Details
	assert.Equal(t, strings.Repeat("я", 50)+"...", details)
}

func TestAddComment_NotifiesAssignee(t *testing.T) {
	t.Parallel()

	assignee := uuid.New()
	d := defaultDeps()
	fixture(d, domain.Task{
		ProjectID:  uuid.New(),
		Title:      "Ship it",
		Status:     domain.TaskStatusTodo,
		Priority:   domain.TaskPriorityMedium,
		AssigneeID: &assignee,
		CreatorID:  uuid.New(),
	}, uuid.New())

	svc := newTestService(d)
	_, err := svc.AddComment(actorCtx(uuid.New()), AddCommentInput{TaskID: uuid.New(), Content: "nice"})
	require.NoError(t, err)

	require.Len(t, d.notifier.Dispatched, 1)
	assert.Equal(t, domain.NotificationCommentAdded, d.notifier.Dispatched[0].Type)
	assert.Equal(t, assignee, d.notifier.Dispatched[0].RecipientID)
}

func TestAddComment_AssigneeCommenterIsSilent(t *testing.T) {
	t.Parallel()

	assignee := uuid.New()
	d := defaultDeps()
	fixture(d, domain.Task{
		ProjectID:  uuid.New(),
		Title:      "Ship it",
		Status:     domain.TaskStatusTodo,
		Priority:   domain.TaskPriorityMedium,
		AssigneeID: &assignee,
		CreatorID:  uuid.New(),
	}, uuid.New())

	svc := newTestService(d)
	_, err := svc.AddComment(actorCtx(assignee), AddCommentInput{TaskID: uuid.New(), Content: "on it"})
	require.NoError(t, err)

	assert.Empty(t, d.notifier.Dispatched)
}

func TestListByProject_InvalidStatusFilter(t *testing.T) {
	t.Parallel()

	svc := newTestService(defaultDeps())
	bad := domain.TaskStatus("ARCHIVED")
	_, err := svc.ListByProject(actorCtx(uuid.New()), uuid.New(), &bad)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
