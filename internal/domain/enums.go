package domain

// TaskStatus is the kanban column a task sits in.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusReview     TaskStatus = "REVIEW"
	TaskStatusDone       TaskStatus = "DONE"
)

func (s TaskStatus) String() string { return string(s) }

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone:
		return true
	}
	return false
}

// TaskPriority is the urgency assigned to a task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
	TaskPriorityUrgent TaskPriority = "URGENT"
)

func (p TaskPriority) String() string { return string(p) }

func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// ActivityType classifies an activity log entry.
type ActivityType string

const (
	ActivityWorkspaceCreated  ActivityType = "WORKSPACE_CREATED"
	ActivityWorkspaceUpdated  ActivityType = "WORKSPACE_UPDATED"
	ActivityWorkspaceDeleted  ActivityType = "WORKSPACE_DELETED"
	ActivityMemberInvited     ActivityType = "MEMBER_INVITED"
	ActivityMemberRemoved     ActivityType = "MEMBER_REMOVED"
	ActivityProjectCreated    ActivityType = "PROJECT_CREATED"
	ActivityProjectUpdated    ActivityType = "PROJECT_UPDATED"
	ActivityProjectDeleted    ActivityType = "PROJECT_DELETED"
	ActivityProjectRestored   ActivityType = "PROJECT_RESTORED"
	ActivityTaskCreated       ActivityType = "TASK_CREATED"
	ActivityTaskUpdated       ActivityType = "TASK_UPDATED"
	ActivityTaskDeleted       ActivityType = "TASK_DELETED"
	ActivityTaskRestored      ActivityType = "TASK_RESTORED"
	ActivityTaskStatusChanged ActivityType = "TASK_STATUS_CHANGED"
	ActivityTaskAssigned      ActivityType = "TASK_ASSIGNED"
	ActivityCommentAdded      ActivityType = "COMMENT_ADDED"
)

func (a ActivityType) String() string { return string(a) }

func (a ActivityType) IsValid() bool {
	switch a {
	case ActivityWorkspaceCreated, ActivityWorkspaceUpdated, ActivityWorkspaceDeleted,
		ActivityMemberInvited, ActivityMemberRemoved,
		ActivityProjectCreated, ActivityProjectUpdated, ActivityProjectDeleted, ActivityProjectRestored,
		ActivityTaskCreated, ActivityTaskUpdated, ActivityTaskDeleted, ActivityTaskRestored,
		ActivityTaskStatusChanged, ActivityTaskAssigned,
		ActivityCommentAdded:
		return true
	}
	return false
}

// TargetType identifies the kind of entity an activity or notification
// points at.
type TargetType string

const (
	TargetWorkspace TargetType = "WORKSPACE"
	TargetProject   TargetType = "PROJECT"
	TargetTask      TargetType = "TASK"
	TargetMember    TargetType = "MEMBER"
)

func (t TargetType) String() string { return string(t) }

func (t TargetType) IsValid() bool {
	switch t {
	case TargetWorkspace, TargetProject, TargetTask, TargetMember:
		return true
	}
	return false
}

// NotificationType classifies a notification.
type NotificationType string

const (
	NotificationTaskAssigned      NotificationType = "TASK_ASSIGNED"
	NotificationTaskStatusChanged NotificationType = "TASK_STATUS_CHANGED"
	NotificationCommentAdded      NotificationType = "COMMENT_ADDED"
	NotificationMemberInvited     NotificationType = "MEMBER_INVITED"
	NotificationDueDateReminder   NotificationType = "DUE_DATE_REMINDER"
)

func (n NotificationType) String() string { return string(n) }

func (n NotificationType) IsValid() bool {
	switch n {
	case NotificationTaskAssigned, NotificationTaskStatusChanged,
		NotificationCommentAdded, NotificationMemberInvited,
		NotificationDueDateReminder:
		return true
	}
	return false
}
