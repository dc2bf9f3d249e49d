package domain

// Role is a member's authorization tier within a workspace.
// Privilege is totally ordered: OWNER > ADMIN > MEMBER > VIEWER.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
	RoleViewer Role = "VIEWER"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember, RoleViewer:
		return true
	}
	return false
}

// Capability is an action class gated by the role matrix.
type Capability string

const (
	CapManageMembers  Capability = "MANAGE_MEMBERS"
	CapManageProjects Capability = "MANAGE_PROJECTS"
	CapEditTasks      Capability = "EDIT_TASKS"
	CapIsOwner        Capability = "IS_OWNER"
)

func (c Capability) String() string { return string(c) }

func (c Capability) IsValid() bool {
	switch c {
	case CapManageMembers, CapManageProjects, CapEditTasks, CapIsOwner:
		return true
	}
	return false
}

// Can reports whether the role grants the capability. Pure and stateless:
// callers must re-evaluate per request, since a member's role can change
// between calls.
func (r Role) Can(cap Capability) bool {
	switch cap {
	case CapManageMembers, CapManageProjects:
		return r == RoleOwner || r == RoleAdmin
	case CapEditTasks:
		return r == RoleOwner || r == RoleAdmin || r == RoleMember
	case CapIsOwner:
		return r == RoleOwner
	}
	return false
}
