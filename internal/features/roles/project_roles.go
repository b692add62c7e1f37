package roles

type ProjectRole string

const (
	ProjectRoleAdmin  ProjectRole = "admin"
	ProjectRoleMember ProjectRole = "member"
	ProjectRoleViewer ProjectRole = "viewer"
)

var projectRoles = newTable(
	Definition[ProjectRole]{
		ID:          ProjectRoleAdmin,
		Name:        "Project admin",
		Description: "Full control over the project and its team",
		Level:       3,
		Permissions: []Permission{
			PermissionProjectView,
			PermissionProjectEdit,
			PermissionProjectDelete,
			PermissionProjectTasksView,
			PermissionProjectTasksCreate,
			PermissionProjectTasksEdit,
			PermissionProjectTasksDelete,
			PermissionProjectMilestonesView,
			PermissionProjectMilestonesManage,
			PermissionProjectCommentsCreate,
			PermissionProjectTimeEntriesCreate,
			PermissionProjectMembersView,
			PermissionProjectMembersInvite,
			PermissionProjectMembersEditRoles,
		},
	},
	Definition[ProjectRole]{
		ID:          ProjectRoleMember,
		Name:        "Project member",
		Description: "Works on tasks, comments and tracks time",
		Level:       2,
		Permissions: []Permission{
			PermissionProjectView,
			PermissionProjectTasksView,
			PermissionProjectTasksCreate,
			PermissionProjectTasksEdit,
			PermissionProjectMilestonesView,
			PermissionProjectCommentsCreate,
			PermissionProjectTimeEntriesCreate,
			PermissionProjectMembersView,
		},
	},
	Definition[ProjectRole]{
		ID:          ProjectRoleViewer,
		Name:        "Project viewer",
		Description: "Read-only access to the project",
		Level:       1,
		Permissions: []Permission{
			PermissionProjectView,
			PermissionProjectTasksView,
			PermissionProjectMilestonesView,
			PermissionProjectMembersView,
		},
	},
)

// ProjectRoles lists project role definitions, highest level first.
func ProjectRoles() []Definition[ProjectRole] {
	return projectRoles.definitions()
}

func HasProjectPermission(role ProjectRole, permission Permission) bool {
	return projectRoles.has(role, permission)
}

func (r ProjectRole) IsValid() bool {
	return projectRoles.isValid(r)
}

func (r ProjectRole) Level() int {
	return projectRoles.level(r)
}

func (r ProjectRole) HasPermission(permission Permission) bool {
	return HasProjectPermission(r, permission)
}

func (r ProjectRole) CanViewMembers() bool {
	return r.HasPermission(PermissionProjectMembersView)
}

func (r ProjectRole) CanInviteMembers() bool {
	return r.HasPermission(PermissionProjectMembersInvite)
}

func (r ProjectRole) CanManageMembers() bool {
	return r.HasPermission(PermissionProjectMembersEditRoles)
}

func (r ProjectRole) IsTop() bool {
	return r == projectRoles.top
}
