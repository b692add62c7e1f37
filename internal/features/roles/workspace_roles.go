package roles

type WorkspaceRole string

const (
	WorkspaceRoleOwner  WorkspaceRole = "owner"
	WorkspaceRoleAdmin  WorkspaceRole = "admin"
	WorkspaceRoleMember WorkspaceRole = "member"
	WorkspaceRoleViewer WorkspaceRole = "viewer"
)

var workspaceRoles = newTable(
	Definition[WorkspaceRole]{
		ID:          WorkspaceRoleOwner,
		Name:        "Owner",
		Description: "Full control over the workspace, including deleting it",
		Level:       4,
		Permissions: []Permission{
			PermissionWorkspaceView,
			PermissionWorkspaceEdit,
			PermissionWorkspaceDelete,
			PermissionProjectsView,
			PermissionProjectsCreate,
			PermissionProjectsDelete,
			PermissionMembersView,
			PermissionMembersInvite,
			PermissionMembersEditRoles,
		},
	},
	Definition[WorkspaceRole]{
		ID:          WorkspaceRoleAdmin,
		Name:        "Admin",
		Description: "Manages projects and members",
		Level:       3,
		Permissions: []Permission{
			PermissionWorkspaceView,
			PermissionWorkspaceEdit,
			PermissionProjectsView,
			PermissionProjectsCreate,
			PermissionProjectsDelete,
			PermissionMembersView,
			PermissionMembersInvite,
			PermissionMembersEditRoles,
		},
	},
	Definition[WorkspaceRole]{
		ID:          WorkspaceRoleMember,
		Name:        "Member",
		Description: "Creates and works on projects",
		Level:       2,
		Permissions: []Permission{
			PermissionWorkspaceView,
			PermissionProjectsView,
			PermissionProjectsCreate,
			PermissionMembersView,
		},
	},
	Definition[WorkspaceRole]{
		ID:          WorkspaceRoleViewer,
		Name:        "Viewer",
		Description: "Read-only access",
		Level:       1,
		Permissions: []Permission{
			PermissionWorkspaceView,
			PermissionProjectsView,
			PermissionMembersView,
		},
	},
)

// WorkspaceRoles lists workspace role definitions, highest level first.
func WorkspaceRoles() []Definition[WorkspaceRole] {
	return workspaceRoles.definitions()
}

func HasWorkspacePermission(role WorkspaceRole, permission Permission) bool {
	return workspaceRoles.has(role, permission)
}

func CanCreateProject(role WorkspaceRole) bool {
	return HasWorkspacePermission(role, PermissionProjectsCreate)
}

func (r WorkspaceRole) IsValid() bool {
	return workspaceRoles.isValid(r)
}

// Level is 0 for unknown roles.
func (r WorkspaceRole) Level() int {
	return workspaceRoles.level(r)
}

func (r WorkspaceRole) HasPermission(permission Permission) bool {
	return HasWorkspacePermission(r, permission)
}

func (r WorkspaceRole) CanViewMembers() bool {
	return r.HasPermission(PermissionMembersView)
}

func (r WorkspaceRole) CanInviteMembers() bool {
	return r.HasPermission(PermissionMembersInvite)
}

func (r WorkspaceRole) CanManageMembers() bool {
	return r.HasPermission(PermissionMembersEditRoles)
}

func (r WorkspaceRole) IsTop() bool {
	return r == workspaceRoles.top
}
