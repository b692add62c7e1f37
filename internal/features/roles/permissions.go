package roles

// Permission is an atomic capability checked against a role's permission set.
// Workspace and project permissions never overlap.
type Permission string

// Workspace permissions.
const (
	PermissionWorkspaceView   Permission = "workspace:view"
	PermissionWorkspaceEdit   Permission = "workspace:edit"
	PermissionWorkspaceDelete Permission = "workspace:delete"

	PermissionProjectsView   Permission = "projects:view"
	PermissionProjectsCreate Permission = "projects:create"
	PermissionProjectsDelete Permission = "projects:delete"

	PermissionMembersView      Permission = "members:view"
	PermissionMembersInvite    Permission = "members:invite"
	PermissionMembersEditRoles Permission = "members:edit_roles"
)

// Project permissions.
const (
	PermissionProjectView   Permission = "project:view"
	PermissionProjectEdit   Permission = "project:edit"
	PermissionProjectDelete Permission = "project:delete"

	PermissionProjectTasksView   Permission = "project:tasks:view"
	PermissionProjectTasksCreate Permission = "project:tasks:create"
	PermissionProjectTasksEdit   Permission = "project:tasks:edit"
	PermissionProjectTasksDelete Permission = "project:tasks:delete"

	PermissionProjectMilestonesView   Permission = "project:milestones:view"
	PermissionProjectMilestonesManage Permission = "project:milestones:manage"

	PermissionProjectCommentsCreate    Permission = "project:comments:create"
	PermissionProjectTimeEntriesCreate Permission = "project:time_entries:create"

	PermissionProjectMembersView      Permission = "project:members:view"
	PermissionProjectMembersInvite    Permission = "project:members:invite"
	PermissionProjectMembersEditRoles Permission = "project:members:edit_roles"
)
