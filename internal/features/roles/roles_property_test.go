package roles

import (
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func genWorkspaceRole() gopter.Gen {
	return gen.OneConstOf(
		WorkspaceRoleOwner,
		WorkspaceRoleAdmin,
		WorkspaceRoleMember,
		WorkspaceRoleViewer,
	)
}

func genProjectRole() gopter.Gen {
	return gen.OneConstOf(ProjectRoleAdmin, ProjectRoleMember, ProjectRoleViewer)
}

func genPermission() gopter.Gen {
	all := append(slices.Clone(allWorkspacePermissions), allProjectPermissions...)
	values := make([]interface{}, len(all))
	for i, permission := range all {
		values[i] = permission
	}

	return gen.OneConstOf(values...)
}

func workspacePermissionsOf(role WorkspaceRole) []Permission {
	for _, definition := range WorkspaceRoles() {
		if definition.ID == role {
			return definition.Permissions
		}
	}
	return nil
}

func projectPermissionsOf(role ProjectRole) []Permission {
	for _, definition := range ProjectRoles() {
		if definition.ID == role {
			return definition.Permissions
		}
	}
	return nil
}

func TestRolePermissionProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("workspace permission check matches the role table", prop.ForAll(
		func(role WorkspaceRole, permission Permission) bool {
			return HasWorkspacePermission(role, permission) ==
				slices.Contains(workspacePermissionsOf(role), permission)
		},
		genWorkspaceRole(),
		genPermission(),
	))

	properties.Property("project permission check matches the role table", prop.ForAll(
		func(role ProjectRole, permission Permission) bool {
			return HasProjectPermission(role, permission) ==
				slices.Contains(projectPermissionsOf(role), permission)
		},
		genProjectRole(),
		genPermission(),
	))

	properties.Property("higher workspace levels keep lower level permissions", prop.ForAll(
		func(a, b WorkspaceRole, permission Permission) bool {
			if a.Level() > b.Level() {
				a, b = b, a
			}
			return !HasWorkspacePermission(a, permission) || HasWorkspacePermission(b, permission)
		},
		genWorkspaceRole(),
		genWorkspaceRole(),
		genPermission(),
	))

	properties.Property("higher project levels keep lower level permissions", prop.ForAll(
		func(a, b ProjectRole, permission Permission) bool {
			if a.Level() > b.Level() {
				a, b = b, a
			}
			return !HasProjectPermission(a, permission) || HasProjectPermission(b, permission)
		},
		genProjectRole(),
		genProjectRole(),
		genPermission(),
	))

	properties.Property("workspace and project permissions are disjoint", prop.ForAll(
		func(workspaceRole WorkspaceRole, projectRole ProjectRole, permission Permission) bool {
			return !(HasWorkspacePermission(workspaceRole, permission) &&
				HasProjectPermission(projectRole, permission))
		},
		genWorkspaceRole(),
		genProjectRole(),
		genPermission(),
	))

	properties.Property("unknown roles have no permissions", prop.ForAll(
		func(name string, permission Permission) bool {
			role := WorkspaceRole(name)
			if role.IsValid() {
				return true
			}
			return !HasWorkspacePermission(role, permission) && role.Level() == 0
		},
		gen.AnyString(),
		genPermission(),
	))

	properties.TestingRun(t)
}
