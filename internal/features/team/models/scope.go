package team_models

import "strings"

// ScopeKind describes where a team lives: tables, token prefix and display name.
type ScopeKind struct {
	Name         string
	MembersTable string
	InvitesTable string
	TokenPrefix  string
}

var (
	WorkspaceScope = ScopeKind{
		Name:         "workspace",
		MembersTable: "workspace_members",
		InvitesTable: "workspace_invites",
		TokenPrefix:  "wsi_",
	}

	ProjectScope = ScopeKind{
		Name:         "project",
		MembersTable: "project_members",
		InvitesTable: "project_invites",
		TokenPrefix:  "pji_",
	}
)

func (k ScopeKind) OwnsToken(token string) bool {
	return strings.HasPrefix(token, k.TokenPrefix)
}
