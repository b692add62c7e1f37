package projects_interfaces

import (
	"context"

	"teamsync/internal/features/roles"

	"github.com/google/uuid"
)

// WorkspaceRoleResolver returns nil when the user is not an active member of
// the workspace.
type WorkspaceRoleResolver interface {
	GetUserWorkspaceRole(ctx context.Context, workspaceID, userID uuid.UUID) (*roles.WorkspaceRole, error)
}
