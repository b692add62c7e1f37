package tasks_interfaces

import (
	"context"

	"teamsync/internal/features/roles"

	"github.com/google/uuid"
)

// ProjectRoleResolver returns nil when the user is not an active member of
// the project.
type ProjectRoleResolver interface {
	GetUserProjectRole(ctx context.Context, projectID, userID uuid.UUID) (*roles.ProjectRole, error)
}
