package workspaces_dto

import (
	"time"

	"teamsync/internal/features/roles"

	"github.com/google/uuid"
)

type CreateWorkspaceRequestDTO struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

type WorkspaceResponseDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`

	// User's role in this workspace (populated when fetching for specific user)
	UserRole *roles.WorkspaceRole `json:"userRole,omitempty"`
}

type ListWorkspacesResponseDTO struct {
	Workspaces []WorkspaceResponseDTO `json:"workspaces"`
}
