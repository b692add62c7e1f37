package projects_dto

import (
	"time"

	"teamsync/internal/features/roles"

	"github.com/google/uuid"
)

type CreateProjectRequestDTO struct {
	Name        string `json:"name"        binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=2000"`
}

type ProjectResponseDTO struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id"`
	WorkspaceID uuid.UUID `json:"workspaceId" gorm:"column:workspace_id"`
	Name        string    `json:"name"        gorm:"column:name"`
	Description string    `json:"description" gorm:"column:description"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"column:created_at"`

	// User's role in this project, nil when the user sees it through the workspace only
	UserRole *roles.ProjectRole `json:"userRole,omitempty" gorm:"column:user_role"`
}

type ListProjectsResponseDTO struct {
	Projects []ProjectResponseDTO `json:"projects"`
}
