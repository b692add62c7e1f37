package workspaces_repositories

import (
	"time"

	team_models "teamsync/internal/features/team/models"
	workspaces_dto "teamsync/internal/features/workspaces/dto"
	workspaces_models "teamsync/internal/features/workspaces/models"
	"teamsync/internal/storage"

	"github.com/google/uuid"
)

type WorkspaceRepository struct{}

func (r *WorkspaceRepository) CreateWorkspace(workspace *workspaces_models.Workspace) error {
	if workspace.ID == uuid.Nil {
		workspace.ID = uuid.New()
	}
	if workspace.CreatedAt.IsZero() {
		workspace.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(workspace).Error
}

func (r *WorkspaceRepository) GetWorkspaceByID(workspaceID uuid.UUID) (*workspaces_models.Workspace, error) {
	var workspace workspaces_models.Workspace

	if err := storage.GetDb().Where("id = ?", workspaceID).First(&workspace).Error; err != nil {
		return nil, err
	}

	return &workspace, nil
}

func (r *WorkspaceRepository) DeleteWorkspace(workspaceID uuid.UUID) error {
	return storage.GetDb().Delete(&workspaces_models.Workspace{}, workspaceID).Error
}

// GetWorkspacesWithRolesByUserID lists workspaces where the user holds an
// active membership.
func (r *WorkspaceRepository) GetWorkspacesWithRolesByUserID(
	userID uuid.UUID,
) ([]workspaces_dto.WorkspaceResponseDTO, error) {
	results := make([]workspaces_dto.WorkspaceResponseDTO, 0)

	err := storage.GetDb().
		Table("workspaces w").
		Select("w.id, w.name, w.created_at, wm.role as user_role").
		Joins("JOIN workspace_members wm ON w.id = wm.scope_id").
		Where("wm.user_id = ? AND wm.status = ?", userID, team_models.MembershipStatusActive).
		Order("w.name ASC").
		Scan(&results).Error

	return results, err
}
