package projects_repositories

import (
	"time"

	projects_dto "teamsync/internal/features/projects/dto"
	projects_models "teamsync/internal/features/projects/models"
	team_models "teamsync/internal/features/team/models"
	"teamsync/internal/storage"

	"github.com/google/uuid"
)

type ProjectRepository struct{}

func (r *ProjectRepository) CreateProject(project *projects_models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(project).Error
}

func (r *ProjectRepository) GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	var project projects_models.Project

	if err := storage.GetDb().Where("id = ?", projectID).First(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

func (r *ProjectRepository) DeleteProject(projectID uuid.UUID) error {
	return storage.GetDb().Delete(&projects_models.Project{}, projectID).Error
}

// GetWorkspaceProjectsWithRole lists every project of the workspace together
// with the user's active project role, if any.
func (r *ProjectRepository) GetWorkspaceProjectsWithRole(
	workspaceID, userID uuid.UUID,
) ([]projects_dto.ProjectResponseDTO, error) {
	results := make([]projects_dto.ProjectResponseDTO, 0)

	err := storage.GetDb().
		Table("projects p").
		Select("p.id, p.workspace_id, p.name, p.description, p.created_at, pm.role as user_role").
		Joins(
			"LEFT JOIN project_members pm ON p.id = pm.scope_id AND pm.user_id = ? AND pm.status = ?",
			userID,
			team_models.MembershipStatusActive,
		).
		Where("p.workspace_id = ?", workspaceID).
		Order("p.name ASC").
		Scan(&results).Error

	return results, err
}
