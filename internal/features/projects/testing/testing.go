package projects_testing

import (
	"context"

	projects_dto "teamsync/internal/features/projects/dto"
	projects_models "teamsync/internal/features/projects/models"
	projects_services "teamsync/internal/features/projects/services"
	"teamsync/internal/features/roles"
	team_services "teamsync/internal/features/team/services"
	users_dto "teamsync/internal/features/users/dto"
	users_services "teamsync/internal/features/users/services"
	workspaces_models "teamsync/internal/features/workspaces/models"
)

// CreateTestProject creates a project in the workspace. The creator must be
// allowed to create projects there and becomes project admin.
func CreateTestProject(
	workspace *workspaces_models.Workspace,
	name string,
	creator *users_dto.SignInResponseDTO,
) *projects_models.Project {
	creatorUser, err := users_services.GetUserService().GetUserByID(creator.UserID)
	if err != nil {
		panic(err)
	}

	response, err := projects_services.GetProjectService().CreateProject(
		context.Background(),
		workspace.ID,
		&projects_dto.CreateProjectRequestDTO{Name: name},
		creatorUser,
	)
	if err != nil {
		panic("Failed to create test project: " + err.Error())
	}

	return &projects_models.Project{
		ID:          response.ID,
		WorkspaceID: response.WorkspaceID,
		Name:        response.Name,
		Description: response.Description,
		CreatedAt:   response.CreatedAt,
	}
}

// AddProjectMember grants an active project membership directly.
func AddProjectMember(
	project *projects_models.Project,
	member *users_dto.SignInResponseDTO,
	role roles.ProjectRole,
) {
	_, err := team_services.GetProjectTeamService().GrantMembership(
		context.Background(),
		project.ID,
		member.UserID,
		role,
	)
	if err != nil {
		panic("Failed to add member to project: " + err.Error())
	}
}
