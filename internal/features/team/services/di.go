package team_services

import (
	"sync"

	"teamsync/internal/config"
	"teamsync/internal/features/roles"
	team_models "teamsync/internal/features/team/models"
	team_repositories "teamsync/internal/features/team/repositories"
	users_services "teamsync/internal/features/users/services"
	"teamsync/internal/storage"
	"teamsync/internal/util/logger"
)

var (
	workspaceTeamService *TeamService[roles.WorkspaceRole]
	projectTeamService   *TeamService[roles.ProjectRole]
	initOnce             sync.Once
)

func initTeamServices() {
	env := config.GetEnv()
	options := Options{
		InvitationTTL:     env.InvitationTTL(),
		RequireEmailMatch: env.InvitationRequireEmailMatch,
		InviteBaseURL:     env.AppBaseURL,
	}

	workspaceTeamService = NewTeamService[roles.WorkspaceRole](
		team_models.WorkspaceScope,
		team_repositories.NewTeamRepository[roles.WorkspaceRole](team_models.WorkspaceScope, storage.GetDb),
		users_services.GetUserService(),
		options,
		logger.GetLogger(),
	)

	projectTeamService = NewTeamService[roles.ProjectRole](
		team_models.ProjectScope,
		team_repositories.NewTeamRepository[roles.ProjectRole](team_models.ProjectScope, storage.GetDb),
		users_services.GetUserService(),
		options,
		logger.GetLogger(),
	)
}

func GetWorkspaceTeamService() *TeamService[roles.WorkspaceRole] {
	initOnce.Do(initTeamServices)
	return workspaceTeamService
}

func GetProjectTeamService() *TeamService[roles.ProjectRole] {
	initOnce.Do(initTeamServices)
	return projectTeamService
}
