package projects_services

import (
	"teamsync/internal/cache"
	activity_logs "teamsync/internal/features/activity_logs"
	projects_models "teamsync/internal/features/projects/models"
	projects_repositories "teamsync/internal/features/projects/repositories"
	team_services "teamsync/internal/features/team/services"
	workspaces_services "teamsync/internal/features/workspaces/services"
	cache_utils "teamsync/internal/util/cache"
	"teamsync/internal/util/logger"

	"golang.org/x/sync/singleflight"
)

var projectRepository = &projects_repositories.ProjectRepository{}

var projectService = &ProjectService{
	projectRepository,
	workspaces_services.GetWorkspaceService(),
	team_services.GetProjectTeamService(),
	activity_logs.GetActivityLogService(),
	logger.GetLogger(),
	cache_utils.NewCacheUtil[projects_models.Project](cache.GetCache(), "ts_project:"),
	singleflight.Group{},
}

func GetProjectService() *ProjectService {
	return projectService
}

func SetupDependencies() {
	team_services.GetProjectTeamService().SetScopeNameResolver(projectService)
}
