package workspaces_services

import (
	"teamsync/internal/cache"
	activity_logs "teamsync/internal/features/activity_logs"
	team_services "teamsync/internal/features/team/services"
	workspaces_models "teamsync/internal/features/workspaces/models"
	workspaces_repositories "teamsync/internal/features/workspaces/repositories"
	cache_utils "teamsync/internal/util/cache"
	"teamsync/internal/util/logger"

	"golang.org/x/sync/singleflight"
)

var workspaceRepository = &workspaces_repositories.WorkspaceRepository{}

var workspaceService = &WorkspaceService{
	workspaceRepository,
	team_services.GetWorkspaceTeamService(),
	activity_logs.GetActivityLogService(),
	logger.GetLogger(),
	cache_utils.NewCacheUtil[workspaces_models.Workspace](cache.GetCache(), "ts_workspace:"),
	singleflight.Group{},
}

func GetWorkspaceService() *WorkspaceService {
	return workspaceService
}

func SetupDependencies() {
	team_services.GetWorkspaceTeamService().SetScopeNameResolver(workspaceService)
}
