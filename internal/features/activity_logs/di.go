package activity_logs

import (
	team_services "teamsync/internal/features/team/services"
	users_services "teamsync/internal/features/users/services"
	"teamsync/internal/util/logger"
)

var activityLogRepository = &ActivityLogRepository{}
var activityLogService = &ActivityLogService{
	activityLogRepository: activityLogRepository,
	logger:                logger.GetLogger(),
}
var activityLogController = &ActivityLogController{
	activityLogService: activityLogService,
}

func GetActivityLogService() *ActivityLogService {
	return activityLogService
}

func GetActivityLogController() *ActivityLogController {
	return activityLogController
}

func SetupDependencies() {
	users_services.GetUserService().SetActivityLogWriter(activityLogService)
	team_services.GetWorkspaceTeamService().SetActivityLogWriter(activityLogService)
	team_services.GetProjectTeamService().SetActivityLogWriter(activityLogService)
}
