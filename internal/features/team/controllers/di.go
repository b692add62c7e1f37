package team_controllers

import (
	"sync"

	"teamsync/internal/cache"
	"teamsync/internal/config"
	"teamsync/internal/features/roles"
	team_services "teamsync/internal/features/team/services"
	"teamsync/internal/util/rate_limit"
)

var (
	workspaceTeamController *TeamController[roles.WorkspaceRole]
	projectTeamController   *TeamController[roles.ProjectRole]
	invitationController    *InvitationController
	initOnce                sync.Once
)

func initControllers() {
	workspaceService := team_services.GetWorkspaceTeamService()
	projectService := team_services.GetProjectTeamService()

	workspaceTeamController = NewTeamController(workspaceService, "/workspaces")
	projectTeamController = NewTeamController(projectService, "/projects")

	env := config.GetEnv()
	invitationController = NewInvitationController(workspaceService, projectService)
	invitationController.SetRateLimiter(
		rate_limit.NewRateLimiter(cache.GetCache()),
		AcceptLimit{RPS: env.AcceptRateLimitPerSecond, Burst: env.AcceptRateLimitBurst},
	)
}

func GetWorkspaceTeamController() *TeamController[roles.WorkspaceRole] {
	initOnce.Do(initControllers)
	return workspaceTeamController
}

func GetProjectTeamController() *TeamController[roles.ProjectRole] {
	initOnce.Do(initControllers)
	return projectTeamController
}

func GetInvitationController() *InvitationController {
	initOnce.Do(initControllers)
	return invitationController
}
