package workspaces_controllers

import (
	workspaces_services "teamsync/internal/features/workspaces/services"
)

var workspaceController = &WorkspaceController{
	workspaces_services.GetWorkspaceService(),
}

func GetWorkspaceController() *WorkspaceController {
	return workspaceController
}
