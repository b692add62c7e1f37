package tasks_controllers

import (
	tasks_services "teamsync/internal/features/tasks/services"
)

var taskController = &TaskController{
	tasks_services.GetTaskService(),
}

func GetTaskController() *TaskController {
	return taskController
}
