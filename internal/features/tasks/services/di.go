package tasks_services

import (
	activity_logs "teamsync/internal/features/activity_logs"
	projects_services "teamsync/internal/features/projects/services"
	tasks_repositories "teamsync/internal/features/tasks/repositories"
)

var taskService = &TaskService{
	&tasks_repositories.TaskRepository{},
	&tasks_repositories.MilestoneRepository{},
	projects_services.GetProjectService(),
	activity_logs.GetActivityLogService(),
}

func GetTaskService() *TaskService {
	return taskService
}
