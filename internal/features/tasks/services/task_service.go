package tasks_services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	activity_logs "teamsync/internal/features/activity_logs"
	"teamsync/internal/features/roles"
	tasks_dto "teamsync/internal/features/tasks/dto"
	tasks_enums "teamsync/internal/features/tasks/enums"
	tasks_interfaces "teamsync/internal/features/tasks/interfaces"
	tasks_models "teamsync/internal/features/tasks/models"
	tasks_repositories "teamsync/internal/features/tasks/repositories"
	users_models "teamsync/internal/features/users/models"
	time_parser "teamsync/internal/util/time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskService manages project tasks and milestones. Every operation is gated
// by the caller's project role.
type TaskService struct {
	taskRepository      *tasks_repositories.TaskRepository
	milestoneRepository *tasks_repositories.MilestoneRepository
	projectRoleResolver tasks_interfaces.ProjectRoleResolver
	activityLogService  *activity_logs.ActivityLogService
}

func (s *TaskService) CreateTask(
	ctx context.Context,
	projectID uuid.UUID,
	request *tasks_dto.CreateTaskRequestDTO,
	user *users_models.User,
) (*tasks_models.Task, error) {
	if err := s.requirePermission(ctx, projectID, user, roles.PermissionProjectTasksCreate); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(request.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	if request.MilestoneID != nil {
		if _, err := s.getMilestone(ctx, projectID, *request.MilestoneID); err != nil {
			return nil, err
		}
	}

	task := &tasks_models.Task{
		ID:          uuid.New(),
		ProjectID:   projectID,
		MilestoneID: request.MilestoneID,
		Title:       title,
		Status:      tasks_enums.TaskStatusTodo,
		CreatedBy:   user.ID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.taskRepository.CreateTaskWithNextNumber(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.activityLogService.WriteActivityLog(
		fmt.Sprintf("Task #%d created: %s", task.Number, task.Title),
		&user.ID,
		nil,
		&projectID,
	)

	return task, nil
}

func (s *TaskService) GetProjectTasks(
	ctx context.Context,
	projectID uuid.UUID,
	status tasks_enums.TaskStatus,
	milestoneID *uuid.UUID,
	user *users_models.User,
) (*tasks_dto.ListTasksResponseDTO, error) {
	if err := s.requirePermission(ctx, projectID, user, roles.PermissionProjectTasksView); err != nil {
		return nil, err
	}

	if status != "" && !status.IsValid() {
		return nil, ErrInvalidTaskStatus
	}

	tasks, err := s.taskRepository.GetProjectTasks(ctx, projectID, status, milestoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}

	return &tasks_dto.ListTasksResponseDTO{Tasks: tasks}, nil
}

// UpdateTaskStatus moves the task to the end of the target column. Setting
// the current status again keeps its position.
func (s *TaskService) UpdateTaskStatus(
	ctx context.Context,
	projectID, taskID uuid.UUID,
	status tasks_enums.TaskStatus,
	user *users_models.User,
) (*tasks_models.Task, error) {
	if err := s.requirePermission(ctx, projectID, user, roles.PermissionProjectTasksEdit); err != nil {
		return nil, err
	}

	if !status.IsValid() {
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.taskRepository.GetTaskByID(ctx, projectID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}

		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if task.Status == status {
		return task, nil
	}

	previousStatus := task.Status
	if err := s.taskRepository.MoveTask(ctx, task, status); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	s.activityLogService.WriteActivityLog(
		fmt.Sprintf("Task #%d moved from %s to %s", task.Number, previousStatus, status),
		&user.ID,
		nil,
		&projectID,
	)

	return task, nil
}

func (s *TaskService) CreateMilestone(
	ctx context.Context,
	projectID uuid.UUID,
	request *tasks_dto.CreateMilestoneRequestDTO,
	user *users_models.User,
) (*tasks_dto.MilestoneResponseDTO, error) {
	if err := s.requirePermission(ctx, projectID, user, roles.PermissionProjectMilestonesManage); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	dueDate, err := time_parser.ParseDate(request.DueDate)
	if err != nil {
		return nil, ErrInvalidDueDate
	}

	milestone := &tasks_models.Milestone{
		ID:        uuid.New(),
		ProjectID: projectID,
		Name:      name,
		DueDate:   dueDate,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.milestoneRepository.CreateMilestone(ctx, milestone); err != nil {
		return nil, fmt.Errorf("failed to create milestone: %w", err)
	}

	s.activityLogService.WriteActivityLog(
		fmt.Sprintf("Milestone created: %s", milestone.Name),
		&user.ID,
		nil,
		&projectID,
	)

	return &tasks_dto.MilestoneResponseDTO{
		ID:        milestone.ID,
		ProjectID: milestone.ProjectID,
		Name:      milestone.Name,
		DueDate:   milestone.DueDate,
		CreatedAt: milestone.CreatedAt,
	}, nil
}

func (s *TaskService) GetProjectMilestones(
	ctx context.Context,
	projectID uuid.UUID,
	user *users_models.User,
) (*tasks_dto.ListMilestonesResponseDTO, error) {
	if err := s.requirePermission(ctx, projectID, user, roles.PermissionProjectMilestonesView); err != nil {
		return nil, err
	}

	milestones, err := s.milestoneRepository.GetProjectMilestonesWithCounts(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get milestones: %w", err)
	}

	for _, milestone := range milestones {
		milestone.Progress = tasks_models.MilestoneProgress(milestone.DoneTasks, milestone.TotalTasks)
	}

	return &tasks_dto.ListMilestonesResponseDTO{Milestones: milestones}, nil
}

func (s *TaskService) getMilestone(
	ctx context.Context,
	projectID, milestoneID uuid.UUID,
) (*tasks_models.Milestone, error) {
	milestone, err := s.milestoneRepository.GetMilestoneByID(ctx, projectID, milestoneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMilestoneNotFound
		}

		return nil, fmt.Errorf("failed to get milestone: %w", err)
	}

	return milestone, nil
}

func (s *TaskService) requirePermission(
	ctx context.Context,
	projectID uuid.UUID,
	user *users_models.User,
	permission roles.Permission,
) error {
	role, err := s.projectRoleResolver.GetUserProjectRole(ctx, projectID, user.ID)
	if err != nil {
		return fmt.Errorf("failed to get project role: %w", err)
	}

	if role == nil || !roles.HasProjectPermission(*role, permission) {
		return ErrInsufficientPermissions
	}

	return nil
}
