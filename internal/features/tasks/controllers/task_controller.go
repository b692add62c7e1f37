package tasks_controllers

import (
	"errors"
	"net/http"

	tasks_dto "teamsync/internal/features/tasks/dto"
	tasks_services "teamsync/internal/features/tasks/services"
	users_middleware "teamsync/internal/features/users/middleware"
	users_models "teamsync/internal/features/users/models"
	"teamsync/internal/util/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskController struct {
	taskService *tasks_services.TaskService
}

func (c *TaskController) RegisterRoutes(router *gin.RouterGroup) {
	projectRoutes := router.Group("/projects/:id")

	projectRoutes.POST("/tasks", c.CreateTask)
	projectRoutes.GET("/tasks", c.GetTasks)
	projectRoutes.PUT("/tasks/:taskId/status", c.UpdateTaskStatus)

	projectRoutes.POST("/milestones", c.CreateMilestone)
	projectRoutes.GET("/milestones", c.GetMilestones)
}

// CreateTask
// @Summary Create task
// @Description Create a task. It gets the next project number and goes to the end of the todo column.
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body tasks_dto.CreateTaskRequestDTO true "Task data"
// @Success 201 {object} tasks_models.Task
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/tasks [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
	user, projectID, ok := c.resolveRequest(ctx)
	if !ok {
		return
	}

	var request tasks_dto.CreateTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	task, err := c.taskService.CreateTask(ctx.Request.Context(), projectID, &request, user)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, task)
}

// GetTasks
// @Summary List tasks
// @Description List project tasks ordered by column and position
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param status query string false "Filter by status (todo, in_progress, done)"
// @Param milestoneId query string false "Filter by milestone"
// @Success 200 {object} tasks_dto.ListTasksResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /projects/{id}/tasks [get]
func (c *TaskController) GetTasks(ctx *gin.Context) {
	user, projectID, ok := c.resolveRequest(ctx)
	if !ok {
		return
	}

	var request tasks_dto.GetTasksRequestDTO
	if err := ctx.ShouldBindQuery(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	var milestoneID *uuid.UUID
	if request.MilestoneID != "" {
		parsed, err := uuid.Parse(request.MilestoneID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid milestone ID"})
			return
		}
		milestoneID = &parsed
	}

	response, err := c.taskService.GetProjectTasks(
		ctx.Request.Context(),
		projectID,
		request.Status,
		milestoneID,
		user,
	)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateTaskStatus
// @Summary Move task
// @Description Change the status of a task, appending it to the end of the new column
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param taskId path string true "Task ID"
// @Param request body tasks_dto.UpdateTaskStatusRequestDTO true "New status"
// @Success 200 {object} tasks_models.Task
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/tasks/{taskId}/status [put]
func (c *TaskController) UpdateTaskStatus(ctx *gin.Context) {
	user, projectID, ok := c.resolveRequest(ctx)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	var request tasks_dto.UpdateTaskStatusRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	task, err := c.taskService.UpdateTaskStatus(ctx.Request.Context(), projectID, taskID, request.Status, user)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// CreateMilestone
// @Summary Create milestone
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body tasks_dto.CreateMilestoneRequestDTO true "Milestone data"
// @Success 201 {object} tasks_dto.MilestoneResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /projects/{id}/milestones [post]
func (c *TaskController) CreateMilestone(ctx *gin.Context) {
	user, projectID, ok := c.resolveRequest(ctx)
	if !ok {
		return
	}

	var request tasks_dto.CreateMilestoneRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	milestone, err := c.taskService.CreateMilestone(ctx.Request.Context(), projectID, &request, user)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, milestone)
}

// GetMilestones
// @Summary List milestones
// @Description List project milestones with task counts and progress percentage
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} tasks_dto.ListMilestonesResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /projects/{id}/milestones [get]
func (c *TaskController) GetMilestones(ctx *gin.Context) {
	user, projectID, ok := c.resolveRequest(ctx)
	if !ok {
		return
	}

	response, err := c.taskService.GetProjectMilestones(ctx.Request.Context(), projectID, user)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func (c *TaskController) resolveRequest(ctx *gin.Context) (*users_models.User, uuid.UUID, bool) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, uuid.Nil, false
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return nil, uuid.Nil, false
	}

	return user, projectID, true
}

func respondWithError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, tasks_services.ErrInsufficientPermissions):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, tasks_services.ErrTaskNotFound),
		errors.Is(err, tasks_services.ErrMilestoneNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, tasks_services.ErrInvalidTaskStatus),
		errors.Is(err, tasks_services.ErrTitleRequired),
		errors.Is(err, tasks_services.ErrNameRequired),
		errors.Is(err, tasks_services.ErrInvalidDueDate):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.GetLogger().Error("task request failed", "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
