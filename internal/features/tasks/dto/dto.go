package tasks_dto

import (
	"time"

	tasks_enums "teamsync/internal/features/tasks/enums"
	tasks_models "teamsync/internal/features/tasks/models"

	"github.com/google/uuid"
)

type CreateTaskRequestDTO struct {
	Title       string     `json:"title"       binding:"required,min=1,max=500"`
	MilestoneID *uuid.UUID `json:"milestoneId"`
}

type UpdateTaskStatusRequestDTO struct {
	Status tasks_enums.TaskStatus `json:"status" binding:"required"`
}

type GetTasksRequestDTO struct {
	Status      tasks_enums.TaskStatus `form:"status"`
	MilestoneID string                 `form:"milestoneId"`
}

type ListTasksResponseDTO struct {
	Tasks []*tasks_models.Task `json:"tasks"`
}

type CreateMilestoneRequestDTO struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
	// DueDate is a plain date or an RFC3339 timestamp
	DueDate string `json:"dueDate"`
}

type MilestoneResponseDTO struct {
	ID        uuid.UUID  `json:"id"        gorm:"column:id"`
	ProjectID uuid.UUID  `json:"projectId" gorm:"column:project_id"`
	Name      string     `json:"name"      gorm:"column:name"`
	DueDate   *time.Time `json:"dueDate"   gorm:"column:due_date"`
	CreatedAt time.Time  `json:"createdAt" gorm:"column:created_at"`

	TotalTasks int `json:"totalTasks" gorm:"column:total_tasks"`
	DoneTasks  int `json:"doneTasks"  gorm:"column:done_tasks"`
	// Progress is the rounded percentage of done tasks, 0 without tasks
	Progress int `json:"progress" gorm:"-"`
}

type ListMilestonesResponseDTO struct {
	Milestones []*MilestoneResponseDTO `json:"milestones"`
}
