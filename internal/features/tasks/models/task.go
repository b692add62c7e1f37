package tasks_models

import (
	"time"

	tasks_enums "teamsync/internal/features/tasks/enums"

	"github.com/google/uuid"
)

// Task is numbered per project. Position orders tasks inside one status
// column of the board.
type Task struct {
	ID          uuid.UUID              `json:"id"          gorm:"column:id"`
	ProjectID   uuid.UUID              `json:"projectId"   gorm:"column:project_id"`
	MilestoneID *uuid.UUID             `json:"milestoneId" gorm:"column:milestone_id"`
	Number      int                    `json:"number"      gorm:"column:number"`
	Position    int                    `json:"position"    gorm:"column:position"`
	Title       string                 `json:"title"       gorm:"column:title"`
	Status      tasks_enums.TaskStatus `json:"status"      gorm:"column:status"`
	CreatedBy   uuid.UUID              `json:"createdBy"   gorm:"column:created_by"`
	CreatedAt   time.Time              `json:"createdAt"   gorm:"column:created_at"`
}

func (Task) TableName() string {
	return "tasks"
}
