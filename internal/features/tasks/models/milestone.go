package tasks_models

import (
	"time"

	"github.com/google/uuid"
)

type Milestone struct {
	ID        uuid.UUID  `json:"id"        gorm:"column:id"`
	ProjectID uuid.UUID  `json:"projectId" gorm:"column:project_id"`
	Name      string     `json:"name"      gorm:"column:name"`
	DueDate   *time.Time `json:"dueDate"   gorm:"column:due_date"`
	CreatedAt time.Time  `json:"createdAt" gorm:"column:created_at"`
}

func (Milestone) TableName() string {
	return "milestones"
}
