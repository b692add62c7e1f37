package activity_logs

import (
	"time"

	"github.com/google/uuid"
)

type GetActivityLogsRequest struct {
	Limit      int        `form:"limit"      json:"limit"`
	Offset     int        `form:"offset"     json:"offset"`
	BeforeDate *time.Time `form:"beforeDate" json:"beforeDate"`
}

type GetActivityLogsResponse struct {
	ActivityLogs []*ActivityLogDTO `json:"activityLogs"`
	Total        int64             `json:"total"`
	Limit        int               `json:"limit"`
	Offset       int               `json:"offset"`
}

type ActivityLogDTO struct {
	ID            uuid.UUID  `json:"id"            gorm:"column:id"`
	UserID        *uuid.UUID `json:"userId"        gorm:"column:user_id"`
	WorkspaceID   *uuid.UUID `json:"workspaceId"   gorm:"column:workspace_id"`
	ProjectID     *uuid.UUID `json:"projectId"     gorm:"column:project_id"`
	Message       string     `json:"message"       gorm:"column:message"`
	CreatedAt     time.Time  `json:"createdAt"     gorm:"column:created_at"`
	UserEmail     *string    `json:"userEmail"     gorm:"column:user_email"`
	WorkspaceName *string    `json:"workspaceName" gorm:"column:workspace_name"`
	ProjectName   *string    `json:"projectName"   gorm:"column:project_name"`
}
