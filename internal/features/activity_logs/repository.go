package activity_logs

import (
	"time"

	"teamsync/internal/storage"

	"github.com/google/uuid"
)

const selectActivityLogs = `
	SELECT
		al.id,
		al.user_id,
		al.workspace_id,
		al.project_id,
		al.message,
		al.created_at,
		u.email as user_email,
		w.name as workspace_name,
		p.name as project_name
	FROM activity_logs al
	LEFT JOIN users u ON al.user_id = u.id
	LEFT JOIN workspaces w ON al.workspace_id = w.id
	LEFT JOIN projects p ON al.project_id = p.id`

// project lines carry no workspace_id, they are matched through the project
const workspaceFilter = `(al.workspace_id = ? OR al.project_id IN (SELECT id FROM projects WHERE workspace_id = ?))`

type ActivityLogRepository struct{}

func (r *ActivityLogRepository) Create(activityLog *ActivityLog) error {
	if activityLog.ID == uuid.Nil {
		activityLog.ID = uuid.New()
	}

	return storage.GetDb().Create(activityLog).Error
}

func (r *ActivityLogRepository) GetByWorkspace(
	workspaceID uuid.UUID,
	limit, offset int,
	beforeDate *time.Time,
) ([]*ActivityLogDTO, error) {
	return r.find(selectActivityLogs+" WHERE "+workspaceFilter, []any{workspaceID, workspaceID}, limit, offset, beforeDate)
}

func (r *ActivityLogRepository) GetByProject(
	projectID uuid.UUID,
	limit, offset int,
	beforeDate *time.Time,
) ([]*ActivityLogDTO, error) {
	return r.find(selectActivityLogs+" WHERE al.project_id = ?", []any{projectID}, limit, offset, beforeDate)
}

func (r *ActivityLogRepository) GetByUser(
	userID uuid.UUID,
	limit, offset int,
	beforeDate *time.Time,
) ([]*ActivityLogDTO, error) {
	return r.find(selectActivityLogs+" WHERE al.user_id = ?", []any{userID}, limit, offset, beforeDate)
}

func (r *ActivityLogRepository) CountByWorkspace(workspaceID uuid.UUID, beforeDate *time.Time) (int64, error) {
	var count int64
	query := storage.GetDb().
		Table("activity_logs al").
		Where(workspaceFilter, workspaceID, workspaceID)

	if beforeDate != nil {
		query = query.Where("al.created_at < ?", *beforeDate)
	}

	err := query.Count(&count).Error
	return count, err
}

func (r *ActivityLogRepository) find(
	sql string,
	args []any,
	limit, offset int,
	beforeDate *time.Time,
) ([]*ActivityLogDTO, error) {
	var activityLogs = make([]*ActivityLogDTO, 0)

	if beforeDate != nil {
		sql += " AND al.created_at < ?"
		args = append(args, *beforeDate)
	}

	sql += " ORDER BY al.created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	err := storage.GetDb().Raw(sql, args...).Scan(&activityLogs).Error

	return activityLogs, err
}
