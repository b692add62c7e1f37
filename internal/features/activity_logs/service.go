package activity_logs

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

type ActivityLogService struct {
	activityLogRepository *ActivityLogRepository
	logger                *slog.Logger
}

// WriteActivityLog stores a line for the activity feed. Failures are logged
// and never reach the caller.
func (s *ActivityLogService) WriteActivityLog(
	message string,
	userID *uuid.UUID,
	workspaceID *uuid.UUID,
	projectID *uuid.UUID,
) {
	activityLog := &ActivityLog{
		UserID:      userID,
		WorkspaceID: workspaceID,
		ProjectID:   projectID,
		Message:     message,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.activityLogRepository.Create(activityLog); err != nil {
		s.logger.Error("failed to create activity log", "error", err)
	}
}

func (s *ActivityLogService) GetWorkspaceActivityLogs(
	workspaceID uuid.UUID,
	request *GetActivityLogsRequest,
) (*GetActivityLogsResponse, error) {
	limit, offset := normalizePage(request)

	activityLogs, err := s.activityLogRepository.GetByWorkspace(workspaceID, limit, offset, request.BeforeDate)
	if err != nil {
		return nil, err
	}

	total, err := s.activityLogRepository.CountByWorkspace(workspaceID, request.BeforeDate)
	if err != nil {
		return nil, err
	}

	return &GetActivityLogsResponse{
		ActivityLogs: activityLogs,
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	}, nil
}

func (s *ActivityLogService) GetProjectActivityLogs(
	projectID uuid.UUID,
	request *GetActivityLogsRequest,
) (*GetActivityLogsResponse, error) {
	limit, offset := normalizePage(request)

	activityLogs, err := s.activityLogRepository.GetByProject(projectID, limit, offset, request.BeforeDate)
	if err != nil {
		return nil, err
	}

	return &GetActivityLogsResponse{
		ActivityLogs: activityLogs,
		Total:        int64(len(activityLogs)),
		Limit:        limit,
		Offset:       offset,
	}, nil
}

func (s *ActivityLogService) GetUserActivityLogs(
	userID uuid.UUID,
	request *GetActivityLogsRequest,
) (*GetActivityLogsResponse, error) {
	limit, offset := normalizePage(request)

	activityLogs, err := s.activityLogRepository.GetByUser(userID, limit, offset, request.BeforeDate)
	if err != nil {
		return nil, err
	}

	return &GetActivityLogsResponse{
		ActivityLogs: activityLogs,
		Total:        int64(len(activityLogs)),
		Limit:        limit,
		Offset:       offset,
	}, nil
}

func normalizePage(request *GetActivityLogsRequest) (int, int) {
	limit := request.Limit
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}

	return limit, max(request.Offset, 0)
}
