package tasks_repositories

import (
	"context"
	"time"

	tasks_dto "teamsync/internal/features/tasks/dto"
	tasks_enums "teamsync/internal/features/tasks/enums"
	tasks_models "teamsync/internal/features/tasks/models"
	"teamsync/internal/storage"

	"github.com/google/uuid"
)

type MilestoneRepository struct{}

func (r *MilestoneRepository) CreateMilestone(ctx context.Context, milestone *tasks_models.Milestone) error {
	if milestone.ID == uuid.Nil {
		milestone.ID = uuid.New()
	}
	if milestone.CreatedAt.IsZero() {
		milestone.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().WithContext(ctx).Create(milestone).Error
}

func (r *MilestoneRepository) GetMilestoneByID(
	ctx context.Context,
	projectID, milestoneID uuid.UUID,
) (*tasks_models.Milestone, error) {
	var milestone tasks_models.Milestone

	err := storage.GetDb().WithContext(ctx).
		Where("id = ? AND project_id = ?", milestoneID, projectID).
		First(&milestone).Error
	if err != nil {
		return nil, err
	}

	return &milestone, nil
}

// GetProjectMilestonesWithCounts returns milestones ordered by due date with
// their total and done task counts. Progress is left to the caller.
func (r *MilestoneRepository) GetProjectMilestonesWithCounts(
	ctx context.Context,
	projectID uuid.UUID,
) ([]*tasks_dto.MilestoneResponseDTO, error) {
	milestones := make([]*tasks_dto.MilestoneResponseDTO, 0)

	err := storage.GetDb().WithContext(ctx).
		Table("milestones m").
		Select(`m.id, m.project_id, m.name, m.due_date, m.created_at,
			COUNT(t.id) as total_tasks,
			COUNT(t.id) FILTER (WHERE t.status = ?) as done_tasks`, tasks_enums.TaskStatusDone).
		Joins("LEFT JOIN tasks t ON t.milestone_id = m.id").
		Where("m.project_id = ?", projectID).
		Group("m.id").
		Order("m.due_date ASC NULLS LAST, m.created_at ASC").
		Scan(&milestones).Error

	return milestones, err
}
