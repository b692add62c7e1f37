package tasks_repositories

import (
	"context"
	"database/sql"

	tasks_enums "teamsync/internal/features/tasks/enums"
	tasks_models "teamsync/internal/features/tasks/models"
	"teamsync/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaskRepository struct{}

// CreateTaskWithNextNumber assigns the next project number and the next
// position in the task's status column. The project row is locked so that
// concurrent creations see each other's numbers.
func (r *TaskRepository) CreateTaskWithNextNumber(
	ctx context.Context,
	task *tasks_models.Task,
) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	return storage.GetDb().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProject(tx, task.ProjectID); err != nil {
			return err
		}

		maxNumber, err := r.maxValue(tx, "number", task.ProjectID, nil)
		if err != nil {
			return err
		}

		maxPosition, err := r.maxValue(tx, "position", task.ProjectID, &task.Status)
		if err != nil {
			return err
		}

		task.Number = tasks_models.NextTaskNumber(maxNumber)
		task.Position = tasks_models.NextPosition(maxPosition)

		return tx.Create(task).Error
	})
}

func (r *TaskRepository) GetTaskByID(ctx context.Context, projectID, taskID uuid.UUID) (*tasks_models.Task, error) {
	var task tasks_models.Task

	err := storage.GetDb().WithContext(ctx).
		Where("id = ? AND project_id = ?", taskID, projectID).
		First(&task).Error
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// MoveTask changes the status and appends the task to the end of the new
// column.
func (r *TaskRepository) MoveTask(
	ctx context.Context,
	task *tasks_models.Task,
	status tasks_enums.TaskStatus,
) error {
	return storage.GetDb().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProject(tx, task.ProjectID); err != nil {
			return err
		}

		maxPosition, err := r.maxValue(tx, "position", task.ProjectID, &status)
		if err != nil {
			return err
		}

		task.Status = status
		task.Position = tasks_models.NextPosition(maxPosition)

		return tx.Model(&tasks_models.Task{}).
			Where("id = ?", task.ID).
			Updates(map[string]any{"status": task.Status, "position": task.Position}).Error
	})
}

func (r *TaskRepository) GetProjectTasks(
	ctx context.Context,
	projectID uuid.UUID,
	status tasks_enums.TaskStatus,
	milestoneID *uuid.UUID,
) ([]*tasks_models.Task, error) {
	tasks := make([]*tasks_models.Task, 0)

	query := storage.GetDb().WithContext(ctx).Where("project_id = ?", projectID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if milestoneID != nil {
		query = query.Where("milestone_id = ?", *milestoneID)
	}

	err := query.Order("status ASC, position ASC").Find(&tasks).Error

	return tasks, err
}

// maxValue returns nil when the project has no matching tasks.
func (r *TaskRepository) maxValue(
	tx *gorm.DB,
	column string,
	projectID uuid.UUID,
	status *tasks_enums.TaskStatus,
) (*int, error) {
	var result sql.NullInt64

	query := tx.Model(&tasks_models.Task{}).
		Select("MAX("+column+")").
		Where("project_id = ?", projectID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Row().Scan(&result); err != nil {
		return nil, err
	}

	if !result.Valid {
		return nil, nil
	}

	value := int(result.Int64)
	return &value, nil
}

func lockProject(tx *gorm.DB, projectID uuid.UUID) error {
	var locked struct {
		ID uuid.UUID
	}

	return tx.Table("projects").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", projectID).
		Take(&locked).Error
}
