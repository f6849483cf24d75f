package repository

import (
	"context"

	"gorm.io/gorm"

	"taskmanager/internal/model"
)

// TaskRepository defines task persistence operations.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	ListByUser(ctx context.Context, userID uint, dueWithin *model.DateRange) ([]model.Task, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// Create inserts a task and fills in its generated id and timestamps.
func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID finds a task by ID regardless of owner.
func (r *taskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByUser returns the user's tasks ordered by due date, newest first among
// equal due dates. A nil range disables date filtering.
func (r *taskRepository) ListByUser(ctx context.Context, userID uint, dueWithin *model.DateRange) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if dueWithin != nil {
		if dueWithin.EndInclusive {
			query = query.Where("due_date >= ? AND due_date <= ?", dueWithin.Start, dueWithin.End)
		} else {
			query = query.Where("due_date >= ? AND due_date < ?", dueWithin.Start, dueWithin.End)
		}
	}

	tasks := []model.Task{}
	if err := query.Order("due_date ASC").Order("created_at DESC").Order("id DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update applies the given column values. A missing row is not an error here;
// callers re-read the task to detect it.
func (r *taskRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete physically removes a task. Deleting a missing id is a no-op.
func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Task{}, id).Error
}
