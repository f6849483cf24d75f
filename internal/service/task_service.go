package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "taskmanager/internal/errors"
	"taskmanager/internal/model"
	"taskmanager/internal/repository"
)

var (
	// ErrTaskNotFound is returned when a task id does not exist.
	ErrTaskNotFound = apperrors.Wrap(apperrors.ErrNotFound, "Task not found")
	// ErrTaskForbidden is returned when the requester does not own the task.
	ErrTaskForbidden = apperrors.Wrap(apperrors.ErrForbidden, "You do not have permission to access this task")
)

// NewTask carries the fields accepted on creation. Status is not among them.
type NewTask struct {
	Title       string
	Description *string
	DueDate     *string
}

// TaskPatch carries the fields of a partial update. Nil means unchanged; an
// empty DueDate clears the due date.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	DueDate     *string
}

// TaskService lists, creates, updates and removes tasks.
type TaskService interface {
	List(ctx context.Context, userID uint, filter DateFilter) ([]model.Task, error)
	Create(ctx context.Context, userID uint, input NewTask) (*model.Task, error)
	Get(ctx context.Context, id uint) (*model.Task, error)
	GetOwned(ctx context.Context, requesterID, id uint) (*model.Task, error)
	Update(ctx context.Context, id uint, patch TaskPatch) (*model.Task, error)
	Remove(ctx context.Context, id uint) error
}

type taskService struct {
	repo repository.TaskRepository
}

// NewTaskService creates a new task service.
func NewTaskService(repo repository.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

// List returns the user's tasks matching the filter. Ownership is applied
// before any date condition.
func (s *taskService) List(ctx context.Context, userID uint, filter DateFilter) ([]model.Task, error) {
	tasks, err := s.repo.ListByUser(ctx, userID, filter.Range())
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Create stores a new PENDING task owned by userID.
func (s *taskService) Create(ctx context.Context, userID uint, input NewTask) (*model.Task, error) {
	task, err := normalizeNewTask(userID, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// Get loads a task by id without any ownership check.
func (s *taskService) Get(ctx context.Context, id uint) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

// GetOwned loads a task and then checks that requesterID owns it, so a
// missing task and a foreign task stay distinguishable.
func (s *taskService) GetOwned(ctx context.Context, requesterID, id uint) (*model.Task, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.UserID != requesterID {
		return nil, ErrTaskForbidden
	}
	return task, nil
}

// Update applies the provided fields and returns the stored task.
func (s *taskService) Update(ctx context.Context, id uint, patch TaskPatch) (*model.Task, error) {
	fields, err := normalizeTaskPatch(patch)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return s.Get(ctx, id)
}

// Remove deletes a task. Removing a missing id succeeds.
func (s *taskService) Remove(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
