package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "taskmanager/internal/errors"
	"taskmanager/internal/model"
)

func TestTaskService_List(t *testing.T) {
	tests := []struct {
		name      string
		filter    DateFilter
		wantRange *model.DateRange
	}{
		{
			name:      "day filter",
			filter:    DateFilter{Mode: DateModeDay, Year: 2024, Month: 2, Day: 29},
			wantRange: &model.DateRange{Start: model.NewDate(2024, 2, 29), End: model.NewDate(2024, 3, 1)},
		},
		{
			name:      "month filter",
			filter:    DateFilter{Mode: DateModeMonth, Year: 2024, Month: 2},
			wantRange: &model.DateRange{Start: model.NewDate(2024, 2, 1), End: model.NewDate(2024, 2, 29), EndInclusive: true},
		},
		{
			name:      "incomplete filter lists everything",
			filter:    DateFilter{Mode: DateModeDay, Year: 2024},
			wantRange: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			want := []model.Task{{ID: 1, UserID: 3}}
			mockRepo.On("ListByUser", mock.Anything, uint(3), tt.wantRange).Return(want, nil)

			tasks, err := NewTaskService(mockRepo).List(context.Background(), 3, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, want, tasks)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTaskService_ListPropagatesStorageFailure(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("ListByUser", mock.Anything, uint(3), mock.Anything).Return(nil, errors.New("timeout"))

	_, err := NewTaskService(mockRepo).List(context.Background(), 3, DateFilter{})
	assert.ErrorContains(t, err, "timeout")
}

func TestTaskService_Create(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
		return task.Title == "Buy milk" &&
			task.Status == model.TaskStatusPending &&
			task.UserID == 4 &&
			task.DueDate != nil && task.DueDate.String() == "2024-03-10"
	})).Run(func(args mock.Arguments) {
		task := args.Get(1).(*model.Task)
		task.ID = 11
		task.CreatedAt = time.Now()
		task.UpdatedAt = task.CreatedAt
	}).Return(nil)

	svc := NewTaskService(mockRepo)
	task, err := svc.Create(context.Background(), 4, NewTask{Title: "  Buy milk  ", DueDate: strPtr("2024-03-10")})
	require.NoError(t, err)
	assert.Equal(t, uint(11), task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, model.TaskStatusPending, task.Status)
	mockRepo.AssertExpectations(t)
}

func TestTaskService_CreateRejectsBlankTitle(t *testing.T) {
	mockRepo := new(MockTaskRepository)

	_, err := NewTaskService(mockRepo).Create(context.Background(), 4, NewTask{Title: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.EqualError(t, err, "Title is required")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTaskService_GetOwned(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Task{ID: 1, UserID: 10}, nil)
	mockRepo.On("FindByID", mock.Anything, uint(2)).Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("FindByID", mock.Anything, uint(3)).Return(nil, errors.New("broken pipe"))
	svc := NewTaskService(mockRepo)

	task, err := svc.GetOwned(context.Background(), 10, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), task.ID)

	_, err = svc.GetOwned(context.Background(), 20, 1)
	assert.Equal(t, ErrTaskForbidden, err)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.GetOwned(context.Background(), 10, 2)
	assert.Equal(t, ErrTaskNotFound, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.GetOwned(context.Background(), 10, 3)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)

	// Get itself does not look at ownership
	task, err = svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint(10), task.UserID)
}

func TestTaskService_Update(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("Update", mock.Anything, uint(1), map[string]interface{}{"status": model.TaskStatusCompleted}).Return(nil)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Task{ID: 1, Status: model.TaskStatusCompleted}, nil)
	svc := NewTaskService(mockRepo)

	task, err := svc.Update(context.Background(), 1, TaskPatch{Status: strPtr("COMPLETED")})
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusCompleted, task.Status)
	mockRepo.AssertExpectations(t)
}

func TestTaskService_UpdateRejectsUnknownStatus(t *testing.T) {
	mockRepo := new(MockTaskRepository)

	_, err := NewTaskService(mockRepo).Update(context.Background(), 1, TaskPatch{Status: strPtr("DONE")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskService_UpdateMissingAfterWrite(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("Update", mock.Anything, uint(8), mock.Anything).Return(nil)
	mockRepo.On("FindByID", mock.Anything, uint(8)).Return(nil, gorm.ErrRecordNotFound)

	_, err := NewTaskService(mockRepo).Update(context.Background(), 8, TaskPatch{Title: strPtr("x")})
	assert.Equal(t, ErrTaskNotFound, err)
}

func TestTaskService_Remove(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("Delete", mock.Anything, uint(1)).Return(nil)
	mockRepo.On("Delete", mock.Anything, uint(2)).Return(errors.New("locked"))
	svc := NewTaskService(mockRepo)

	assert.NoError(t, svc.Remove(context.Background(), 1))
	assert.ErrorContains(t, svc.Remove(context.Background(), 2), "locked")
}
