package model

import "time"

// TaskStatus represents the completion state of a task.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "PENDING"
	TaskStatusCompleted TaskStatus = "COMPLETED"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	return s == TaskStatusPending || s == TaskStatusCompleted
}

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Description *string    `json:"description" gorm:"type:text"`
	Status      TaskStatus `json:"status" gorm:"type:varchar(20);not null;default:'PENDING';index"`
	DueDate     *Date      `json:"dueDate" gorm:"type:date;index"`
	UserID      uint       `json:"userId" gorm:"not null;index"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
