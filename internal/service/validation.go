package service

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	apperrors "taskmanager/internal/errors"
	"taskmanager/internal/model"
)

const minPasswordLength = 6

var validate = validator.New()

// validateRegistration trims identity fields in place and checks them.
func validateRegistration(in *RegisterInput) error {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	switch {
	case in.Username == "":
		return apperrors.NewValidationError("username is required")
	case in.Email == "":
		return apperrors.NewValidationError("email is required")
	case validate.Var(in.Email, "email") != nil:
		return apperrors.NewValidationError("email must be an email")
	case in.Password == "":
		return apperrors.NewValidationError("password is required")
	case utf8.RuneCountInString(in.Password) < minPasswordLength:
		return apperrors.NewValidationError("password must be longer than or equal to 6 characters")
	}
	return nil
}

// normalizeNewTask builds the task to insert. Status is always PENDING.
func normalizeNewTask(userID uint, in NewTask) (*model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("Title is required")
	}

	task := &model.Task{
		Title:  title,
		Status: model.TaskStatusPending,
		UserID: userID,
	}
	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		task.Description = &desc
	}
	if in.DueDate != nil {
		due, err := ParseDueDate(*in.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = due
	}
	return task, nil
}

// normalizeTaskPatch converts the provided fields into column updates.
func normalizeTaskPatch(in TaskPatch) (map[string]interface{}, error) {
	fields := map[string]interface{}{}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperrors.NewValidationError("Title is required")
		}
		fields["title"] = title
	}
	if in.Description != nil {
		fields["description"] = strings.TrimSpace(*in.Description)
	}
	if in.Status != nil {
		status, err := ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		fields["status"] = status
	}
	if in.DueDate != nil {
		due, err := ParseDueDate(*in.DueDate)
		if err != nil {
			return nil, err
		}
		if due == nil {
			fields["due_date"] = nil
		} else {
			fields["due_date"] = *due
		}
	}
	return fields, nil
}

// ParseStatus accepts exactly PENDING or COMPLETED.
func ParseStatus(s string) (model.TaskStatus, error) {
	status := model.TaskStatus(s)
	if !status.Valid() {
		return "", apperrors.NewValidationError("status must be one of the following values: PENDING, COMPLETED")
	}
	return status, nil
}

// ParseDueDate parses a due date. An empty or blank string means no due date.
func ParseDueDate(s string) (*model.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return nil, apperrors.NewValidationError("dueDate must be a valid ISO 8601 date string")
	}
	return &d, nil
}
