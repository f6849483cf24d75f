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

// UserService exposes user lookups.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService with repository.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, fmt.Sprintf("User with ID %d not found", id))
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
