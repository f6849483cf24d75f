package repository

import (
	"context"

	"gorm.io/gorm"

	"taskmanager/internal/model"
)

// UserRepository defines persistence operations for user credentials.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (usernameTaken, emailTaken bool, err error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, bool, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).
		Select("username", "email").
		Where("username = ? OR email = ?", username, email).
		Find(&users).Error; err != nil {
		return false, false, err
	}

	var usernameTaken, emailTaken bool
	for _, u := range users {
		usernameTaken = usernameTaken || u.Username == username
		emailTaken = emailTaken || u.Email == email
	}
	return usernameTaken, emailTaken, nil
}
