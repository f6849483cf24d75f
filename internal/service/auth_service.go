package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"taskmanager/internal/auth"
	apperrors "taskmanager/internal/errors"
	"taskmanager/internal/model"
	"taskmanager/internal/repository"
)

var (
	// ErrInvalidCredentials is returned for an unknown user and a wrong password alike.
	ErrInvalidCredentials = apperrors.Wrap(apperrors.ErrUnauthorized, "invalid credentials")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = apperrors.Wrap(apperrors.ErrConflict, "username already exists")
	// ErrEmailTaken is returned when registering an existing email.
	ErrEmailTaken = apperrors.Wrap(apperrors.ErrConflict, "email already exists")
	// ErrUserAlreadyExists is returned when the store rejects a duplicate user.
	ErrUserAlreadyExists = apperrors.Wrap(apperrors.ErrConflict, "user already exists")
)

// RegisterInput carries registration fields.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *model.User
}

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Login(ctx context.Context, usernameOrEmail, password string) (*LoginResult, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	hasher     *auth.PasswordHasher
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, hasher *auth.PasswordHasher) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		hasher:     hasher,
	}
}

// Register creates a user with a hashed password.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if err := validateRegistration(&input); err != nil {
		return nil, err
	}

	usernameTaken, emailTaken, err := s.userRepo.ExistsByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil {
		return nil, fmt.Errorf("check user existence: %w", err)
	}
	if usernameTaken {
		return nil, ErrUsernameTaken
	}
	if emailTaken {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates by username, falling back to email, and issues a session token.
func (s *authService) Login(ctx context.Context, usernameOrEmail, password string) (*LoginResult, error) {
	identifier := strings.TrimSpace(usernameOrEmail)
	if identifier == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.findForLogin(ctx, identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.hasher.VerifyDummy(password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *authService) findForLogin(ctx context.Context, identifier string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, identifier)
	if err == nil || !errors.Is(err, gorm.ErrRecordNotFound) || !strings.Contains(identifier, "@") {
		return user, err
	}
	return s.userRepo.FindByEmail(ctx, identifier)
}
