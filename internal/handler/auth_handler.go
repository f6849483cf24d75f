package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"taskmanager/internal/errors"
	"taskmanager/internal/middleware"
	"taskmanager/internal/model"
	"taskmanager/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Username string `json:"username" validate:"required" example:"johndoe"`
	Email    string `json:"email" validate:"required,email" example:"john.doe@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"password123"`
}

// LoginRequest represents a user login request. Username is accepted as an
// older spelling of UsernameOrEmail.
type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" validate:"required_without=Username" example:"johndoe"`
	Username        string `json:"username,omitempty" swaggerignore:"true"`
	Password        string `json:"password" validate:"required" example:"password123"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      *model.User `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	if err := c.Validate(&req); err != nil {
		return errors.EchoError(err)
	}

	user, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.EchoError(err)
	}

	return c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	if err := c.Validate(&req); err != nil {
		return errors.EchoError(err)
	}

	identifier := req.UsernameOrEmail
	if identifier == "" {
		identifier = req.Username
	}

	result, err := h.authService.Login(c.Request().Context(), identifier, req.Password)
	if err != nil {
		return errors.EchoError(err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      result.User,
	})
}

// Profile godoc
// @Summary Current identity
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func currentUser(c echo.Context) (*model.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, errors.EchoError(errors.ErrUnauthorized)
	}
	return user, nil
}

func invalidBody() error {
	return errors.EchoError(errors.NewValidationError("invalid request body"))
}
