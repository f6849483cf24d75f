package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskmanager/internal/errors"
	"taskmanager/internal/service"
)

// UserHandler serves user endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Profile godoc
// @Summary Get the caller's stored profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.svc.GetUser(c.Request().Context(), caller.ID)
	if err != nil {
		return errors.EchoError(err)
	}
	return c.JSON(http.StatusOK, user)
}
