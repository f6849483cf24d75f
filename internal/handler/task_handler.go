package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"taskmanager/internal/errors"
	"taskmanager/internal/service"
)

// TaskHandler handles task endpoints. Every route runs behind the auth gate.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	Title       string  `json:"title" example:"Complete project documentation"`
	Description *string `json:"description,omitempty" example:"Write detailed documentation for the project"`
	DueDate     *string `json:"dueDate,omitempty" example:"2023-12-31"`
}

// UpdateTaskRequest represents a partial task update. Omitted fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty" example:"Updated project documentation"`
	Description *string `json:"description,omitempty" example:"Updated description with more details"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=PENDING COMPLETED" enums:"PENDING,COMPLETED" example:"COMPLETED"`
	DueDate     *string `json:"dueDate,omitempty" example:"2023-12-31"`
}

// List godoc
// @Summary Get all tasks for the authenticated user
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Param day query int false "Day of month"
// @Param mode query string false "Filter granularity" Enums(day, month, year) default(day)
// @Success 200 {array} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.List(c.Request().Context(), caller.ID, dateFilterFromQuery(c))
	if err != nil {
		return errors.EchoError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// Get godoc
// @Summary Get a task by ID
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetOwned(c.Request().Context(), caller.ID, id)
	if err != nil {
		return errors.EchoError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// Create godoc
// @Summary Create a new task
// @Description The task always starts as PENDING.
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequest true "Task data"
// @Success 201 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	task, err := h.taskService.Create(c.Request().Context(), caller.ID, service.NewTask{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return errors.EchoError(err)
	}
	return c.JSON(http.StatusCreated, task)
}

// Update godoc
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body UpdateTaskRequest true "Fields to change"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [patch]
func (h *TaskHandler) Update(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil {
		return errors.EchoError(err)
	}

	ctx := c.Request().Context()
	if _, err := h.taskService.GetOwned(ctx, caller.ID, id); err != nil {
		return errors.EchoError(err)
	}

	task, err := h.taskService.Update(ctx, id, service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return errors.EchoError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// Delete godoc
// @Summary Delete a task
// @Tags tasks
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := taskID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if _, err := h.taskService.GetOwned(ctx, caller.ID, id); err != nil {
		return errors.EchoError(err)
	}
	if err := h.taskService.Remove(ctx, id); err != nil {
		return errors.EchoError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func taskID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.EchoError(errors.NewValidationError("invalid task id"))
	}
	return uint(id), nil
}

// dateFilterFromQuery reads year, month, day and mode. The mode defaults to
// day; values that are missing, zero or not integers count as absent.
func dateFilterFromQuery(c echo.Context) service.DateFilter {
	mode := strings.ToLower(strings.TrimSpace(c.QueryParam("mode")))
	if mode == "" {
		mode = string(service.DateModeDay)
	}
	return service.DateFilter{
		Mode:  service.DateMode(mode),
		Year:  queryInt(c, "year"),
		Month: queryInt(c, "month"),
		Day:   queryInt(c, "day"),
	}
}

func queryInt(c echo.Context, name string) int {
	v, err := strconv.Atoi(strings.TrimSpace(c.QueryParam(name)))
	if err != nil {
		return 0
	}
	return v
}
