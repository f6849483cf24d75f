package router

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"taskmanager/internal/config"
	apperrors "taskmanager/internal/errors"
	"taskmanager/internal/handler"
	appmw "taskmanager/internal/middleware"
)

// Register wires routes and middleware. authGate guards every route that
// needs an authenticated caller.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *zap.Logger,
	authGate echo.MiddlewareFunc,
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	taskHandler *handler.TaskHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(appmw.RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderContentType, echo.HeaderAuthorization, echo.HeaderAccept,
		},
		ExposeHeaders:    []string{echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	e.Validator = NewValidator()

	e.GET("/healthz", healthHandler.Healthz)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// Secured routes
	e.GET("/auth/profile", authHandler.Profile, authGate)
	e.GET("/users/profile", userHandler.Profile, authGate)

	tasks := e.Group("/tasks", authGate)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PATCH("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns a validator that reports fields by their JSON names.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface. Failures come back as a
// single validation error naming the first offending field.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.NewValidationError(err.Error())
	}
	return apperrors.NewValidationError(describe(fieldErrs[0]))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
