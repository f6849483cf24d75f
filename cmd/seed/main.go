package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"taskmanager/internal/auth"
	"taskmanager/internal/config"
	"taskmanager/internal/db"
	apperrors "taskmanager/internal/errors"
	"taskmanager/internal/logger"
	"taskmanager/internal/model"
	"taskmanager/internal/repository"
	"taskmanager/internal/service"
)

const (
	demoUsername = "demo"
	demoEmail    = "demo@example.com"
	demoPassword = "demo123"
)

// seedTask is a demo task due on the given day of the current month.
type seedTask struct {
	title       string
	description string
	day         int
}

var demoTasks = []seedTask{
	{title: "Plan the week", description: "Review goals and block out focus time", day: 1},
	{title: "Pay utility bills", day: 5},
	{title: "Dentist appointment", description: "Bring insurance card", day: 12},
	{title: "Quarterly report", description: "Draft numbers for the team sync", day: 20},
	{title: "Book flights", day: 28},
}

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	gormDB, err := db.Open(cfg)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := db.Migrate(gormDB); err != nil {
		zl.Fatal("failed to run migrations", zap.Error(err))
	}
	zl.Info("database ready", zap.String("driver", cfg.DBDriver))

	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	authService := service.NewAuthService(userRepo, auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry), auth.NewPasswordHasher())
	taskService := service.NewTaskService(taskRepo)

	ctx := context.Background()
	user, err := ensureDemoUser(ctx, authService, userRepo)
	if err != nil {
		zl.Fatal("failed to seed demo user", zap.Error(err))
	}

	created, err := seedTasks(ctx, taskService, user.ID, time.Now().UTC())
	if err != nil {
		zl.Fatal("failed to seed tasks", zap.Error(err))
	}

	zl.Info("seed completed",
		zap.String("username", user.Username),
		zap.String("password", demoPassword),
		zap.Int("tasks_created", created),
	)
}

// ensureDemoUser registers the demo account, or returns it when it already exists.
func ensureDemoUser(ctx context.Context, authService service.AuthService, users repository.UserRepository) (*model.User, error) {
	user, err := authService.Register(ctx, service.RegisterInput{
		Username: demoUsername,
		Email:    demoEmail,
		Password: demoPassword,
	})
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrConflict) {
		return nil, err
	}

	user, err = users.FindByUsername(ctx, demoUsername)
	if err != nil {
		return nil, fmt.Errorf("load demo user: %w", err)
	}
	return user, nil
}

// seedTasks creates the demo tasks, dated within the month of now.
func seedTasks(ctx context.Context, tasks service.TaskService, userID uint, now time.Time) (int, error) {
	created := 0
	for _, st := range demoTasks {
		due := model.NewDate(now.Year(), now.Month(), st.day).String()
		input := service.NewTask{Title: st.title, DueDate: &due}
		if st.description != "" {
			desc := st.description
			input.Description = &desc
		}
		if _, err := tasks.Create(ctx, userID, input); err != nil {
			return created, fmt.Errorf("create task %q: %w", st.title, err)
		}
		created++
	}
	return created, nil
}
