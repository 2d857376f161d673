package main

import (
	"context"
	"log"
	"os"

	"github.com/example/todo-backend/config"
	"github.com/example/todo-backend/modules/api"
	"github.com/example/todo-backend/modules/auth"
	"github.com/example/todo-backend/modules/notification"
	"github.com/example/todo-backend/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

func main() {
	cfg := config.Load()

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Independent modules first, then dependents
	app.Register(auth.NewModule(cfg))
	app.Register(task.NewModule(cfg))
	app.Register(notification.NewModule())
	app.Register(api.NewModule(cfg))

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg *config.Config) {
	log.Println("")
	log.Printf("Task tracking service started on http://localhost:%d", cfg.Port)
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/v1/auth/register  - Register a new user (logs in)")
	log.Println("  POST   /api/v1/auth/login     - Login and get an access token")
	log.Println("  GET    /health                - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  POST   /api/v1/auth/logout    - Verify token, stateless logout")
	log.Println("  GET    /api/v1/me             - Current user profile")
	log.Println("  DELETE /api/v1/me             - Delete account and owned tasks")
	log.Println("  GET    /api/v1/tasks          - List tasks (skip/limit/completed/priority)")
	log.Println("  POST   /api/v1/tasks          - Create a task")
	log.Println("  GET    /api/v1/tasks/:id      - Get a task")
	log.Println("  PUT    /api/v1/tasks/:id      - Update a task (PATCH also accepted)")
	log.Println("  DELETE /api/v1/tasks/:id      - Delete a task")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
