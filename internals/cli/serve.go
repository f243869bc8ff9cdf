package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"performance_backend/internals/configs"
	database "performance_backend/internals/databases"
	helper "performance_backend/internals/helpers"
	"performance_backend/internals/features/performances/repository"
	"performance_backend/internals/features/performances/service"
	"performance_backend/internals/middlewares"
	routes "performance_backend/internals/route"
)

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

// NewApp wires middlewares and routes onto a fresh fiber app.
func NewApp(d routes.Deps, opts middlewares.Options) *fiber.App {
	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          helper.FromFiberError,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
	})

	middlewares.SetupMiddlewares(app, opts)
	routes.SetupRoutes(app, d)
	return app
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	backend, err := database.NewBackend(configs.DBDriver)
	if err != nil {
		return err
	}
	db, err := database.ConnectDB(backend)
	if err != nil {
		return err
	}
	defer database.Close(db)

	repo := repository.NewPerformanceRepository(db, backend)
	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err = repo.Migrate(migrateCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	database.WarmUp(db)

	svc := service.NewPerformanceService(configs.Location(), time.Now)

	app := NewApp(routes.Deps{
		DB:      db,
		Backend: backend.Name(),
		Repo:    repo,
		Svc:     svc,
	}, middlewares.Options{
		AllowOrigins:   configs.AllowOrigins,
		Timezone:       configs.AppTimezone,
		RequestTimeout: configs.RequestTimeout,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Printf("✅ Listening on :%s", configs.Port)
		errCh <- app.Listen("0.0.0.0:" + configs.Port)
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	return app.ShutdownWithContext(shutdownCtx)
}
