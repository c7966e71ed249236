package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/coreshare/rental-service/internal/app/background"
	"github.com/coreshare/rental-service/internal/app/setup"
	"github.com/coreshare/rental-service/internal/delivery/http/handlers"
	"github.com/coreshare/rental-service/internal/infrastructure/migrate"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}

	// Reading config, dependencies and usecases
	deps, err := setup.InitializeDependencies()
	if err != nil {
		log.Fatalf("failed to init dependencies: %v", err)
	}
	cfg := deps.Config

	// Logger
	logger := setupLogger(cfg.Env)
	slog.SetDefault(logger)

	// SQL migrations
	if cfg.Migrations.Path != "" {
		if err := migrate.RunMigrations(deps.DB, cfg.Migrations.Path); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	usecases, err := setup.InitializeUseCases(deps)
	if err != nil {
		log.Fatalf("failed to init usecases: %v", err)
	}

	// HTTP server
	v := validator.New()
	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = cfg.HTTPServer.ReadTimeout
	e.Server.WriteTimeout = cfg.HTTPServer.WriteTimeout

	handlers.RegisterMiddlewares(e)
	handlers.RegisterRoutes(e, &handlers.Handlers{
		Rental:  handlers.NewRentalHandler(usecases.RentalUsecase, v, logger),
		Gpu:     handlers.NewGpuHandler(usecases.GpuUsecase, v, logger),
		Payment: handlers.NewPaymentHandler(usecases.PaymentUsecase, v, logger),
		Stats:   handlers.NewStatsHandler(usecases.StatsUsecase, usecases.PaymentUsecase, logger),
		Health:  handlers.NewHealthHandler(deps.DB),
	})

	// Background workers
	tasks := background.NewBackgroundTasks(usecases.RentalUsecase, cfg.Payment.Sweep)
	tasks.StartAll(context.Background())

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	slog.Info("starting rental service", "addr", addr, "env", cfg.Env)
	e.Logger.Fatal(e.Start(addr))
}

func setupLogger(env string) *slog.Logger {
	if env == "local" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
