package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"registrydash/internal/app"
	"registrydash/internal/config"
	apierrors "registrydash/internal/errors"
	"registrydash/internal/infrastructure"
	"registrydash/pkg/contracts"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	logger.Info("Starting registry dashboard", slog.String("version", contracts.GetFullVersionString()))

	application, err := app.NewApplication(context.Background(), cfg, logger)
	if err != nil {
		var appErr *apierrors.AppError
		if errors.As(err, &appErr) {
			fmt.Fprintln(os.Stderr, appErr.UserMessage())
		}
		logger.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(context.Background()); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
