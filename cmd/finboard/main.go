package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"finboard/internal/app"
	"finboard/internal/config"
	"finboard/internal/log"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		os.Stderr.WriteString("warning: could not load .env: " + err.Error() + "\n")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		os.Stderr.WriteString("invalid configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", log.FieldError, err)
		os.Exit(1)
	}

	// Land on the dashboard; the shell bounces to the login view if the
	// restored session is absent or expired.
	if err := client.Shell.Navigate("/dashboard"); err != nil {
		logger.Error("initial navigation failed", log.FieldError, err)
		os.Exit(1)
	}

	if err := client.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("client exited", log.FieldError, err)
		os.Exit(1)
	}
}
