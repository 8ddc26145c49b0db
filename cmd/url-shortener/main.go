package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/vadimbarashkov/flashurl/internal/app"
	"github.com/vadimbarashkov/flashurl/internal/config"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to the YAML config file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *configPath); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		// No logger configuration exists yet, fall back to the defaults.
		defaults, _ := config.Load("")
		app.NewLogger(defaults).Error("failed to load config", "err", err)
		return err
	}

	logger := app.NewLogger(cfg)

	if err := app.Run(ctx, cfg, logger); err != nil {
		logger.Error("application stopped with error", "err", err)
		return err
	}

	logger.Info("application stopped")
	return nil
}
