package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ayash-Bera/dorkgen/internal/config"
	"github.com/Ayash-Bera/dorkgen/internal/server"
	"github.com/Ayash-Bera/dorkgen/pkg/utils"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		utils.GetLogger().WithError(err).Error("Server exited with error")
		os.Exit(1)
	}
}

func run() error {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	logger := utils.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.SetLevel(utils.ParseLevel(cfg.Log.Level))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, cfg, logger)
}
