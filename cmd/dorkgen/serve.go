package main

import (
	"os/signal"
	"syscall"

	"github.com/Ayash-Bera/dorkgen/internal/config"
	"github.com/Ayash-Bera/dorkgen/internal/server"
	"github.com/Ayash-Bera/dorkgen/pkg/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Start the dorkgen HTTP server. Settings come from config.yaml and the
environment; flags override both.

Examples:
  dorkgen serve
  dorkgen serve --port 9090 --redis-url redis://localhost:6379/0`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("config-dir", ".", "Directory holding config.yaml")
	cmd.Flags().String("port", "", "HTTP port (overrides config)")
	cmd.Flags().String("redis-url", "", "Redis URL for the result cache (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	// A missing .env is normal outside development
	_ = godotenv.Load()

	dir, _ := cmd.Flags().GetString("config-dir")
	cfg, err := config.LoadFrom(dir)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port, _ = cmd.Flags().GetString("port")
	}
	if cmd.Flags().Changed("redis-url") {
		cfg.Redis.URL, _ = cmd.Flags().GetString("redis-url")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := utils.GetLogger()
	logger.SetLevel(utils.ParseLevel(cfg.Log.Level))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, cfg, logger)
}
