package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"social_server/config"
	"social_server/internal/bootstrap"
	"social_server/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout = 30 * time.Second // Maximum time to wait for graceful shutdown
)

var cfg *config.Config

// rootCmd starts the API server when no subcommand is given
var rootCmd = &cobra.Command{
	Use:           "social-api",
	Short:         "Developer social network API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load .env file if exists (for local development)
		if err := godotenv.Load(); err != nil {
			logger.Debug("No .env file found, using environment variables")
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		logger.Init(logger.Config{
			Level:   logger.ParseLevel(cfg.LogLevel),
			Service: "social-api",
			Console: cfg.ConsoleLogs(),
		})
		return nil
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create MongoDB indexes and exit",
	RunE:  runIndexes,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(indexesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("%v", err)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	app, cleanup, err := bootstrap.NewAPI(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	// Graceful shutdown with timeout
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down API server (timeout: %v)...", shutdownTimeout)
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			logger.Error("Error shutting down: %v", err)
			return
		}
		logger.Info("API server shut down gracefully")
	}()

	addr := ":" + cfg.Port
	logger.Info("Starting API server on %s", addr)
	return app.Listen(addr)
}

func runIndexes(cmd *cobra.Command, args []string) error {
	deps, cleanup, err := bootstrap.NewDependencies(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	if err := deps.EnsureIndexes(ctx); err != nil {
		return err
	}
	logger.Info("MongoDB indexes are up to date")
	return nil
}
