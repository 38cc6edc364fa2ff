package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/suPer8Hu/job-assistant/internal/bootstrap"
	"github.com/suPer8Hu/job-assistant/internal/config"
	"github.com/suPer8Hu/job-assistant/internal/logger"
)

const app = "chatctl"

var (
	// Used for flags.
	dsn   string
	debug bool

	rootCmd = &cobra.Command{
		Use:          app,
		Short:        "chatctl talks to the job portal chatbot engine without the HTTP layer",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "database DSN (overrides DB_DSN)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(chatCmd, askCmd, seedCmd, tokenCmd)
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() config.Config {
	cfg := config.Load()
	if dsn != "" {
		cfg.DBDSN = dsn
	}
	if debug {
		cfg.LogDebug = true
	}
	return cfg
}

func openApp(ctx context.Context) (*bootstrap.App, error) {
	cfg := loadConfig()
	zl, err := logger.New(false, cfg.LogDebug)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return bootstrap.New(ctx, cfg, zl)
}
