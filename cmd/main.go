package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/RaikyD/velocity-express/internal/config"
	"github.com/RaikyD/velocity-express/internal/logger"
	"github.com/RaikyD/velocity-express/internal/migrate"
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "velocity",
		Short: "VeloCity Express shipments service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serveCmd.RunE(cmd, nil)
		},
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd, migrateCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger.Init(cfg.LOG_LEVEL)
		defer logger.Sync()

		return serve(cmd.Context(), cfg)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger.Init(cfg.LOG_LEVEL)
		defer logger.Sync()

		if cfg.MemoryMode() {
			return fmt.Errorf("DB_STRING is not set")
		}
		return migrate.Up(cfg.DB_STRING)
	},
}
