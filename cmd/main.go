package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mapleleafu/spritedex/config"
	"github.com/mapleleafu/spritedex/repository"
	"github.com/mapleleafu/spritedex/utils"
	"github.com/spf13/cobra"
)

func main() {
	var envFile string

	rootCmd := &cobra.Command{
		Use:           "spritedex",
		Short:         "Sprite collection backend",
		Long:          `Serves the auth API and the sprite socket gateway backed by PokeAPI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file loaded before the environment")

	rootCmd.AddCommand(
		serveCmd(&envFile),
		migrateCmd(&envFile),
		usersCmd(&envFile),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// setup loads configuration and installs the process logger.
func setup(envFile string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, err
	}
	logger, err := utils.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// openDB connects to the configured store and applies pending migrations.
func openDB(ctx context.Context, cfg *config.Config) (*repository.DB, error) {
	db, err := repository.Open(ctx, cfg.DBDriver, cfg.DataSource())
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
