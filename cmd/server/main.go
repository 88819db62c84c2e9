// Package main runs the scheduling API server and its database migrations.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/phrazzld/scry-scheduler/internal/config"
	"github.com/phrazzld/scry-scheduler/internal/platform/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

type options struct {
	migrate   string
	configDir string
	envFile   string
}

func parseFlags(args []string) (options, error) {
	var opts options
	flags := flag.NewFlagSet("server", flag.ContinueOnError)
	flags.StringVar(&opts.migrate, "migrate", "", "run a migration command (up|down|status|version) and exit")
	flags.StringVar(&opts.configDir, "config-dir", ".", "directory searched for config.yaml")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before configuration, if present")
	if err := flags.Parse(args); err != nil {
		return options{}, err
	}
	if opts.migrate != "" && !isMigrationCommand(opts.migrate) {
		return options{}, fmt.Errorf("unknown migration command %q", opts.migrate)
	}
	return opts, nil
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	if err := loadEnvFile(opts.envFile); err != nil {
		return err
	}

	cfg, err := config.LoadFrom(opts.configDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("cache_enabled", cfg.Cache.Enabled),
		slog.Bool("events_enabled", cfg.Events.Enabled))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := setupDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if opts.migrate != "" {
		return runMigrations(ctx, db, opts.migrate, log)
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		return err
	}
	return app.run(ctx)
}

// loadEnvFile loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}
