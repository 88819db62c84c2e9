package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-scheduler/internal/platform/postgres"
	"github.com/pressly/goose/v3"
)

// MigrationTableName is the table goose records applied versions in.
const MigrationTableName = "schema_migrations"

var migrationCommands = map[string]bool{
	"up":      true,
	"down":    true,
	"status":  true,
	"version": true,
}

func isMigrationCommand(cmd string) bool {
	return migrationCommands[cmd]
}

// slogGooseLogger forwards goose output to slog. Fatalf does not exit so the
// caller decides how to terminate.
type slogGooseLogger struct {
	log *slog.Logger
}

func (l slogGooseLogger) Printf(format string, v ...any) {
	l.log.Info(fmt.Sprintf(format, v...))
}

func (l slogGooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(fmt.Sprintf(format, v...))
}

// configureGoose points goose at the embedded migrations.
func configureGoose(log *slog.Logger) error {
	goose.SetBaseFS(postgres.Migrations)
	goose.SetTableName(MigrationTableName)
	goose.SetLogger(slogGooseLogger{log: log})
	return goose.SetDialect("postgres")
}

// runMigrations executes one goose command against db.
func runMigrations(ctx context.Context, db *sql.DB, cmd string, log *slog.Logger) error {
	log = log.With(slog.String("component", "migrations"), slog.String("command", cmd))
	if !isMigrationCommand(cmd) {
		return fmt.Errorf("unknown migration command %q", cmd)
	}
	if err := configureGoose(log); err != nil {
		return fmt.Errorf("failed to configure migrations: %w", err)
	}

	log.Info("running migrations")
	if err := goose.RunContext(ctx, cmd, db, postgres.MigrationsDir); err != nil {
		return fmt.Errorf("migration %s failed: %w", cmd, err)
	}
	log.Info("migrations finished")
	return nil
}
