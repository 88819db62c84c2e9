// Package logger configures the process-wide slog JSON logger from
// config.ServerConfig and carries request-scoped loggers through a context.
package logger
