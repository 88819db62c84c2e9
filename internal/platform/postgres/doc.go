// Package postgres implements the internal/store repositories on PostgreSQL
// through database/sql and the pgx driver. Every store accepts a store.DBTX,
// so the same type serves a pooled *sql.DB or a *sql.Tx; per-card and
// per-user writes lock their rows with SELECT ... FOR UPDATE. The schema is
// embedded as goose migrations (see Migrations).
package postgres
