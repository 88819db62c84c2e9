// Package config loads server, database, scheduling, cache and event settings
// from config.yaml and SCRY_-prefixed environment variables, applies defaults
// and validates the result.
package config
