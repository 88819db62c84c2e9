// Package statscache memoizes per-user aggregate computations in the
// stats_cache table. Entries are keyed by user and cache key, expire after a
// TTL and are discarded when their schema version differs from the running
// one. Every lookup is reported to an Observer as a hit, miss or expiry.
package statscache
