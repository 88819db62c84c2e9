// Package store defines the persistence interfaces of the scheduling engine:
// key reads, index-range scans, upserts and append-only inserts over cards,
// scheduling state, the review log, learning aggregates, streaks and the
// statistics cache. Every store can be bound to a transaction with WithTx.
package store
