// Package domain contains the entities and value objects of the scheduling
// engine: cards and their scheduling state, the review audit log, per-user
// learning aggregates, study streaks and statistics cache entries. Types here
// carry no persistence or transport concerns.
package domain
