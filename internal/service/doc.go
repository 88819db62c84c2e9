// Package service contains the application use cases of the scheduler. Each
// use case lives in its own subpackage and orchestrates the pure scheduling
// packages under internal/domain with the repositories defined in
// internal/store:
//
//   - card_review: recording reviews and initializing cards
//   - study: study queues and next-review information
//   - streak: daily study streaks
//   - insights: retention, summaries and study-time recommendations
//
// Services receive dependencies through constructor injection, run writes in
// a single transaction with row locks, and publish events and invalidate
// cached statistics only after a commit. Errors are wrapped in ServiceError
// so the API layer can map the underlying domain sentinel.
package service
