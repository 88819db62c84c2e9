package srs

import (
	"math"
	"time"

	"github.com/phrazzld/scry-scheduler/internal/domain"
)

// calculateNewEaseFactor applies the SM-2 ease update for a successful review.
//
// The ease factor moves by 0.1 - (5-q)(0.08 + (5-q)0.02): +0.10 for q=5,
// unchanged for q=4, -0.14 for q=3. Only the lower bound is enforced here;
// the upper bound is applied after personalization.
func calculateNewEaseFactor(currentEF float64, quality int, params *Params) float64 {
	miss := float64(domain.MaxQuality - quality)
	newEF := currentEF + (0.1 - miss*(0.08+miss*0.02))

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}
	return newEF
}

// calculateNewInterval returns the interval in days for a successful review.
//
// The first two successes use the fixed ladder; afterwards the previous
// interval grows by the ease factor the card had before this review.
func calculateNewInterval(repetition, currentInterval int, easeFactor float64, params *Params) int {
	switch repetition {
	case 1:
		return params.FirstInterval
	case 2:
		return params.SecondInterval
	default:
		return int(math.Round(float64(currentInterval) * easeFactor))
	}
}

// calculateNextReviewDate converts an interval into a due timestamp.
func calculateNextReviewDate(interval int, now time.Time) time.Time {
	return now.Add(time.Duration(interval) * 24 * time.Hour)
}

// calculateNextSchedule creates the state that follows a review of quality q.
// The input is never modified.
func calculateNextSchedule(
	current *domain.CardSchedule,
	quality int,
	now time.Time,
	params *Params,
) *domain.CardSchedule {
	next := current.Clone()

	next.ReviewCount++
	reviewedAt := now
	next.LastReviewedAt = &reviewedAt
	next.UpdatedAt = now

	if quality < domain.PassingQuality {
		next.Repetition = 0
		next.Interval = params.FailureInterval
	} else {
		next.Repetition = current.Repetition + 1
		next.Interval = calculateNewInterval(
			next.Repetition,
			current.Interval,
			current.EaseFactor,
			params,
		)
		next.EaseFactor = calculateNewEaseFactor(current.EaseFactor, quality, params)
	}

	due := calculateNextReviewDate(next.Interval, now)
	next.DueDate = &due

	return next
}
