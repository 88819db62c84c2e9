// Package stats computes aggregate statistics over the review log.
package stats

import (
	"math"
	"time"

	"github.com/phrazzld/scry-scheduler/internal/domain"
)

// DefaultWindowDays is the retention window used when none is given.
const DefaultWindowDays = 30

// WeightedSampleThreshold is the number of reviews from which the
// ease-weighted estimator replaces the simple success ratio.
const WeightedSampleThreshold = 10

// inWindow returns the reviews at or after now - windowDays.
func inWindow(reviews []domain.ReviewRecord, windowDays int, now time.Time) []domain.ReviewRecord {
	cutoff := now.Add(-time.Duration(windowDays) * 24 * time.Hour)
	out := make([]domain.ReviewRecord, 0, len(reviews))
	for _, r := range reviews {
		if !r.ReviewedAt.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out
}

// RetentionRate estimates the share of successful recalls in the window.
//
// With fewer than WeightedSampleThreshold reviews the plain success ratio is
// used. Otherwise each review weighs 1/easeFactorBefore so that hard cards
// count more. An empty window yields HasData=false.
func RetentionRate(reviews []domain.ReviewRecord, windowDays int, now time.Time) domain.RetentionRate {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	result := domain.RetentionRate{WindowDays: windowDays}

	window := inWindow(reviews, windowDays, now)
	if len(window) == 0 {
		return result
	}
	result.HasData = true
	result.SampleSize = len(window)

	var pct float64
	if len(window) >= WeightedSampleThreshold {
		var successWeight, totalWeight float64
		for _, r := range window {
			w := 1 / math.Max(r.EaseFactorBefore, domain.MinEaseFactor)
			totalWeight += w
			if r.WasSuccessful {
				successWeight += w
			}
		}
		pct = successWeight / totalWeight * 100
		result.Weighted = true
	} else {
		successes := 0
		for _, r := range window {
			if r.WasSuccessful {
				successes++
			}
		}
		pct = float64(successes) / float64(len(window)) * 100
	}

	result.Percent = math.Max(0, math.Min(100, roundTo(pct, 1)))
	return result
}

// Summarize aggregates the reviews in the window.
func Summarize(reviews []domain.ReviewRecord, windowDays int, now time.Time) domain.ReviewSummary {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	summary := domain.ReviewSummary{WindowDays: windowDays}

	var qualitySum, responseSum float64
	responses := 0
	for _, r := range inWindow(reviews, windowDays, now) {
		summary.TotalReviews++
		if r.WasSuccessful {
			summary.SuccessfulReviews++
		}
		qualitySum += float64(r.Quality)
		if r.ResponseTimeMs != nil {
			responseSum += float64(*r.ResponseTimeMs)
			responses++
		}
	}

	if summary.TotalReviews > 0 {
		summary.AverageQuality = roundTo(qualitySum/float64(summary.TotalReviews), 2)
	}
	if responses > 0 {
		summary.AverageResponseTimeMs = roundTo(responseSum/float64(responses), 1)
	}
	return summary
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
