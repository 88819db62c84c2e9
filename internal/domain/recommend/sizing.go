// Package recommend turns a user's learning pattern and due counts into
// study-time recommendations.
package recommend

import (
	"math"
	"sort"

	"github.com/phrazzld/scry-scheduler/internal/domain"
)

// Session length bounds, in minutes.
const (
	MinSessionMinutes = 15
	MaxSessionMinutes = 45
)

const minutesPerDay = 1440

// Session is the size of one recommended study session.
type Session struct {
	DurationMinutes int
	ExpectedCards   int
}

// SizeSession estimates how long a session should be to work through
// availableCards at the user's pace in a bucket with the given success rate.
// Duration always lies within [MinSessionMinutes, MaxSessionMinutes] and
// ExpectedCards never exceeds availableCards.
func SizeSession(learningVelocity, successRate float64, availableCards int) Session {
	if availableCards < 0 {
		availableCards = 0
	}

	adjustedRate := learningVelocity / minutesPerDay * successRate
	if adjustedRate <= 0 {
		return Session{DurationMinutes: MaxSessionMinutes}
	}

	minutes := float64(availableCards) / adjustedRate
	duration := int(math.Round(math.Max(MinSessionMinutes, math.Min(MaxSessionMinutes, minutes))))

	expected := int(math.Round(adjustedRate * float64(duration)))
	if expected > availableCards {
		expected = availableCards
	}
	return Session{DurationMinutes: duration, ExpectedCards: expected}
}

type rankedBucket struct {
	bucket domain.TimeBucket
	perf   domain.SlotPerformance
}

// rankBuckets returns the buckets with at least minReviews reviews and a
// success rate above minRate, best success rate first. Ties keep bucket order.
func rankBuckets(p *domain.TimeOfDayPerformance, minReviews int, minRate float64) []rankedBucket {
	var out []rankedBucket
	for _, b := range domain.TimeBuckets {
		perf := p.Get(b)
		if perf.ReviewCount >= minReviews && perf.SuccessRate > minRate {
			out = append(out, rankedBucket{bucket: b, perf: perf})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].perf.SuccessRate > out[j].perf.SuccessRate
	})
	return out
}

func energyLevel(successRate float64) domain.EnergyLevel {
	switch {
	case successRate > 0.8:
		return domain.EnergyHigh
	case successRate < 0.6:
		return domain.EnergyLow
	default:
		return domain.EnergyMedium
	}
}
