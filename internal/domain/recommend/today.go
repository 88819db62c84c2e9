package recommend

import (
	"time"

	"github.com/phrazzld/scry-scheduler/internal/domain"
)

// waitConfidence is reported when the user is advised to wait for a better slot.
const waitConfidence = 0.6

// Today builds the recommendation for the current moment. now must already be
// in the user's timezone. A nil pattern yields HasData=false.
func Today(pattern *domain.LearningPattern, dueCount int, now time.Time) domain.TodayRecommendation {
	current := domain.BucketForHour(now.Hour())
	rec := domain.TodayRecommendation{
		DueCount:      dueCount,
		CurrentBucket: current,
		Action:        domain.ActionNone,
		EnergyLevel:   domain.EnergyMedium,
	}
	if pattern == nil {
		return rec
	}
	rec.HasData = true

	slot := pattern.TimeOfDayPerformance.Get(current)
	rec.IsOptimalTime = slot.SuccessRate > 0.75 && slot.ReviewCount >= 5
	rec.EnergyLevel = energyLevel(slot.SuccessRate)
	rec.NextOptimalTime = nextOptimalTime(&pattern.TimeOfDayPerformance, now.Hour())

	switch {
	case dueCount > 0 && rec.IsOptimalTime:
		session := SizeSession(pattern.LearningVelocity, slot.SuccessRate, dueCount)
		rec.Action = domain.ActionStartNow
		rec.DurationMinutes = session.DurationMinutes
		rec.ExpectedCards = session.ExpectedCards
		rec.Confidence = slot.SuccessRate
	case dueCount > 0 && rec.NextOptimalTime != nil:
		rec.Action = domain.ActionWait
		rec.Confidence = waitConfidence
	}
	return rec
}

// nextOptimalTime picks the best bucket whose representative hour is still
// ahead today.
func nextOptimalTime(p *domain.TimeOfDayPerformance, hour int) *domain.OptimalTime {
	for _, rb := range rankBuckets(p, 3, 0.7) {
		if rb.bucket.StartHour() > hour {
			return &domain.OptimalTime{
				Bucket:      rb.bucket,
				Hour:        rb.bucket.StartHour(),
				SuccessRate: rb.perf.SuccessRate,
			}
		}
	}
	return nil
}
