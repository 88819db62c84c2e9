package recommend

import (
	"time"

	"github.com/phrazzld/scry-scheduler/internal/domain"
)

// DefaultDaysAhead is the length of the weekly plan.
const DefaultDaysAhead = 7

const slotsPerDay = 3

// Weekly builds one DailySchedule per entry of dueCounts, starting on the
// calendar day of start. dueCounts[d] is the number of cards available on day d.
func Weekly(pattern *domain.LearningPattern, dueCounts []int, start time.Time) domain.StudyRecommendations {
	recs := domain.StudyRecommendations{Days: make([]domain.DailySchedule, 0, len(dueCounts))}
	y, m, d := start.Date()
	day0 := time.Date(y, m, d, 0, 0, 0, 0, start.Location())

	var ranked []rankedBucket
	if pattern != nil {
		recs.HasData = true
		ranked = rankBuckets(&pattern.TimeOfDayPerformance, 3, -1)
		if len(ranked) > slotsPerDay {
			ranked = ranked[:slotsPerDay]
		}
	}

	for i, due := range dueCounts {
		day := domain.DailySchedule{
			Date:     day0.AddDate(0, 0, i),
			DueCount: due,
			Slots:    []domain.StudySlot{},
		}
		for rank, rb := range ranked {
			session := SizeSession(pattern.LearningVelocity, rb.perf.SuccessRate, due)
			if session.ExpectedCards == 0 {
				continue
			}
			day.Slots = append(day.Slots, domain.StudySlot{
				Bucket:          rb.bucket,
				Hour:            rb.bucket.StartHour(),
				SuccessRate:     rb.perf.SuccessRate,
				DurationMinutes: session.DurationMinutes,
				ExpectedCards:   session.ExpectedCards,
				Priority:        slotPriority(rank == 0, due, rb.perf),
			})
		}
		recs.Days = append(recs.Days, day)
	}
	return recs
}

func slotPriority(topRanked bool, dueCount int, perf domain.SlotPerformance) domain.Priority {
	switch {
	case topRanked && dueCount > 10 && perf.SuccessRate >= 0.8,
		perf.SuccessRate >= 0.8 && perf.ReviewCount >= 10 && dueCount >= 5:
		return domain.PriorityHigh
	case dueCount < 5 || perf.SuccessRate < 0.6:
		return domain.PriorityLow
	default:
		return domain.PriorityMedium
	}
}
