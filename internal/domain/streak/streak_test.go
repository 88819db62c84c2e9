package streak

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func streakWith(current, longest int, last *time.Time) *domain.StudyStreak {
	s := domain.NewStudyStreak(uuid.New(), "UTC", time.Now())
	s.CurrentStreak = current
	s.LongestStreak = longest
	s.LastStudyDate = last
	return s
}

func TestApplyFirstSession(t *testing.T) {
	t.Parallel()
	s := streakWith(0, 0, nil)

	next, update := Apply(s, time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC), time.UTC, DefaultMilestones)

	assert.Equal(t, domain.StreakStarted, update.Event)
	assert.Equal(t, 1, update.CurrentStreak)
	assert.Equal(t, 1, update.LongestStreak)
	assert.Nil(t, update.Broken)
	assert.Equal(t, 1, next.TotalStudyDays)
	require.NotNil(t, next.StreakStartDate)
	assert.Equal(t, date(2026, 6, 1), *next.StreakStartDate)
	assert.Equal(t, date(2026, 6, 1), *next.LastStudyDate)
}

func TestApplyContinued(t *testing.T) {
	t.Parallel()
	yesterday := date(2026, 6, 1)
	s := streakWith(3, 5, &yesterday)

	next, update := Apply(s, date(2026, 6, 2).Add(10*time.Hour), time.UTC, DefaultMilestones)

	assert.Equal(t, domain.StreakContinued, update.Event)
	assert.Equal(t, 4, update.CurrentStreak)
	assert.Equal(t, 5, update.LongestStreak)
	assert.Equal(t, 4, next.CurrentStreak)
	assert.Equal(t, 3, s.CurrentStreak, "input must not change")
}

func TestApplySameDay(t *testing.T) {
	t.Parallel()
	today := date(2026, 6, 2)
	s := streakWith(4, 4, &today)
	s.TotalStudyDays = 4

	next, update := Apply(s, today.Add(20*time.Hour), time.UTC, DefaultMilestones)

	assert.Equal(t, domain.StreakNone, update.Event)
	assert.Equal(t, 4, update.CurrentStreak)
	assert.Equal(t, 4, next.TotalStudyDays)
	assert.False(t, update.IsNewMilestone)
}

func TestApplyOutOfOrder(t *testing.T) {
	t.Parallel()
	last := date(2026, 6, 10)
	s := streakWith(2, 2, &last)

	next, update := Apply(s, date(2026, 6, 8), time.UTC, DefaultMilestones)

	assert.Equal(t, domain.StreakNone, update.Event)
	assert.Equal(t, last, *next.LastStudyDate)
}

func TestApplyBroken(t *testing.T) {
	t.Parallel()
	last := date(2026, 6, 1)
	s := streakWith(6, 9, &last)

	// Three calendar days after the last session: two days missed.
	next, update := Apply(s, date(2026, 6, 4), time.UTC, DefaultMilestones)

	assert.Equal(t, domain.StreakStarted, update.Event)
	assert.Equal(t, 1, update.CurrentStreak)
	assert.Equal(t, 9, update.LongestStreak)
	require.NotNil(t, update.Broken)
	assert.Equal(t, 6, update.Broken.PreviousStreak)
	assert.Equal(t, 2, update.Broken.DaysMissed)
	assert.Equal(t, date(2026, 6, 4), *next.StreakStartDate)
}

func TestApplyRestartFromZeroIsNotBroken(t *testing.T) {
	t.Parallel()
	last := date(2026, 6, 1)
	s := streakWith(0, 9, &last)

	_, update := Apply(s, date(2026, 6, 10), time.UTC, DefaultMilestones)
	assert.Equal(t, domain.StreakStarted, update.Event)
	assert.Nil(t, update.Broken)
}

func TestApplyUsesCalendarDaysInTimezone(t *testing.T) {
	t.Parallel()
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	last := date(2026, 6, 1)
	s := streakWith(1, 1, &last)

	// 16:00 UTC on June 1 is already June 2 in Tokyo.
	next, update := Apply(s, time.Date(2026, 6, 1, 16, 0, 0, 0, time.UTC), tokyo, DefaultMilestones)

	assert.Equal(t, domain.StreakContinued, update.Event)
	assert.Equal(t, date(2026, 6, 2), *next.LastStudyDate)
	assert.Equal(t, "Asia/Tokyo", next.Timezone)
}

func TestApplyOnDateKeepsLocalDayWestOfUTC(t *testing.T) {
	t.Parallel()
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	last := date(2026, 10, 16)
	s := streakWith(3, 3, &last)

	next, update := ApplyOnDate(s, date(2026, 10, 17), ny, DefaultMilestones)

	assert.Equal(t, domain.StreakContinued, update.Event)
	assert.Equal(t, 4, update.CurrentStreak)
	assert.Equal(t, date(2026, 10, 17), *next.LastStudyDate)

	// The same midnight taken as an instant is still October 16 in New York.
	_, asInstant := Apply(s, date(2026, 10, 17), ny, DefaultMilestones)
	assert.Equal(t, domain.StreakNone, asInstant.Event)
}

func TestApplyOnDateIgnoresClockTime(t *testing.T) {
	t.Parallel()
	s := streakWith(0, 0, nil)

	next, _ := ApplyOnDate(s, time.Date(2026, 10, 17, 23, 59, 0, 0, time.UTC), time.UTC, DefaultMilestones)

	assert.Equal(t, date(2026, 10, 17), *next.LastStudyDate)
}

func TestApplyMilestones(t *testing.T) {
	t.Parallel()
	last := date(2026, 6, 6)
	s := streakWith(6, 6, &last)

	next, update := Apply(s, date(2026, 6, 7), time.UTC, DefaultMilestones)
	require.True(t, update.IsNewMilestone)
	assert.Equal(t, 7, *update.Milestone)
	assert.Equal(t, []int{7}, next.MilestonesReached)
	assert.Equal(t, 7, *next.LastMilestone)

	// Reaching 7 again after a break is not a new milestone.
	again := streakWith(6, 7, &last)
	again.MilestonesReached = []int{7}
	_, update = Apply(again, date(2026, 6, 7), time.UTC, DefaultMilestones)
	assert.False(t, update.IsNewMilestone)
	assert.Nil(t, update.Milestone)
}

func TestApplySequence(t *testing.T) {
	t.Parallel()
	s := streakWith(0, 0, nil)
	day := date(2026, 1, 1)

	for i := 0; i < 14; i++ {
		s, _ = Apply(s, day.AddDate(0, 0, i), time.UTC, DefaultMilestones)
	}

	assert.Equal(t, 14, s.CurrentStreak)
	assert.Equal(t, 14, s.LongestStreak)
	assert.Equal(t, 14, s.TotalStudyDays)
	assert.Equal(t, []int{7, 14}, s.MilestonesReached)
}
