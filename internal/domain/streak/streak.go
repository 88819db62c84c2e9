// Package streak implements the daily study streak state machine.
package streak

import (
	"sort"
	"time"

	"github.com/phrazzld/scry-scheduler/internal/domain"
)

// DefaultMilestones are the streak lengths that are celebrated once.
var DefaultMilestones = []int{7, 14, 30, 60, 100, 180, 365}

// CalendarDate returns the calendar date of t in loc, as midnight UTC.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween counts calendar days from date a to date b.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// Apply records a study session on studyDate in loc and returns the new state
// together with what changed. The input streak is not modified.
//
// A session on the day after the last study date continues the streak. A
// longer gap, or no previous session, starts a new streak of one; a non-empty
// previous streak is then reported as broken. Repeat sessions on the same
// day and sessions dated before the last study date change nothing.
func Apply(
	current *domain.StudyStreak,
	studyDate time.Time,
	loc *time.Location,
	milestones []int,
) (*domain.StudyStreak, domain.StreakUpdate) {
	return ApplyOnDate(current, CalendarDate(studyDate, loc), loc, milestones)
}

// ApplyOnDate is Apply for a session already expressed as a calendar day in
// loc. Only the year, month and day of date are used.
func ApplyOnDate(
	current *domain.StudyStreak,
	date time.Time,
	loc *time.Location,
	milestones []int,
) (*domain.StudyStreak, domain.StreakUpdate) {
	next := clone(current)
	y, m, d := date.Date()
	date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	update := domain.StreakUpdate{
		CurrentStreak: current.CurrentStreak,
		LongestStreak: current.LongestStreak,
		Event:         domain.StreakNone,
	}

	if current.LastStudyDate != nil {
		gap := daysBetween(*current.LastStudyDate, date)
		switch {
		case gap <= 0:
			return next, update
		case gap == 1:
			next.CurrentStreak++
			update.Event = domain.StreakContinued
		default:
			if current.CurrentStreak > 0 {
				update.Broken = &domain.BrokenStreak{
					PreviousStreak: current.CurrentStreak,
					DaysMissed:     gap - 1,
				}
			}
			restart(next, date)
			update.Event = domain.StreakStarted
		}
	} else {
		restart(next, date)
		update.Event = domain.StreakStarted
	}

	next.LastStudyDate = &date
	next.Timezone = loc.String()
	next.TotalStudyDays++
	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}

	if m, ok := newMilestone(next, milestones); ok {
		next.MilestonesReached = append(next.MilestonesReached, m)
		sort.Ints(next.MilestonesReached)
		next.LastMilestone = &m
		update.IsNewMilestone = true
		update.Milestone = &m
	}

	update.CurrentStreak = next.CurrentStreak
	update.LongestStreak = next.LongestStreak
	return next, update
}

func restart(s *domain.StudyStreak, date time.Time) {
	s.CurrentStreak = 1
	start := date
	s.StreakStartDate = &start
}

func newMilestone(s *domain.StudyStreak, milestones []int) (int, bool) {
	for _, m := range milestones {
		if s.CurrentStreak == m && !s.HasMilestone(m) {
			return m, true
		}
	}
	return 0, false
}

func clone(s *domain.StudyStreak) *domain.StudyStreak {
	c := *s
	c.MilestonesReached = append([]int(nil), s.MilestonesReached...)
	if s.LastStudyDate != nil {
		d := *s.LastStudyDate
		c.LastStudyDate = &d
	}
	if s.StreakStartDate != nil {
		d := *s.StreakStartDate
		c.StreakStartDate = &d
	}
	if s.LastMilestone != nil {
		m := *s.LastMilestone
		c.LastMilestone = &m
	}
	return &c
}
