package domain

import (
	"time"

	"github.com/google/uuid"
)

// StudyStreak is the per-user daily streak state. Dates are calendar dates in
// Timezone, stored at midnight UTC.
type StudyStreak struct {
	UserID            uuid.UUID  `json:"user_id"`
	CurrentStreak     int        `json:"current_streak"`
	LongestStreak     int        `json:"longest_streak"`
	LastStudyDate     *time.Time `json:"last_study_date,omitempty"`
	StreakStartDate   *time.Time `json:"streak_start_date,omitempty"`
	Timezone          string     `json:"timezone"`
	MilestonesReached []int      `json:"milestones_reached"`
	LastMilestone     *int       `json:"last_milestone,omitempty"`
	TotalStudyDays    int        `json:"total_study_days"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// NewStudyStreak returns the empty streak for a user.
func NewStudyStreak(userID uuid.UUID, timezone string, now time.Time) *StudyStreak {
	return &StudyStreak{
		UserID:            userID,
		Timezone:          timezone,
		MilestonesReached: []int{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// HasMilestone reports whether m was already reached.
func (s *StudyStreak) HasMilestone(m int) bool {
	for _, r := range s.MilestonesReached {
		if r == m {
			return true
		}
	}
	return false
}

// StreakEvent is the visible outcome of a streak update.
type StreakEvent string

const (
	StreakStarted   StreakEvent = "started"
	StreakContinued StreakEvent = "continued"
	StreakNone      StreakEvent = "none"
)

// BrokenStreak is reported when a streak ended before a new one started.
type BrokenStreak struct {
	PreviousStreak int `json:"previous_streak"`
	DaysMissed     int `json:"days_missed"`
}

// StreakUpdate is the result of recording a study day.
type StreakUpdate struct {
	CurrentStreak  int           `json:"current_streak"`
	LongestStreak  int           `json:"longest_streak"`
	Event          StreakEvent   `json:"streak_event"`
	Broken         *BrokenStreak `json:"broken,omitempty"`
	IsNewMilestone bool          `json:"is_new_milestone"`
	Milestone      *int          `json:"milestone,omitempty"`
}
