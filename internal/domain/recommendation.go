package domain

import "time"

// EnergyLevel is a coarse label derived from a bucket's success rate.
type EnergyLevel string

const (
	EnergyHigh   EnergyLevel = "high"
	EnergyMedium EnergyLevel = "medium"
	EnergyLow    EnergyLevel = "low"
)

// Priority ranks a recommended study slot.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// TodayAction is what the user is advised to do right now.
type TodayAction string

const (
	ActionNone     TodayAction = "none"
	ActionStartNow TodayAction = "start_now"
	ActionWait     TodayAction = "wait"
)

// OptimalTime points at a bucket later today that suits the user.
type OptimalTime struct {
	Bucket      TimeBucket `json:"bucket"`
	Hour        int        `json:"hour"`
	SuccessRate float64    `json:"success_rate"`
}

// TodayRecommendation is the advice for the current day.
type TodayRecommendation struct {
	HasData         bool         `json:"has_data"`
	DueCount        int          `json:"due_count"`
	CurrentBucket   TimeBucket   `json:"current_bucket"`
	IsOptimalTime   bool         `json:"is_optimal_time"`
	NextOptimalTime *OptimalTime `json:"next_optimal_time,omitempty"`
	EnergyLevel     EnergyLevel  `json:"energy_level"`
	Action          TodayAction  `json:"action"`
	DurationMinutes int          `json:"duration_minutes,omitempty"`
	ExpectedCards   int          `json:"expected_cards,omitempty"`
	Confidence      float64      `json:"confidence,omitempty"`
}

// StudySlot is one recommended session within a day.
type StudySlot struct {
	Bucket          TimeBucket `json:"bucket"`
	Hour            int        `json:"hour"`
	SuccessRate     float64    `json:"success_rate"`
	DurationMinutes int        `json:"duration_minutes"`
	ExpectedCards   int        `json:"expected_cards"`
	Priority        Priority   `json:"priority"`
}

// DailySchedule lists the slots recommended for one calendar day.
type DailySchedule struct {
	Date     time.Time   `json:"date"`
	DueCount int         `json:"due_count"`
	Slots    []StudySlot `json:"slots"`
}

// StudyRecommendations is the multi-day plan.
type StudyRecommendations struct {
	HasData bool            `json:"has_data"`
	Days    []DailySchedule `json:"days"`
}
