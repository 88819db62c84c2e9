package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TimeBucket is one of the six fixed parts of the day used to aggregate
// review performance.
type TimeBucket int

const (
	BucketEarlyMorning TimeBucket = iota
	BucketMorning
	BucketAfternoon
	BucketEvening
	BucketNight
	BucketLateNight

	numTimeBuckets
)

// TimeBuckets lists every bucket in declaration order.
var TimeBuckets = [numTimeBuckets]TimeBucket{
	BucketEarlyMorning,
	BucketMorning,
	BucketAfternoon,
	BucketEvening,
	BucketNight,
	BucketLateNight,
}

var bucketNames = [numTimeBuckets]string{
	"early_morning",
	"morning",
	"afternoon",
	"evening",
	"night",
	"late_night",
}

// Representative hour shown to users for each bucket.
var bucketStartHours = [numTimeBuckets]int{7, 10, 14, 18, 20, 1}

// BucketForHour maps a local hour (0-23) to its bucket.
func BucketForHour(hour int) TimeBucket {
	switch {
	case hour < 5:
		return BucketLateNight
	case hour < 9:
		return BucketEarlyMorning
	case hour < 13:
		return BucketMorning
	case hour < 17:
		return BucketAfternoon
	case hour < 21:
		return BucketEvening
	default:
		return BucketNight
	}
}

// String returns the wire name of the bucket.
func (b TimeBucket) String() string {
	if b < 0 || b >= numTimeBuckets {
		return fmt.Sprintf("TimeBucket(%d)", int(b))
	}
	return bucketNames[b]
}

// StartHour returns the representative hour for the bucket.
func (b TimeBucket) StartHour() int {
	return bucketStartHours[b]
}

// ParseTimeBucket resolves a wire name to a bucket.
func ParseTimeBucket(s string) (TimeBucket, error) {
	for i, name := range bucketNames {
		if name == s {
			return TimeBucket(i), nil
		}
	}
	return 0, fmt.Errorf("unknown time bucket %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (b TimeBucket) MarshalText() ([]byte, error) {
	if b < 0 || b >= numTimeBuckets {
		return nil, fmt.Errorf("invalid time bucket %d", int(b))
	}
	return []byte(bucketNames[b]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *TimeBucket) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeBucket(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// SlotPerformance aggregates reviews done within one time bucket.
type SlotPerformance struct {
	SuccessRate         float64 `json:"success_rate"`
	ReviewCount         int     `json:"review_count"`
	AverageResponseTime float64 `json:"average_response_time"`
}

// TimeOfDayPerformance holds one SlotPerformance per bucket. It marshals as a
// JSON object keyed by bucket name.
type TimeOfDayPerformance [numTimeBuckets]SlotPerformance

// Get returns the performance for bucket b.
func (p *TimeOfDayPerformance) Get(b TimeBucket) SlotPerformance {
	return p[b]
}

// MarshalJSON implements json.Marshaler.
func (p TimeOfDayPerformance) MarshalJSON() ([]byte, error) {
	m := make(map[string]SlotPerformance, numTimeBuckets)
	for _, b := range TimeBuckets {
		m[b.String()] = p[b]
	}
	return json.Marshal(m)
}

// UnmarshalJSON implements json.Unmarshaler. Unknown keys are rejected and
// missing buckets stay zero.
func (p *TimeOfDayPerformance) UnmarshalJSON(data []byte) error {
	var m map[string]SlotPerformance
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var out TimeOfDayPerformance
	for k, v := range m {
		b, err := ParseTimeBucket(k)
		if err != nil {
			return err
		}
		out[b] = v
	}
	*p = out
	return nil
}

// DifficultyStats summarizes one difficulty tier.
type DifficultyStats struct {
	SuccessRate     float64 `json:"success_rate"`
	AverageInterval float64 `json:"average_interval"`
}

// DifficultyPatterns groups performance by card difficulty.
type DifficultyPatterns struct {
	EasyCards   DifficultyStats `json:"easy_cards"`
	MediumCards DifficultyStats `json:"medium_cards"`
	HardCards   DifficultyStats `json:"hard_cards"`
}

// RetentionPoint is one sample of the retention curve.
type RetentionPoint struct {
	Interval      int     `json:"interval"`
	RetentionRate float64 `json:"retention_rate"`
}

// LearningPattern is the per-user aggregate recomputed by an external job.
type LearningPattern struct {
	UserID                 uuid.UUID            `json:"user_id"`
	AverageSuccessRate     float64              `json:"average_success_rate"`
	LearningVelocity       float64              `json:"learning_velocity"`
	TimeOfDayPerformance   TimeOfDayPerformance `json:"time_of_day_performance"`
	DifficultyPatterns     DifficultyPatterns   `json:"difficulty_patterns"`
	PersonalEaseFactorBias float64              `json:"personal_ease_factor_bias"`
	RetentionCurve         []RetentionPoint     `json:"retention_curve"`
	LastUpdated            time.Time            `json:"last_updated"`
}
