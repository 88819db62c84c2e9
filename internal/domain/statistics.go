package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RetentionRate is the windowed success rate of a user's reviews.
// HasData is false when the window holds no reviews; Percent is then
// meaningless and must not be shown.
type RetentionRate struct {
	Percent    float64 `json:"percent"`
	HasData    bool    `json:"has_data"`
	SampleSize int     `json:"sample_size"`
	Weighted   bool    `json:"weighted"`
	WindowDays int     `json:"window_days"`
}

// ReviewSummary aggregates the reviews of a window.
type ReviewSummary struct {
	WindowDays            int     `json:"window_days"`
	TotalReviews          int     `json:"total_reviews"`
	SuccessfulReviews     int     `json:"successful_reviews"`
	AverageQuality        float64 `json:"average_quality"`
	AverageResponseTimeMs float64 `json:"average_response_time_ms"`
}

// HitType classifies a cache lookup.
type HitType string

const (
	CacheHit     HitType = "hit"
	CacheMiss    HitType = "miss"
	CacheExpired HitType = "expired"
)

// StatsCacheEntry is a cached aggregate computation for one user.
type StatsCacheEntry struct {
	UserID     uuid.UUID       `json:"user_id"`
	CacheKey   string          `json:"cache_key"`
	Data       json.RawMessage `json:"data"`
	ComputedAt time.Time       `json:"computed_at"`
	ExpiresAt  time.Time       `json:"expires_at"`
	Version    int             `json:"version"`
}

// IsFresh reports whether the entry can be served at now for version.
func (e *StatsCacheEntry) IsFresh(now time.Time, version int) bool {
	return now.Before(e.ExpiresAt) && e.Version == version
}

// CacheMetric is an append-only record of one cache lookup.
type CacheMetric struct {
	ID                int64      `json:"id"`
	Timestamp         time.Time  `json:"timestamp"`
	CacheKey          string     `json:"cache_key"`
	UserID            *uuid.UUID `json:"user_id,omitempty"`
	HitType           HitType    `json:"hit_type"`
	ComputationTimeMs *int64     `json:"computation_time_ms,omitempty"`
	TTLMs             *int64     `json:"ttl_ms,omitempty"`
}
