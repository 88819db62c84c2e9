package statscache

import (
	"fmt"
	"time"
)

// RetentionKey is the key of the windowed retention rate.
func RetentionKey(windowDays int) string {
	return fmt.Sprintf("retention:%d", windowDays)
}

// SummaryKey is the key of the windowed review summary.
func SummaryKey(windowDays int) string {
	return fmt.Sprintf("summary:%d", windowDays)
}

// TodayKey is the key of today's recommendation. It changes every local hour
// since the current time bucket is part of the result.
func TodayKey(local time.Time) string {
	return fmt.Sprintf("recommendations:today:%s:%s:%02d",
		local.Location(), local.Format(time.DateOnly), local.Hour())
}

// WeeklyKey is the key of a multi-day recommendation starting on local's date.
func WeeklyKey(local time.Time, days int) string {
	return fmt.Sprintf("recommendations:%d:%s:%s", days, local.Location(), local.Format(time.DateOnly))
}
