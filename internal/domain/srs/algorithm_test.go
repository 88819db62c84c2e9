package srs

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
)

func newSchedule(t *testing.T, repetition, interval int, ease float64) *domain.CardSchedule {
	t.Helper()
	s, err := domain.NewCardSchedule(uuid.New(), uuid.New(), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Failed to create schedule: %v", err)
	}
	s.Repetition = repetition
	s.Interval = interval
	s.EaseFactor = ease
	return s
}

func TestCalculateNewInterval(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name       string
		repetition int
		current    int
		ef         float64
		expected   int
	}{
		{"first success", 1, 1, 2.5, 1},
		{"second success", 2, 1, 2.5, 6},
		{"third success grows by ease", 3, 6, 2.5, 15},
		{"rounds half up", 4, 15, 2.7, 41}, // 40.5
		{"minimum ease", 5, 10, 1.3, 13},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := calculateNewInterval(tc.repetition, tc.current, tc.ef, params)
			if got != tc.expected {
				t.Errorf("Expected interval %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestCalculateNewEaseFactor(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		current  float64
		quality  int
		expected float64
	}{
		{"perfect recall raises ease", 2.5, 5, 2.6},
		{"good recall keeps ease", 2.5, 4, 2.5},
		{"hard recall lowers ease", 2.5, 3, 2.36},
		{"no upper clamp at this stage", 2.95, 5, 3.05},
		{"lower bound enforced", 1.35, 3, 1.3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			newEF := calculateNewEaseFactor(tc.current, tc.quality, params)

			epsilon := 0.001
			if math.Abs(newEF-tc.expected) > epsilon {
				t.Errorf("Expected ease factor %f, got %f", tc.expected, newEF)
			}
		})
	}
}

func TestCalculateNextReviewDate(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 29, 0, 30, 0, 0, time.UTC)

	got := calculateNextReviewDate(6, now)
	if want := now.Add(6 * 24 * time.Hour); !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestCalculateNextSchedule(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

	t.Run("failure resets repetition and interval", func(t *testing.T) {
		for q := 0; q < domain.PassingQuality; q++ {
			current := newSchedule(t, 4, 40, 2.2)
			next := calculateNextSchedule(current, q, now, params)

			if next.Repetition != 0 {
				t.Errorf("q=%d: expected repetition 0, got %d", q, next.Repetition)
			}
			if next.Interval != 1 {
				t.Errorf("q=%d: expected interval 1, got %d", q, next.Interval)
			}
			if next.EaseFactor != 2.2 {
				t.Errorf("q=%d: expected ease unchanged at 2.2, got %f", q, next.EaseFactor)
			}
			if !next.DueDate.Equal(now.Add(24 * time.Hour)) {
				t.Errorf("q=%d: expected due tomorrow, got %v", q, next.DueDate)
			}
		}
	})

	t.Run("input is not modified", func(t *testing.T) {
		current := newSchedule(t, 2, 6, 2.5)
		_ = calculateNextSchedule(current, 5, now, params)

		if current.Repetition != 2 || current.Interval != 6 || current.EaseFactor != 2.5 {
			t.Errorf("input mutated: %+v", current)
		}
		if current.DueDate != nil || current.ReviewCount != 0 {
			t.Errorf("input mutated: %+v", current)
		}
	})

	t.Run("bookkeeping", func(t *testing.T) {
		current := newSchedule(t, 0, 1, 2.5)
		next := calculateNextSchedule(current, 4, now, params)

		if next.ReviewCount != 1 {
			t.Errorf("Expected review count 1, got %d", next.ReviewCount)
		}
		if next.LastReviewedAt == nil || !next.LastReviewedAt.Equal(now) {
			t.Errorf("Expected last reviewed at %v, got %v", now, next.LastReviewedAt)
		}
	})
}
