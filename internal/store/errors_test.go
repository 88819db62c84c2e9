package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("some error"), false},
		{"ErrNotFound", ErrNotFound, true},
		{"wrapped ErrCardNotFound", fmt.Errorf("failed to find card: %w", ErrCardNotFound), true},
		{"ErrDeckNotFound", ErrDeckNotFound, true},
		{"ErrScheduleNotFound", ErrScheduleNotFound, true},
		{"ErrStreakNotFound", ErrStreakNotFound, true},
		{"ErrCacheEntryNotFound", ErrCacheEntryNotFound, true},
		{"ErrUnavailable", ErrUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFoundError(tt.err); got != tt.expected {
				t.Errorf("IsNotFoundError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStoreErrorsWrapDomainTaxonomy(t *testing.T) {
	assert.ErrorIs(t, ErrPatternNotFound, domain.ErrNotFound)
	assert.ErrorIs(t, ErrMasteryNotFound, domain.ErrNotFound)
	assert.ErrorIs(t, ErrUnavailable, domain.ErrStoreUnavailable)
	assert.True(t, IsUnavailableError(fmt.Errorf("query: %w", ErrUnavailable)))
	assert.False(t, IsUnavailableError(ErrDuplicate))
	assert.True(t, IsDuplicateError(fmt.Errorf("insert: %w", ErrDuplicate)))
}

func TestStoreError(t *testing.T) {
	t.Run("with wrapped error", func(t *testing.T) {
		err := NewStoreError("card_schedule", "upsert", "failed to save schedule", ErrUnavailable)

		assert.Equal(t,
			"upsert operation on card_schedule failed: failed to save schedule: database store unavailable",
			err.Error())
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

		var storeErr *StoreError
		assert.True(t, errors.As(fmt.Errorf("outer: %w", err), &storeErr))
		assert.Equal(t, "card_schedule", storeErr.Entity)
	})

	t.Run("without wrapped error", func(t *testing.T) {
		err := NewStoreError("study_streak", "get", "invalid user", nil)
		assert.Equal(t, "get operation on study_streak failed: invalid user", err.Error())
		assert.Nil(t, err.Unwrap())
	})
}
