package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestServiceError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ServiceError
		expected string
	}{
		{
			name:     "with underlying error",
			err:      NewServiceError("streak", "update_streak", "failed to save streak", errors.New("database connection failed")),
			expected: "streak service update_streak failed: failed to save streak: database connection failed",
		},
		{
			name:     "without underlying error",
			err:      NewServiceError("card_review", "review_card", "no schedule", nil),
			expected: "card_review service review_card failed: no schedule",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestServiceError_ErrorsIs(t *testing.T) {
	tests := []struct {
		name     string
		wrapped  error
		sentinel error
	}{
		{name: "card not found", wrapped: store.ErrCardNotFound, sentinel: domain.ErrNotFound},
		{name: "store unavailable", wrapped: store.ErrUnavailable, sentinel: domain.ErrStoreUnavailable},
		{name: "invalid argument", wrapped: domain.InvalidArgument("quality", "must be between 0 and 5"), sentinel: domain.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fmt.Errorf("handler: %w", NewServiceError("study", "get_study_queue", "failed", tt.wrapped))

			assert.ErrorIs(t, err, tt.sentinel)

			var serviceErr *ServiceError
			assert.True(t, errors.As(err, &serviceErr))
			assert.Equal(t, "get_study_queue", serviceErr.Operation)
		})
	}
}
