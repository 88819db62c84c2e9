package srs

import (
	"errors"
	"fmt"
	"time"

	"github.com/phrazzld/scry-scheduler/internal/domain"
)

// Common errors
var (
	ErrNilSchedule = errors.New("card schedule cannot be nil")

	// ErrInvalidQuality wraps domain.ErrInvalidArgument.
	ErrInvalidQuality = fmt.Errorf("%w: quality must be between %d and %d",
		domain.ErrInvalidArgument, domain.MinQuality, domain.MaxQuality)
)

// Result is the outcome of a personalized review.
type Result struct {
	Schedule   *domain.CardSchedule
	Strategy   Strategy
	Adjustment Adjustment
}

// Service defines the interface for scheduling algorithm operations
type Service interface {
	// Review applies plain SM-2 to the current state.
	Review(
		current *domain.CardSchedule,
		quality int,
		now time.Time,
	) (*domain.CardSchedule, error)

	// ReviewWithPersonalization applies SM-2 followed by the personalization
	// layer. The returned ease factor always lies within the configured bounds.
	ReviewWithPersonalization(
		current *domain.CardSchedule,
		quality int,
		p Personalization,
		now time.Time,
	) (*Result, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduling service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new scheduling service with custom parameters
func NewServiceWithParams(params *Params) Service {
	if params == nil {
		params = NewDefaultParams()
	}
	return &defaultService{
		params: params,
	}
}

// Review implements Service.
func (s *defaultService) Review(
	current *domain.CardSchedule,
	quality int,
	now time.Time,
) (*domain.CardSchedule, error) {
	if err := validateInput(current, quality); err != nil {
		return nil, err
	}
	return calculateNextSchedule(current, quality, now, s.params), nil
}

// ReviewWithPersonalization implements Service.
func (s *defaultService) ReviewWithPersonalization(
	current *domain.CardSchedule,
	quality int,
	p Personalization,
	now time.Time,
) (*Result, error) {
	if err := validateInput(current, quality); err != nil {
		return nil, err
	}

	next := calculateNextSchedule(current, quality, now, s.params)
	adj := adjustmentFor(p, quality, s.params)
	applyAdjustment(next, adj, s.params)

	strategy := p.Strategy()
	if quality < domain.PassingQuality {
		strategy = StrategyNone
	}

	return &Result{Schedule: next, Strategy: strategy, Adjustment: adj}, nil
}

func validateInput(current *domain.CardSchedule, quality int) error {
	if current == nil {
		return ErrNilSchedule
	}
	if quality < domain.MinQuality || quality > domain.MaxQuality {
		return ErrInvalidQuality
	}
	return nil
}
