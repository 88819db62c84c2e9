package srs

import (
	"testing"
)

func TestNewDefaultParams(t *testing.T) {
	params := NewDefaultParams()

	if params.MinEaseFactor != 1.3 {
		t.Errorf("MinEaseFactor = %f, want 1.3", params.MinEaseFactor)
	}
	if params.MaxEaseFactor != 3.0 {
		t.Errorf("MaxEaseFactor = %f, want 3.0", params.MaxEaseFactor)
	}
	if params.FirstInterval != 1 || params.SecondInterval != 6 || params.FailureInterval != 1 {
		t.Errorf("unexpected ladder %d/%d/%d",
			params.FailureInterval, params.FirstInterval, params.SecondInterval)
	}
	if params.MaxEaseDelta != 0.3 {
		t.Errorf("MaxEaseDelta = %f, want 0.3", params.MaxEaseDelta)
	}
	if params.MinMultiplier != 0.5 || params.MaxMultiplier != 2.0 {
		t.Errorf("multiplier bounds = [%f,%f], want [0.5,2.0]",
			params.MinMultiplier, params.MaxMultiplier)
	}
	if params.DefaultConfidence != 0.5 {
		t.Errorf("DefaultConfidence = %f, want 0.5", params.DefaultConfidence)
	}
}

func TestNewParams(t *testing.T) {
	config := ParamsConfig{
		MaxEaseFactor:     2.8,
		SecondInterval:    4,
		FastLearnerFactor: 1.25,
	}

	params := NewParams(config)

	if params.MaxEaseFactor != 2.8 {
		t.Errorf("MaxEaseFactor = %f, want 2.8", params.MaxEaseFactor)
	}
	if params.SecondInterval != 4 {
		t.Errorf("SecondInterval = %d, want 4", params.SecondInterval)
	}
	if params.FastLearnerFactor != 1.25 {
		t.Errorf("FastLearnerFactor = %f, want 1.25", params.FastLearnerFactor)
	}

	// Non-overridden values keep their defaults
	defaults := NewDefaultParams()
	if params.MinEaseFactor != defaults.MinEaseFactor {
		t.Errorf("MinEaseFactor = %f, want default %f", params.MinEaseFactor, defaults.MinEaseFactor)
	}
	if params.SlowLearnerVelocity != defaults.SlowLearnerVelocity {
		t.Errorf("SlowLearnerVelocity = %f, want default %f",
			params.SlowLearnerVelocity, defaults.SlowLearnerVelocity)
	}
}
