package srs

// Params defines all configurable parameters for the scheduling algorithm and
// its personalization layers.
type Params struct {
	// Core limits
	MinEaseFactor float64
	MaxEaseFactor float64

	// Fixed intervals of the SM-2 ladder, in days
	FailureInterval int
	FirstInterval   int
	SecondInterval  int

	// Bounds applied to a personalization adjustment before it is used
	MaxEaseDelta  float64
	MinMultiplier float64
	MaxMultiplier float64

	// Learning velocity thresholds (cards mastered per day) for pattern adjustment
	FastLearnerVelocity float64
	SlowLearnerVelocity float64
	FastLearnerFactor   float64
	SlowLearnerFactor   float64

	// Confidence reported when no mastery profile raises it
	DefaultConfidence float64
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance.
// Zero values keep the default.
type ParamsConfig struct {
	MinEaseFactor float64
	MaxEaseFactor float64

	FailureInterval int
	FirstInterval   int
	SecondInterval  int

	MaxEaseDelta  float64
	MinMultiplier float64
	MaxMultiplier float64

	FastLearnerVelocity float64
	SlowLearnerVelocity float64
	FastLearnerFactor   float64
	SlowLearnerFactor   float64

	DefaultConfidence float64
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor: 1.3,
		MaxEaseFactor: 3.0,

		FailureInterval: 1,
		FirstInterval:   1,
		SecondInterval:  6,

		MaxEaseDelta:  0.3,
		MinMultiplier: 0.5,
		MaxMultiplier: 2.0,

		FastLearnerVelocity: 1.5,
		SlowLearnerVelocity: 0.5,
		FastLearnerFactor:   1.1,
		SlowLearnerFactor:   0.9,

		DefaultConfidence: 0.5,
	}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	// Core limits
	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.MaxEaseFactor > 0 {
		params.MaxEaseFactor = config.MaxEaseFactor
	}

	// Ladder
	if config.FailureInterval > 0 {
		params.FailureInterval = config.FailureInterval
	}
	if config.FirstInterval > 0 {
		params.FirstInterval = config.FirstInterval
	}
	if config.SecondInterval > 0 {
		params.SecondInterval = config.SecondInterval
	}

	// Adjustment bounds
	if config.MaxEaseDelta > 0 {
		params.MaxEaseDelta = config.MaxEaseDelta
	}
	if config.MinMultiplier > 0 {
		params.MinMultiplier = config.MinMultiplier
	}
	if config.MaxMultiplier > 0 {
		params.MaxMultiplier = config.MaxMultiplier
	}

	// Pattern thresholds
	if config.FastLearnerVelocity > 0 {
		params.FastLearnerVelocity = config.FastLearnerVelocity
	}
	if config.SlowLearnerVelocity > 0 {
		params.SlowLearnerVelocity = config.SlowLearnerVelocity
	}
	if config.FastLearnerFactor > 0 {
		params.FastLearnerFactor = config.FastLearnerFactor
	}
	if config.SlowLearnerFactor > 0 {
		params.SlowLearnerFactor = config.SlowLearnerFactor
	}

	if config.DefaultConfidence > 0 {
		params.DefaultConfidence = config.DefaultConfidence
	}

	return params
}
