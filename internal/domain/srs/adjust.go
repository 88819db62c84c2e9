package srs

import (
	"math"

	"github.com/phrazzld/scry-scheduler/internal/domain"
)

// Strategy names the personalization layer applied to a review.
type Strategy string

const (
	StrategyNone    Strategy = "none"
	StrategyMastery Strategy = "mastery"
	StrategyPattern Strategy = "pattern"
)

// Personalization is the optional per-user input to a review. Exactly one of
// the strategies is active; build it with ResolvePersonalization.
type Personalization struct {
	strategy Strategy
	mastery  *domain.ConceptMastery
	pattern  *domain.LearningPattern
}

// NoPersonalization schedules with plain SM-2.
func NoPersonalization() Personalization {
	return Personalization{strategy: StrategyNone}
}

// ResolvePersonalization picks the strategy for a review. A mastery profile
// always wins over a learning pattern; either may be nil.
func ResolvePersonalization(
	mastery *domain.ConceptMastery,
	pattern *domain.LearningPattern,
) Personalization {
	switch {
	case mastery != nil:
		return Personalization{strategy: StrategyMastery, mastery: mastery}
	case pattern != nil:
		return Personalization{strategy: StrategyPattern, pattern: pattern}
	default:
		return NoPersonalization()
	}
}

// Strategy returns the active strategy.
func (p Personalization) Strategy() Strategy {
	if p.strategy == "" {
		return StrategyNone
	}
	return p.strategy
}

// Adjustment is the bounded change a personalization layer makes to a
// successful SM-2 result.
type Adjustment struct {
	EaseDelta          float64
	IntervalMultiplier float64
	Confidence         float64
}

func identityAdjustment(params *Params) Adjustment {
	return Adjustment{IntervalMultiplier: 1, Confidence: params.DefaultConfidence}
}

// masteryAdjustment evaluates the mastery rule table. Rules are additive on
// the delta and multiplicative on the multiplier, then both are clamped.
func masteryAdjustment(m *domain.ConceptMastery, quality int, params *Params) Adjustment {
	delta, mult := 0.0, 1.0

	switch {
	case m.MasteryLevel >= 0.8:
		delta += 0.10
		mult *= 1.2
	case m.MasteryLevel <= 0.3:
		delta -= 0.05
		mult *= 0.8
	}

	switch m.DifficultyTrend {
	case domain.TrendImproving:
		delta += 0.05
		mult *= 1.1
	case domain.TrendDeclining:
		delta -= 0.10
		mult *= 0.85
	}

	switch m.MasteryCategory {
	case domain.MasteryExpert:
		delta += 0.15
		mult *= 1.3
	case domain.MasteryBeginner:
		delta -= 0.05
		mult *= 0.9
	}

	if quality == domain.MaxQuality && m.MasteryLevel > 0.7 {
		delta += 0.05
		mult *= 1.1
	}

	return Adjustment{
		EaseDelta:          clamp(delta, -params.MaxEaseDelta, params.MaxEaseDelta),
		IntervalMultiplier: clamp(mult, params.MinMultiplier, params.MaxMultiplier),
		Confidence:         math.Max(params.DefaultConfidence, m.ConfidenceLevel),
	}
}

// patternAdjustment rescales the interval by learning velocity only.
func patternAdjustment(p *domain.LearningPattern, params *Params) Adjustment {
	adj := identityAdjustment(params)
	switch {
	case p.LearningVelocity > params.FastLearnerVelocity:
		adj.IntervalMultiplier = params.FastLearnerFactor
	case p.LearningVelocity < params.SlowLearnerVelocity:
		adj.IntervalMultiplier = params.SlowLearnerFactor
	}
	return adj
}

// adjustmentFor returns the adjustment the personalization yields for a
// review of the given quality. Failed reviews are never adjusted.
func adjustmentFor(p Personalization, quality int, params *Params) Adjustment {
	if quality < domain.PassingQuality {
		return identityAdjustment(params)
	}
	switch p.Strategy() {
	case StrategyMastery:
		return masteryAdjustment(p.mastery, quality, params)
	case StrategyPattern:
		return patternAdjustment(p.pattern, params)
	default:
		return identityAdjustment(params)
	}
}

// applyAdjustment rescales ease and interval in place and recomputes the due
// date from the adjusted interval. The ease is clamped to the configured
// bounds and the interval never drops below one day.
func applyAdjustment(s *domain.CardSchedule, adj Adjustment, params *Params) {
	s.EaseFactor = clamp(s.EaseFactor+adj.EaseDelta, params.MinEaseFactor, params.MaxEaseFactor)

	interval := int(math.Round(float64(s.Interval) * adj.IntervalMultiplier))
	if interval < 1 {
		interval = 1
	}
	s.Interval = interval

	if s.LastReviewedAt != nil {
		due := calculateNextReviewDate(s.Interval, *s.LastReviewedAt)
		s.DueDate = &due
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
