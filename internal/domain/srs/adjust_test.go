package srs

import (
	"testing"

	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolvePersonalization(t *testing.T) {
	t.Parallel()
	mastery := &domain.ConceptMastery{MasteryLevel: 0.5}
	pattern := &domain.LearningPattern{LearningVelocity: 2}

	assert.Equal(t, StrategyNone, ResolvePersonalization(nil, nil).Strategy())
	assert.Equal(t, StrategyMastery, ResolvePersonalization(mastery, nil).Strategy())
	assert.Equal(t, StrategyPattern, ResolvePersonalization(nil, pattern).Strategy())
	assert.Equal(t, StrategyMastery, ResolvePersonalization(mastery, pattern).Strategy())
	assert.Equal(t, StrategyNone, Personalization{}.Strategy())
}

func TestMasteryAdjustment(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	tests := []struct {
		name       string
		profile    domain.ConceptMastery
		quality    int
		wantDelta  float64
		wantMult   float64
		wantConfid float64
	}{
		{
			name:       "neutral profile",
			profile:    domain.ConceptMastery{MasteryLevel: 0.5, DifficultyTrend: domain.TrendStable, MasteryCategory: domain.MasteryIntermediate, ConfidenceLevel: 0.2},
			quality:    4,
			wantDelta:  0,
			wantMult:   1,
			wantConfid: 0.5,
		},
		{
			name:       "low mastery beginner",
			profile:    domain.ConceptMastery{MasteryLevel: 0.2, DifficultyTrend: domain.TrendStable, MasteryCategory: domain.MasteryBeginner, ConfidenceLevel: 0.4},
			quality:    4,
			wantDelta:  -0.10,
			wantMult:   0.72,
			wantConfid: 0.5,
		},
		{
			name:       "declining trend",
			profile:    domain.ConceptMastery{MasteryLevel: 0.5, DifficultyTrend: domain.TrendDeclining, MasteryCategory: domain.MasteryAdvanced},
			quality:    3,
			wantDelta:  -0.10,
			wantMult:   0.85,
			wantConfid: 0.5,
		},
		{
			name:       "expert with perfect recall clamps ease delta",
			profile:    domain.ConceptMastery{MasteryLevel: 0.9, DifficultyTrend: domain.TrendImproving, MasteryCategory: domain.MasteryExpert, ConfidenceLevel: 0.95},
			quality:    5,
			wantDelta:  0.3, // 0.35 before clamping
			wantMult:   1.8876,
			wantConfid: 0.95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adj := masteryAdjustment(&tt.profile, tt.quality, params)
			assert.InDelta(t, tt.wantDelta, adj.EaseDelta, 1e-9)
			assert.InDelta(t, tt.wantMult, adj.IntervalMultiplier, 1e-9)
			assert.InDelta(t, tt.wantConfid, adj.Confidence, 1e-9)
		})
	}
}

func TestPatternAdjustment(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	tests := []struct {
		velocity float64
		want     float64
	}{
		{2.0, 1.1},
		{1.5, 1.0},
		{1.0, 1.0},
		{0.5, 1.0},
		{0.2, 0.9},
	}
	for _, tt := range tests {
		adj := patternAdjustment(&domain.LearningPattern{LearningVelocity: tt.velocity}, params)
		assert.Equal(t, tt.want, adj.IntervalMultiplier, "velocity %v", tt.velocity)
		assert.Zero(t, adj.EaseDelta)
		assert.Equal(t, 0.5, adj.Confidence)
	}
}

func TestAdjustmentForFailedReview(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	p := ResolvePersonalization(&domain.ConceptMastery{MasteryLevel: 0.9, MasteryCategory: domain.MasteryExpert}, nil)

	adj := adjustmentFor(p, 2, params)
	assert.Equal(t, identityAdjustment(params), adj)
}
