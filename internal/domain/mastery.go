package domain

import (
	"time"

	"github.com/google/uuid"
)

// DifficultyTrend describes how a user's performance on a concept is moving.
type DifficultyTrend string

const (
	TrendImproving DifficultyTrend = "improving"
	TrendStable    DifficultyTrend = "stable"
	TrendDeclining DifficultyTrend = "declining"
)

// MasteryCategory is the coarse band a concept's mastery falls into.
type MasteryCategory string

const (
	MasteryBeginner     MasteryCategory = "beginner"
	MasteryIntermediate MasteryCategory = "intermediate"
	MasteryAdvanced     MasteryCategory = "advanced"
	MasteryExpert       MasteryCategory = "expert"
)

// ConceptMastery is a per user and concept profile maintained by an external
// analytics job. The scheduler only reads it.
type ConceptMastery struct {
	UserID           uuid.UUID       `json:"user_id"`
	ConceptID        uuid.UUID       `json:"concept_id"`
	MasteryLevel     float64         `json:"mastery_level"`
	ConfidenceLevel  float64         `json:"confidence_level"`
	LearningVelocity float64         `json:"learning_velocity"`
	DifficultyTrend  DifficultyTrend `json:"difficulty_trend"`
	MasteryCategory  MasteryCategory `json:"mastery_category"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
