package api

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/service/card_review"
	"github.com/phrazzld/scry-scheduler/internal/service/insights"
	"github.com/phrazzld/scry-scheduler/internal/service/streak"
	"github.com/phrazzld/scry-scheduler/internal/service/study"
	"github.com/stretchr/testify/mock"
)

type mockReviewService struct{ mock.Mock }

var _ card_review.CardReviewService = (*mockReviewService)(nil)

func (m *mockReviewService) ReviewCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
	req card_review.ReviewRequest,
) (*card_review.ReviewResult, error) {
	args := m.Called(ctx, userID, cardID, req)
	res, _ := args.Get(0).(*card_review.ReviewResult)
	return res, args.Error(1)
}

func (m *mockReviewService) InitializeCard(ctx context.Context, userID, cardID uuid.UUID) (*domain.CardSchedule, error) {
	args := m.Called(ctx, userID, cardID)
	s, _ := args.Get(0).(*domain.CardSchedule)
	return s, args.Error(1)
}

type mockStudyService struct{ mock.Mock }

var _ study.StudyService = (*mockStudyService)(nil)

func (m *mockStudyService) GetStudyQueue(
	ctx context.Context,
	userID uuid.UUID,
	deckID *uuid.UUID,
	shuffle bool,
) ([]domain.StudyCard, error) {
	args := m.Called(ctx, userID, deckID, shuffle)
	cards, _ := args.Get(0).([]domain.StudyCard)
	return cards, args.Error(1)
}

func (m *mockStudyService) GetNextReviewInfo(ctx context.Context, userID, deckID uuid.UUID) (*domain.NextReviewInfo, error) {
	args := m.Called(ctx, userID, deckID)
	info, _ := args.Get(0).(*domain.NextReviewInfo)
	return info, args.Error(1)
}

type mockStreakService struct{ mock.Mock }

var _ streak.StreakService = (*mockStreakService)(nil)

func (m *mockStreakService) UpdateStreak(
	ctx context.Context,
	userID uuid.UUID,
	studyDate time.Time,
	timezone string,
) (*domain.StreakUpdate, error) {
	args := m.Called(ctx, userID, studyDate, timezone)
	u, _ := args.Get(0).(*domain.StreakUpdate)
	return u, args.Error(1)
}

func (m *mockStreakService) UpdateStreakForDate(
	ctx context.Context,
	userID uuid.UUID,
	date time.Time,
	timezone string,
) (*domain.StreakUpdate, error) {
	args := m.Called(ctx, userID, date, timezone)
	u, _ := args.Get(0).(*domain.StreakUpdate)
	return u, args.Error(1)
}

func (m *mockStreakService) GetStreak(ctx context.Context, userID uuid.UUID) (*domain.StudyStreak, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(*domain.StudyStreak)
	return s, args.Error(1)
}

type mockInsightsService struct{ mock.Mock }

var _ insights.InsightsService = (*mockInsightsService)(nil)

func (m *mockInsightsService) GetRetentionRate(
	ctx context.Context,
	userID uuid.UUID,
	windowDays int,
) (domain.RetentionRate, error) {
	args := m.Called(ctx, userID, windowDays)
	return args.Get(0).(domain.RetentionRate), args.Error(1)
}

func (m *mockInsightsService) GetReviewSummary(
	ctx context.Context,
	userID uuid.UUID,
	windowDays int,
) (domain.ReviewSummary, error) {
	args := m.Called(ctx, userID, windowDays)
	return args.Get(0).(domain.ReviewSummary), args.Error(1)
}

func (m *mockInsightsService) GetTodayStudyRecommendations(
	ctx context.Context,
	userID uuid.UUID,
	timezone string,
) (domain.TodayRecommendation, error) {
	args := m.Called(ctx, userID, timezone)
	return args.Get(0).(domain.TodayRecommendation), args.Error(1)
}

func (m *mockInsightsService) GetStudyRecommendations(
	ctx context.Context,
	userID uuid.UUID,
	days int,
	timezone string,
) (domain.StudyRecommendations, error) {
	args := m.Called(ctx, userID, days, timezone)
	return args.Get(0).(domain.StudyRecommendations), args.Error(1)
}
