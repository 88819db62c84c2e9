package api

import "github.com/go-chi/chi/v5"

// Handlers groups the handlers mounted under /api.
type Handlers struct {
	Review   *ReviewHandler
	Study    *StudyHandler
	Streak   *StreakHandler
	Insights *InsightsHandler
}

// Register mounts the user-scoped routes on r.
func (h Handlers) Register(r chi.Router) {
	r.Route("/users/{userID}", func(r chi.Router) {
		r.Post("/cards/{cardID}/review", h.Review.ReviewCard)
		r.Post("/cards/{cardID}/initialize", h.Review.InitializeCard)

		r.Get("/queue", h.Study.GetStudyQueue)
		r.Get("/decks/{deckID}/next-review", h.Study.GetNextReviewInfo)

		r.Post("/streak", h.Streak.UpdateStreak)
		r.Get("/streak", h.Streak.GetStreak)

		r.Get("/retention", h.Insights.GetRetentionRate)
		r.Get("/summary", h.Insights.GetReviewSummary)
		r.Get("/recommendations/today", h.Insights.GetTodayStudyRecommendations)
		r.Get("/recommendations", h.Insights.GetStudyRecommendations)
	})
}
