// Package queue orders a user's cards into a study session.
package queue

import (
	"bytes"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
)

// DefaultDailyNewCardCap bounds how many never-reviewed cards a queue holds.
const DefaultDailyNewCardCap = 20

// Options controls queue construction.
type Options struct {
	Now             time.Time
	DailyNewCardCap int
	Shuffle         bool
	// Rand drives shuffling. Required when Shuffle is set.
	Rand *rand.Rand
}

// Build returns the study queue for the candidate cards: every due card,
// earliest due date first, followed by at most DailyNewCardCap new cards in
// creation order. Cards that are scheduled but not yet due are left out.
// Shuffle permutes the combined list.
func Build(cards []domain.StudyCard, opts Options) []domain.StudyCard {
	due, fresh := Partition(cards, opts.Now)

	sort.Slice(due, func(i, j int) bool {
		di, dj := *due[i].Schedule.DueDate, *due[j].Schedule.DueDate
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return lessID(due[i].Card.ID, due[j].Card.ID)
	})
	sort.SliceStable(fresh, func(i, j int) bool {
		ci, cj := fresh[i].Card.CreatedAt, fresh[j].Card.CreatedAt
		if !ci.Equal(cj) {
			return ci.Before(cj)
		}
		return lessID(fresh[i].Card.ID, fresh[j].Card.ID)
	})

	limit := opts.DailyNewCardCap
	if limit < 0 {
		limit = 0
	}
	if len(fresh) > limit {
		fresh = fresh[:limit]
	}

	out := make([]domain.StudyCard, 0, len(due)+len(fresh))
	out = append(out, due...)
	out = append(out, fresh...)

	if opts.Shuffle && opts.Rand != nil {
		opts.Rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}
	return out
}

// Partition splits cards into those due at now and those never reviewed.
// The IsNew flag of every returned card is set accordingly.
func Partition(cards []domain.StudyCard, now time.Time) (due, fresh []domain.StudyCard) {
	for _, c := range cards {
		switch {
		case c.Schedule == nil || c.Schedule.IsNew():
			c.IsNew = true
			fresh = append(fresh, c)
		case c.Schedule.IsDue(now):
			c.IsNew = false
			due = append(due, c)
		}
	}
	return due, fresh
}

// NextReview summarizes a deck: the nearest future due date among cards not
// yet due, the number of cards, and how many are due now.
func NextReview(deckID uuid.UUID, cards []domain.StudyCard, now time.Time) domain.NextReviewInfo {
	info := domain.NextReviewInfo{DeckID: deckID, TotalCards: len(cards)}
	for _, c := range cards {
		if c.Schedule == nil || c.Schedule.DueDate == nil {
			continue
		}
		d := *c.Schedule.DueDate
		if !d.After(now) {
			info.DueNow++
			continue
		}
		if info.NextDueDate == nil || d.Before(*info.NextDueDate) {
			next := d
			info.NextDueDate = &next
		}
	}
	return info
}

func lessID(a, b uuid.UUID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}
