package queue

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

func newCard(created time.Time) domain.StudyCard {
	return domain.StudyCard{Card: domain.Card{ID: uuid.New(), CreatedAt: created}}
}

func scheduledCard(due time.Time, repetition int) domain.StudyCard {
	c := newCard(now.AddDate(0, -1, 0))
	c.Schedule = &domain.CardSchedule{
		CardID:     c.Card.ID,
		Repetition: repetition,
		EaseFactor: 2.5,
		Interval:   1,
		DueDate:    &due,
	}
	return c
}

func TestBuildOrdering(t *testing.T) {
	t.Parallel()
	dueLate := scheduledCard(now.Add(-time.Hour), 2)
	dueEarly := scheduledCard(now.Add(-48*time.Hour), 1)
	future := scheduledCard(now.Add(24*time.Hour), 3)
	newSecond := newCard(now.Add(-time.Hour))
	newFirst := newCard(now.Add(-2 * time.Hour))

	got := Build([]domain.StudyCard{newSecond, dueLate, future, newFirst, dueEarly}, Options{
		Now:             now,
		DailyNewCardCap: DefaultDailyNewCardCap,
	})

	require.Len(t, got, 4)
	assert.Equal(t, dueEarly.Card.ID, got[0].Card.ID)
	assert.Equal(t, dueLate.Card.ID, got[1].Card.ID)
	assert.Equal(t, newFirst.Card.ID, got[2].Card.ID)
	assert.Equal(t, newSecond.Card.ID, got[3].Card.ID)
	assert.False(t, got[0].IsNew)
	assert.True(t, got[3].IsNew)
}

func TestBuildTiesBrokenByID(t *testing.T) {
	t.Parallel()
	due := now.Add(-time.Hour)
	a := scheduledCard(due, 1)
	b := scheduledCard(due, 1)
	first, second := a, b
	if lessID(b.Card.ID, a.Card.ID) {
		first, second = b, a
	}

	got := Build([]domain.StudyCard{second, first}, Options{Now: now})
	require.Len(t, got, 2)
	assert.Equal(t, first.Card.ID, got[0].Card.ID)
}

func TestBuildNewCardCap(t *testing.T) {
	t.Parallel()
	var cards []domain.StudyCard
	for i := 0; i < 30; i++ {
		cards = append(cards, newCard(now.Add(time.Duration(i)*time.Minute)))
	}
	// A failed card that was reviewed before is due, not new.
	cards = append(cards, scheduledCard(now.Add(-time.Minute), 0))

	got := Build(cards, Options{Now: now, DailyNewCardCap: 20})

	require.Len(t, got, 21)
	assert.False(t, got[0].IsNew)
	for _, c := range got[1:] {
		assert.True(t, c.IsNew)
	}
	assert.Equal(t, cards[0].Card.ID, got[1].Card.ID)
}

func TestBuildShufflePreservesMembership(t *testing.T) {
	t.Parallel()
	var cards []domain.StudyCard
	for i := 0; i < 10; i++ {
		cards = append(cards, scheduledCard(now.Add(-time.Duration(i+1)*time.Hour), 1))
		cards = append(cards, newCard(now.Add(time.Duration(i)*time.Minute)))
	}
	cards = append(cards, scheduledCard(now.Add(time.Hour), 1))

	plain := Build(cards, Options{Now: now, DailyNewCardCap: 5})
	shuffled := Build(cards, Options{Now: now, DailyNewCardCap: 5, Shuffle: true, Rand: rand.New(rand.NewSource(42))})

	require.Len(t, shuffled, len(plain))
	ids := func(cs []domain.StudyCard) map[uuid.UUID]bool {
		m := make(map[uuid.UUID]bool, len(cs))
		for _, c := range cs {
			m[c.Card.ID] = c.IsNew
		}
		return m
	}
	assert.Equal(t, ids(plain), ids(shuffled))

	// Unshuffled, every due card precedes every new card.
	seenNew := false
	for _, c := range plain {
		if c.IsNew {
			seenNew = true
		} else {
			assert.False(t, seenNew, "due card after new card")
		}
	}
}

func TestNextReview(t *testing.T) {
	t.Parallel()
	deckID := uuid.New()
	soon := now.Add(3 * time.Hour)
	later := now.Add(72 * time.Hour)

	info := NextReview(deckID, []domain.StudyCard{
		scheduledCard(later, 2),
		scheduledCard(now.Add(-time.Hour), 1),
		scheduledCard(soon, 2),
		newCard(now),
	}, now)

	assert.Equal(t, deckID, info.DeckID)
	assert.Equal(t, 4, info.TotalCards)
	assert.Equal(t, 1, info.DueNow)
	require.NotNil(t, info.NextDueDate)
	assert.True(t, info.NextDueDate.Equal(soon))

	empty := NextReview(deckID, nil, now)
	assert.Nil(t, empty.NextDueDate)
	assert.Zero(t, empty.TotalCards)
}
