//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/platform/postgres"
	"github.com/phrazzld/scry-scheduler/internal/store"
	"github.com/phrazzld/scry-scheduler/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardStoreIntegration(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		cards := postgres.NewPostgresCardStore(tx, nil)
		userID := uuid.New()
		deck := &domain.Deck{ID: uuid.New(), UserID: userID, Name: "Anatomy", CreatedAt: testNow}
		require.NoError(t, cards.CreateDeck(ctx, deck))

		got, err := cards.GetDeck(ctx, deck.ID)
		require.NoError(t, err)
		assert.Equal(t, userID, got.UserID)
		assert.Equal(t, "Anatomy", got.Name)

		first, err := domain.NewCard(userID, deck.ID, json.RawMessage(`{"front":"femur"}`))
		require.NoError(t, err)
		second, err := domain.NewCard(userID, deck.ID, json.RawMessage(`{"front":"tibia"}`))
		require.NoError(t, err)
		second.CreatedAt = first.CreatedAt.Add(time.Second)
		require.NoError(t, cards.CreateMultiple(ctx, []*domain.Card{first, second}))

		fresh, err := cards.ListNew(ctx, userID, &deck.ID, 10)
		require.NoError(t, err)
		require.Len(t, fresh, 2)
		assert.Equal(t, first.ID, fresh[0].Card.ID)
		assert.True(t, fresh[0].IsNew)

		_, err = cards.GetDeck(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrDeckNotFound)
	})
}

func TestStreakStoreIntegration(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		streaks := postgres.NewPostgresStreakStore(tx, nil)
		userID := uuid.New()

		_, err := streaks.Get(ctx, userID)
		assert.ErrorIs(t, err, store.ErrStreakNotFound)

		created, err := streaks.CreateIfAbsent(ctx, domain.NewStudyStreak(userID, "Europe/Paris", testNow))
		require.NoError(t, err)
		assert.True(t, created)

		created, err = streaks.CreateIfAbsent(ctx, domain.NewStudyStreak(userID, "UTC", testNow))
		require.NoError(t, err)
		assert.False(t, created)

		locked, err := streaks.GetForUpdate(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "Europe/Paris", locked.Timezone)

		day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		milestone := 7
		locked.CurrentStreak = 7
		locked.LongestStreak = 7
		locked.LastStudyDate = &day
		locked.StreakStartDate = &day
		locked.MilestonesReached = []int{7}
		locked.LastMilestone = &milestone
		locked.TotalStudyDays = 7
		require.NoError(t, streaks.Upsert(ctx, locked))

		got, err := streaks.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 7, got.CurrentStreak)
		assert.Equal(t, []int{7}, got.MilestonesReached)
		require.NotNil(t, got.LastStudyDate)
		assert.True(t, day.Equal(got.LastStudyDate.UTC()))
	})
}

func TestStatsCacheStoreIntegration(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		entries := postgres.NewPostgresStatsCacheStore(tx, nil)
		userID := uuid.New()

		fresh := &domain.StatsCacheEntry{
			UserID:     userID,
			CacheKey:   "retention:30",
			Data:       json.RawMessage(`{"retention_rate":0.8}`),
			ComputedAt: testNow,
			ExpiresAt:  testNow.Add(time.Hour),
			Version:    1,
		}
		stale := *fresh
		stale.CacheKey = "summary:30"
		stale.ExpiresAt = testNow.Add(-time.Minute)
		require.NoError(t, entries.Upsert(ctx, fresh))
		require.NoError(t, entries.Upsert(ctx, &stale))

		got, err := entries.Get(ctx, userID, "retention:30")
		require.NoError(t, err)
		assert.JSONEq(t, `{"retention_rate":0.8}`, string(got.Data))

		n, err := entries.DeleteExpired(ctx, testNow)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, int64(1))

		_, err = entries.Get(ctx, userID, "summary:30")
		assert.ErrorIs(t, err, store.ErrCacheEntryNotFound)

		n, err = entries.DeleteForUser(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}
