package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/combat"
	"github.com/cory-johannsen/monbattle/internal/rollout"
	"github.com/cory-johannsen/monbattle/internal/storage/postgres"
	"github.com/cory-johannsen/monbattle/internal/testutil"
)

func newRepo(t *testing.T) *postgres.ResultRepository {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	return postgres.NewResultRepository(pc.RawPool)
}

func win(rolloutID uuid.UUID, idx int, winner battle.SideID, labels [2]string) rollout.Record {
	return rollout.Record{
		RolloutID: rolloutID,
		Index:     idx,
		Seed:      uint64(100 + idx),
		Labels:    labels,
		Result: combat.Result{
			BattleID:  uuid.New(),
			Outcome:   combat.OutcomeWin,
			Winner:    winner,
			Turns:     10 + idx,
			Reason:    combat.ReasonWipe,
			Remaining: [2]int{2, 0},
		},
	}
}

func draw(rolloutID uuid.UUID, idx int, labels [2]string) rollout.Record {
	return rollout.Record{
		RolloutID: rolloutID,
		Index:     idx,
		Labels:    labels,
		Result: combat.Result{
			BattleID: uuid.New(),
			Outcome:  combat.OutcomeDraw,
			Turns:    1000,
			Reason:   combat.ReasonTurnLimit,
		},
	}
}

func TestResultRepository(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	labels := [2]string{"greedy", "random"}

	t.Run("SaveAndGet", func(t *testing.T) {
		rec := win(uuid.New(), 0, battle.Side2, labels)
		rec.Result.Forfeit = true
		require.NoError(t, repo.Save(ctx, rec))

		got, err := repo.Get(ctx, rec.Result.BattleID)
		require.NoError(t, err)
		assert.Equal(t, rec, got.Record)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("DuplicateBattle", func(t *testing.T) {
		rec := win(uuid.New(), 0, battle.Side1, labels)
		require.NoError(t, repo.Save(ctx, rec))
		assert.ErrorIs(t, repo.Save(ctx, rec), postgres.ErrResultExists)
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := repo.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, postgres.ErrResultNotFound)
	})

	t.Run("RejectsUndecided", func(t *testing.T) {
		rec := win(uuid.New(), 0, battle.Side1, labels)
		rec.Result.Outcome = combat.OutcomeUndecided
		assert.Error(t, repo.Save(ctx, rec))
	})

	t.Run("SummarizeRollout", func(t *testing.T) {
		id := uuid.New()
		// Saved out of order; the listing must come back by index.
		require.NoError(t, repo.Save(ctx, draw(id, 2, labels)))
		require.NoError(t, repo.Save(ctx, win(id, 0, battle.Side1, labels)))
		require.NoError(t, repo.Save(ctx, win(id, 1, battle.Side1, labels)))

		list, err := repo.ListByRollout(ctx, id)
		require.NoError(t, err)
		require.Len(t, list, 3)
		for i, rec := range list {
			assert.Equal(t, i, rec.Index)
		}

		sum, err := repo.Summarize(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, sum.RolloutID)
		assert.Equal(t, 3, sum.Battles)
		assert.Equal(t, [2]int{2, 0}, sum.Wins)
		assert.Equal(t, 1, sum.Draws)
		assert.Equal(t, 10, sum.MinTurns)
		assert.Equal(t, 1000, sum.MaxTurns)
	})

	t.Run("Matchups", func(t *testing.T) {
		other := [2]string{"lua:opportunist.lua", "planner:cautious"}
		id := uuid.New()
		require.NoError(t, repo.Save(ctx, win(id, 0, battle.Side2, other)))
		require.NoError(t, repo.Save(ctx, draw(id, 1, other)))

		ms, err := repo.Matchups(ctx)
		require.NoError(t, err)
		var found *postgres.Matchup
		for i := range ms {
			if ms[i].Labels == other {
				found = &ms[i]
			}
		}
		require.NotNil(t, found)
		assert.Equal(t, 2, found.Battles)
		assert.Equal(t, [2]int{0, 1}, found.Wins)
		assert.Equal(t, 1, found.Draws)
		assert.InDelta(t, 505.0, found.MeanTurns, 0.001)
	})

	t.Run("SeedRoundTrips", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			rec := win(uuid.New(), 0, battle.Side1, labels)
			rec.Seed = rapid.Uint64().Draw(rt, "seed")
			if err := repo.Save(ctx, rec); err != nil {
				rt.Fatalf("Save: %v", err)
			}
			got, err := repo.Get(ctx, rec.Result.BattleID)
			if err != nil {
				rt.Fatalf("Get: %v", err)
			}
			if got.Seed != rec.Seed {
				rt.Fatalf("seed %d came back as %d", rec.Seed, got.Seed)
			}
		})
	})
}
