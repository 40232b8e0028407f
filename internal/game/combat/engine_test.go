package combat_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/monbattle/internal/game/combat"
	"github.com/cory-johannsen/monbattle/internal/game/controller"
	"github.com/cory-johannsen/monbattle/internal/game/creature"
)

func quickBattle(t testing.TB) *combat.Battle {
	b, _ := newBattle(t,
		[]*creature.Creature{mon("hero", 100, 150)},
		[]*creature.Creature{mon("villain", 10, 50)},
		controller.NewScripted(), controller.NewScripted(), combat.Config{},
	)
	return b
}

func TestEngine_StartGetEnd(t *testing.T) {
	eng := combat.NewEngine()
	b := quickBattle(t)

	require.NoError(t, eng.Start(b))
	assert.Error(t, eng.Start(b), "duplicate id")

	got, ok := eng.Get(b.ID())
	require.True(t, ok)
	assert.Same(t, b, got)
	assert.Equal(t, 1, eng.Live())

	eng.End(b.ID())
	_, ok = eng.Get(b.ID())
	assert.False(t, ok)
	eng.End(b.ID())
	assert.Zero(t, eng.Live())
}

func TestEngine_RunRemovesTheBattle(t *testing.T) {
	eng := combat.NewEngine()
	b := quickBattle(t)

	res, err := eng.Run(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, combat.OutcomeWin, res.Outcome)
	assert.Zero(t, eng.Live())
}

func TestEngine_ConcurrentRuns(t *testing.T) {
	eng := combat.NewEngine()
	var wg sync.WaitGroup
	for range 16 {
		b := quickBattle(t)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := eng.Run(context.Background(), b)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Zero(t, eng.Live())
}

func TestProperty_Engine_LiveCountTracksStarts(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 20).Draw(rt, "n")
		ended := rapid.IntRange(0, n).Draw(rt, "ended")
		eng := combat.NewEngine()
		var battles []*combat.Battle
		for range n {
			b := quickBattle(t)
			if err := eng.Start(b); err != nil {
				rt.Fatalf("Start: %v", err)
			}
			battles = append(battles, b)
		}
		for _, b := range battles[:ended] {
			eng.End(b.ID())
		}
		if eng.Live() != n-ended {
			rt.Fatalf("Live = %d, want %d", eng.Live(), n-ended)
		}
	})
}
