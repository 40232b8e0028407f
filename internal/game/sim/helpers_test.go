package sim_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/creature"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
	"github.com/cory-johannsen/monbattle/internal/game/sim"
	"github.com/cory-johannsen/monbattle/internal/testutil"
)

var (
	shippedOnce sync.Once
	shipped     *dex.Dex
	shippedErr  error
)

func testDex(t testing.TB) *dex.Dex {
	t.Helper()
	shippedOnce.Do(func() { shipped, shippedErr = dex.LoadDirectory("../../../data") })
	require.NoError(t, shippedErr)
	return shipped
}

// newSim builds a simulator for gen that draws from src.
func newSim(t testing.TB, gen int, src dice.Source) *sim.Simulator {
	t.Helper()
	return sim.New(testDex(t), gen, dice.NewRoller(src, zap.NewNop()), zap.NewNop())
}

// hitting always hits, never crits, rolls the maximum and only triggers
// guaranteed secondary effects.
func hitting(t testing.TB, gen int) *sim.Simulator {
	return newSim(t, gen, testutil.FixedSource(99))
}

// mon is a level 50 creature with 100 HP and 100 in every stat.
func mon(name string, types ...dex.Type) *creature.Creature {
	if len(types) == 0 {
		types = []dex.Type{dex.TypeNormal}
	}
	return &creature.Creature{
		Name:   name,
		Level:  50,
		Types:  types,
		HP:     100,
		MaxHP:  100,
		Stats:  creature.Stats{Attack: 100, Defense: 100, SpecialAttack: 100, SpecialDefense: 100, Speed: 100},
		Moves:  []dex.MoveID{"tackle"},
		Gender: creature.Genderless,
	}
}

// duel puts a and b against each other, each with optional benches.
func duel(a, b *creature.Creature, bench ...*creature.Creature) *battle.State {
	team1 := []*creature.Creature{a}
	team2 := []*creature.Creature{b}
	for i, c := range bench {
		if i%2 == 0 {
			team1 = append(team1, c)
		} else {
			team2 = append(team2, c)
		}
	}
	return battle.NewState(team1, team2)
}

func move(t testing.TB, id dex.MoveID) *dex.Move {
	t.Helper()
	m, ok := testDex(t).Move(id)
	require.True(t, ok, id)
	return m
}

func eventKinds(events []sim.Event) []sim.EventKind {
	out := make([]sim.EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}
