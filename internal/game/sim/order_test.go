package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/creature"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
	"github.com/cory-johannsen/monbattle/internal/testutil"
)

func TestOrder_PriorityBeatsSpeed(t *testing.T) {
	s := hitting(t, 9)
	fast, slow := mon("fast"), mon("slow")
	fast.Stats.Speed = 300
	slow.Stats.Speed = 10
	state := duel(fast, slow)

	assert.Equal(t, battle.Side2, s.Order(battle.UseMove("tackle"), battle.UseMove("quickattack"), state))
	assert.Equal(t, battle.Side1, s.Order(battle.UseMove("tackle"), battle.UseMove("tackle"), state))
}

func TestOrder_SwitchAndItemsGoFirst(t *testing.T) {
	s := hitting(t, 9)
	fast, slow := mon("fast"), mon("slow")
	fast.Stats.Speed = 300
	state := duel(fast, slow, mon("bench1"), mon("bench2"))

	assert.Equal(t, battle.Side2, s.Order(battle.UseMove("extremespeed"), battle.Switch(1), state))
	assert.Equal(t, battle.Side2, s.Order(battle.UseMove("extremespeed"), battle.UseItem("potion"), state))
	assert.Equal(t, 8, s.Priority(battle.Switch(1)))
	assert.Equal(t, 2, s.Priority(battle.UseMove("extremespeed")))
}

func TestOrder_TailwindAndParalysis(t *testing.T) {
	s := hitting(t, 7)
	a, b := mon("a"), mon("b")
	a.Stats.Speed = 60
	state := duel(a, b)
	assert.Equal(t, battle.Side2, s.Order(battle.UseMove("tackle"), battle.UseMove("tackle"), state))

	state.Side(battle.Side1).Effects.SetTailwind(4)
	assert.Equal(t, battle.Side1, s.Order(battle.UseMove("tackle"), battle.UseMove("tackle"), state))

	a.Status = creature.StatusParalysis
	// Paralysis halves 60 to 30 and tailwind only restores it to 60.
	assert.Equal(t, battle.Side2, s.Order(battle.UseMove("tackle"), battle.UseMove("tackle"), state))
}

func TestOrder_SpeedTieUsesCoin(t *testing.T) {
	state := duel(mon("a"), mon("b"))
	assert.Equal(t, battle.Side1, newSim(t, 9, testutil.FixedSource(0)).Order(battle.UseMove("tackle"), battle.UseMove("tackle"), state))
	assert.Equal(t, battle.Side2, newSim(t, 9, testutil.FixedSource(1)).Order(battle.UseMove("tackle"), battle.UseMove("tackle"), state))
}

func TestOrder_SpeedTieIsFairProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		s := newSim(t, 9, dice.NewSeededSource(seed))
		state := duel(mon("a"), mon("b"))
		const trials = 1000
		first := 0
		for i := 0; i < trials; i++ {
			if s.Order(battle.UseMove("tackle"), battle.UseMove("tackle"), state) == battle.Side1 {
				first++
			}
		}
		assert.InDelta(rt, trials/2, first, trials*0.1)
	})
}

func TestOrder_HigherPriorityAlwaysFirstProperty(t *testing.T) {
	s := hitting(t, 9)
	rapid.Check(t, func(rt *rapid.T) {
		a, b := mon("a"), mon("b")
		a.Stats.Speed = rapid.IntRange(1, 500).Draw(rt, "speedA")
		b.Stats.Speed = rapid.IntRange(1, 500).Draw(rt, "speedB")
		state := duel(a, b)
		assert.Equal(rt, battle.Side1, s.Order(battle.UseMove("extremespeed"), battle.UseMove("quickattack"), state))
		assert.Equal(rt, battle.Side2, s.Order(battle.UseMove("tackle"), battle.UseMove("quickattack"), state))
	})
}
