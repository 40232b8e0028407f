package combat_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/combat"
	"github.com/cory-johannsen/monbattle/internal/game/controller"
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

func mon(name string, hp, speed int, moves ...dex.MoveID) *creature.Creature {
	if len(moves) == 0 {
		moves = []dex.MoveID{"tackle"}
	}
	return &creature.Creature{
		Name:  name,
		Level: 50,
		Types: []dex.Type{dex.TypeNormal},
		HP:    hp,
		MaxHP: 100,
		Stats: creature.Stats{Attack: 100, Defense: 100, SpecialAttack: 100, SpecialDefense: 100, Speed: speed},
		Moves: moves,
	}
}

// newBattle plays team1 against team2 on a simulator that always hits
// without crits and rolls the maximum.
func newBattle(t testing.TB, team1, team2 []*creature.Creature, c1, c2 controller.Controller, cfg combat.Config) (*combat.Battle, *battle.State) {
	t.Helper()
	state := battle.NewState(team1, team2)
	s := sim.New(testDex(t), 9, dice.NewRoller(testutil.FixedSource(99), zap.NewNop()), zap.NewNop())
	return combat.New(state, s, c1, c2, cfg, zap.NewNop()), state
}

type failing struct{ err error }

func (f failing) ChooseAction(context.Context, battle.View, battle.SideID) (battle.Action, error) {
	return battle.Action{}, f.err
}

func (f failing) ChooseSwitchIn(context.Context, battle.View, battle.SideID) (int, error) {
	return 0, f.err
}

func TestBattle_WipeEndsWithWinner(t *testing.T) {
	b, _ := newBattle(t,
		[]*creature.Creature{mon("hero", 100, 150)},
		[]*creature.Creature{mon("villain", 10, 50)},
		controller.NewScripted(), controller.NewScripted(), combat.Config{},
	)
	res := b.Run(context.Background())

	assert.Equal(t, combat.OutcomeWin, res.Outcome)
	assert.True(t, res.Won(battle.Side1))
	assert.False(t, res.Forfeit)
	assert.Equal(t, 1, res.Turns)
	assert.Equal(t, combat.ReasonWipe, res.Reason)
	assert.Equal(t, [2]int{1, 0}, res.Remaining)
	assert.Equal(t, b.ID(), res.BattleID)
	assert.Equal(t, combat.PhaseBattleOver, b.Phase())

	got, ok := b.Result()
	assert.True(t, ok)
	assert.Equal(t, res, got)
	assert.True(t, b.Step(context.Background()), "stepping a finished battle is a no-op")
}

func TestBattle_ResultNotReadyWhileRunning(t *testing.T) {
	b, _ := newBattle(t,
		[]*creature.Creature{mon("a", 100, 100, "swordsdance")},
		[]*creature.Creature{mon("b", 100, 100, "swordsdance")},
		controller.NewScripted(), controller.NewScripted(), combat.Config{},
	)
	require.False(t, b.Step(context.Background()))
	_, ok := b.Result()
	assert.False(t, ok)
	assert.Equal(t, 1, b.Turn())
}

func TestBattle_ForcedSwitchAfterFaint(t *testing.T) {
	b, state := newBattle(t,
		[]*creature.Creature{mon("hero", 100, 150)},
		[]*creature.Creature{mon("lead", 10, 50), mon("backup", 100, 50)},
		controller.NewScripted(), controller.NewScripted(), combat.Config{},
	)
	over := b.Step(context.Background())

	require.False(t, over)
	assert.Equal(t, combat.PhaseForcedSwitch, b.Phase())
	assert.Equal(t, 1, state.Sides[battle.Side2].Active)
	assert.False(t, state.Sides[battle.Side2].ActiveCreature().Fainted())
}

func TestBattle_TurnLimitIsADraw(t *testing.T) {
	b, _ := newBattle(t,
		[]*creature.Creature{mon("a", 100, 100, "swordsdance")},
		[]*creature.Creature{mon("b", 100, 100, "swordsdance")},
		controller.NewScripted(), controller.NewScripted(), combat.Config{MaxTurns: 3},
	)
	res := b.Run(context.Background())

	assert.Equal(t, combat.OutcomeDraw, res.Outcome)
	assert.Equal(t, 3, res.Turns)
	assert.Equal(t, combat.ReasonTurnLimit, res.Reason)
}

// PP is not tracked: a move stays usable past its listed PP.
func TestBattle_MovesNeverRunOutOfPP(t *testing.T) {
	sd, ok := testDex(t).Move("swordsdance")
	require.True(t, ok)
	pp := sd.PP
	require.Positive(t, pp)
	b, _ := newBattle(t,
		[]*creature.Creature{mon("a", 100, 100, "swordsdance")},
		[]*creature.Creature{mon("b", 100, 100, "swordsdance")},
		controller.NewScripted(), controller.NewScripted(), combat.Config{MaxTurns: pp + 5},
	)
	res := b.Run(context.Background())

	assert.False(t, res.Forfeit)
	assert.Equal(t, combat.ReasonTurnLimit, res.Reason)
	assert.Equal(t, pp+5, res.Turns)
}

func TestBattle_DoubleKnockoutIsADraw(t *testing.T) {
	b, _ := newBattle(t,
		[]*creature.Creature{mon("bomber", 100, 200, "explosion")},
		[]*creature.Creature{mon("victim", 10, 50)},
		controller.NewScripted(), controller.NewScripted(), combat.Config{},
	)
	res := b.Run(context.Background())

	assert.Equal(t, combat.OutcomeDraw, res.Outcome)
	assert.Equal(t, combat.ReasonDoubleKO, res.Reason)
	assert.Equal(t, [2]int{0, 0}, res.Remaining)
}

func TestBattle_ControllerErrorForfeits(t *testing.T) {
	boom := errors.New("boom")
	b, _ := newBattle(t,
		[]*creature.Creature{mon("a", 100, 100)},
		[]*creature.Creature{mon("b", 100, 100)},
		controller.NewScripted(), failing{err: boom}, combat.Config{},
	)
	res := b.Run(context.Background())

	assert.True(t, res.Won(battle.Side1))
	assert.True(t, res.Forfeit)
	assert.Contains(t, res.Reason, "side2 forfeited")
	assert.Contains(t, res.Reason, "boom")
}

func TestBattle_IllegalActionForfeits(t *testing.T) {
	b, _ := newBattle(t,
		[]*creature.Creature{mon("a", 100, 100)},
		[]*creature.Creature{mon("b", 100, 100)},
		controller.NewScripted(battle.UseMove("hydropump")), controller.NewScripted(), combat.Config{},
	)
	res := b.Run(context.Background())

	assert.True(t, res.Won(battle.Side2))
	assert.True(t, res.Forfeit)
	assert.True(t, strings.Contains(res.Reason, "illegal"), res.Reason)
}

func TestBattle_IllegalSwitchInForfeits(t *testing.T) {
	b, _ := newBattle(t,
		[]*creature.Creature{mon("hero", 100, 150)},
		[]*creature.Creature{mon("lead", 10, 50), mon("backup", 100, 50)},
		controller.NewScripted(), controller.NewScripted().QueueSwitchIns(0), combat.Config{},
	)
	res := b.Run(context.Background())

	assert.True(t, res.Won(battle.Side1))
	assert.True(t, res.Forfeit)
}

func TestBattle_CancelledContextForfeitsTheSideAsked(t *testing.T) {
	b, _ := newBattle(t,
		[]*creature.Creature{mon("a", 100, 100)},
		[]*creature.Creature{mon("b", 100, 100)},
		controller.NewScripted(), controller.NewScripted(), combat.Config{},
	)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := b.Run(ctx)

	assert.True(t, res.Won(battle.Side2))
	assert.True(t, res.Forfeit)
	assert.Contains(t, res.Reason, context.Canceled.Error())
}

func TestBattle_ItemIsConsumed(t *testing.T) {
	hero := mon("hero", 50, 100, "swordsdance")
	b, state := newBattle(t,
		[]*creature.Creature{hero},
		[]*creature.Creature{mon("b", 100, 100, "swordsdance")},
		controller.NewScripted(battle.UseItem(dex.ItemPotion)), controller.NewScripted(), combat.Config{},
	)
	state.Sides[battle.Side1].Bag = battle.Bag{dex.ItemPotion: 1}

	require.False(t, b.Step(context.Background()))
	assert.Equal(t, 70, hero.HP)
	assert.Zero(t, state.Sides[battle.Side1].Bag.Count(dex.ItemPotion))

	// The bag is empty now, so asking for another potion forfeits.
	b2, state2 := newBattle(t,
		[]*creature.Creature{mon("hero", 50, 100, "swordsdance")},
		[]*creature.Creature{mon("b", 100, 100, "swordsdance")},
		controller.NewScripted(battle.UseItem(dex.ItemPotion), battle.UseItem(dex.ItemPotion)), controller.NewScripted(), combat.Config{},
	)
	state2.Sides[battle.Side1].Bag = battle.Bag{dex.ItemPotion: 1}
	res := b2.Run(context.Background())
	assert.True(t, res.Won(battle.Side2))
	assert.Equal(t, 2, res.Turns)
}

func TestBattle_OnEventSeesNarration(t *testing.T) {
	var turns []int
	var kinds []sim.EventKind
	cfg := combat.Config{OnEvent: func(turn int, e sim.Event) {
		turns = append(turns, turn)
		kinds = append(kinds, e.Kind)
	}}
	b, _ := newBattle(t,
		[]*creature.Creature{mon("hero", 100, 150)},
		[]*creature.Creature{mon("villain", 10, 50)},
		controller.NewScripted(), controller.NewScripted(), cfg,
	)
	b.Run(context.Background())

	require.NotEmpty(t, kinds)
	assert.Contains(t, kinds, sim.EventMove)
	assert.Contains(t, kinds, sim.EventFaint)
	for _, turn := range turns {
		assert.Equal(t, 1, turn)
	}
}

func TestBattle_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { combat.New(nil, nil, nil, nil, combat.Config{}, nil) })
}

func TestProperty_RandomBattlesAlwaysFinishConsistently(t *testing.T) {
	d := testDex(t)
	moves := []dex.MoveID{"tackle", "swordsdance", "thunderbolt", "flamethrower", "toxic", "recover"}
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		team := func(label string) []*creature.Creature {
			n := rapid.IntRange(1, 3).Draw(rt, label+"_size")
			out := make([]*creature.Creature, n)
			for i := range out {
				ms := rapid.SliceOfNDistinct(rapid.SampledFrom(moves), 1, 4, rapid.ID[dex.MoveID]).Draw(rt, label+"_moves")
				out[i] = mon(label, rapid.IntRange(1, 100).Draw(rt, label+"_hp"), rapid.IntRange(50, 150).Draw(rt, label+"_speed"), ms...)
			}
			return out
		}
		state := battle.NewState(team("one"), team("two"))
		roller := dice.NewRoller(dice.NewSeededSource(seed), zap.NewNop())
		s := sim.New(d, 9, roller, zap.NewNop())
		b := combat.New(state, s, controller.NewRandom(roller, d), controller.NewRandom(roller, d), combat.Config{MaxTurns: 200}, zap.NewNop())

		res := b.Run(context.Background())
		if res.Outcome == combat.OutcomeUndecided {
			rt.Fatalf("battle ended undecided: %+v", res)
		}
		if res.Turns > 200 {
			rt.Fatalf("played %d turns past the limit", res.Turns)
		}
		if res.Outcome == combat.OutcomeWin && !res.Forfeit {
			loser := res.Winner.Other()
			if res.Remaining[loser] != 0 || res.Remaining[res.Winner] == 0 {
				rt.Fatalf("inconsistent win: %+v", res)
			}
		}
		if res.Forfeit {
			rt.Fatalf("random controllers should never forfeit: %s", res.Reason)
		}
	})
}
