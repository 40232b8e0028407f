package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/creature"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

func TestSwitch_ResetsVolatileRecord(t *testing.T) {
	s := hitting(t, 9)
	lead, bench := mon("lead"), mon("bench")
	state := duel(lead, mon("foe"), bench)
	lead.Volatile.SetStage(dex.Attack, 4)
	lead.Volatile.Add(creature.Effect{Kind: creature.KindConfusion, Turns: 3})
	lead.LastMove = "tackle"
	state.Side(battle.Side1).Effects.SetReflect(5)

	s.Switch(state.Side(battle.Side1), state.Side(battle.Side2), &state.Conditions, 1)

	assert.Equal(t, 1, state.Side(battle.Side1).Active)
	assert.Same(t, bench, state.Side(battle.Side1).ActiveCreature())
	assert.Zero(t, lead.Volatile.Stage(dex.Attack))
	assert.Empty(t, lead.Volatile.Effects())
	assert.Equal(t, dex.MoveID(""), lead.LastMove)
	assert.Equal(t, 5, state.Side(battle.Side1).Effects.Reflect(), "side effects persist across switches")
}

func TestSwitchOut_Abilities(t *testing.T) {
	s := hitting(t, 9)
	curer, regen := mon("curer"), mon("regen")
	curer.Ability = dex.AbilityNaturalCure
	curer.Status = creature.StatusBurn
	regen.Ability = dex.AbilityRegenerator
	regen.HP = 50

	state := duel(curer, regen, mon("b1"), mon("b2"))
	s.Switch(state.Side(battle.Side1), state.Side(battle.Side2), &state.Conditions, 1)
	s.Switch(state.Side(battle.Side2), state.Side(battle.Side1), &state.Conditions, 1)

	assert.Equal(t, creature.StatusNone, curer.Status)
	assert.Equal(t, 83, regen.HP)
}

func TestSwitch_PanicsOnIllegalTarget(t *testing.T) {
	s := hitting(t, 9)
	fainted := mon("fainted")
	fainted.HP = 0
	state := duel(mon("a"), mon("b"), fainted)
	side, opp := state.Side(battle.Side1), state.Side(battle.Side2)
	assert.Panics(t, func() { s.Switch(side, opp, &state.Conditions, 0) })
	assert.Panics(t, func() { s.Switch(side, opp, &state.Conditions, 1) })
	assert.Panics(t, func() { s.Switch(side, opp, &state.Conditions, 5) })
}

func TestSwitchIn_StealthRockScalesWithType(t *testing.T) {
	s := hitting(t, 9)
	bird := mon("bird", dex.TypeFire, dex.TypeFlying)
	state := duel(mon("a"), mon("b"), bird)
	state.Side(battle.Side1).Effects.SetStealthRock(true)
	s.Switch(state.Side(battle.Side1), state.Side(battle.Side2), &state.Conditions, 1)
	assert.Equal(t, 50, bird.HP)
}

func TestSwitchIn_Spikes(t *testing.T) {
	for layers, want := range map[int]int{1: 88, 2: 84, 3: 75} {
		s := hitting(t, 9)
		in := mon("in")
		state := duel(mon("a"), mon("b"), in)
		for i := 0; i < layers; i++ {
			state.Side(battle.Side1).Effects.AddSpikes()
		}
		s.Switch(state.Side(battle.Side1), state.Side(battle.Side2), &state.Conditions, 1)
		assert.Equal(t, want, in.HP, "%d layers", layers)
	}
}

func TestSwitchIn_FlyingAndBootsIgnoreSpikes(t *testing.T) {
	s := hitting(t, 9)
	bird, booted := mon("bird", dex.TypeFlying), mon("booted")
	booted.Item = dex.ItemHeavyDutyBoots
	state := duel(mon("a"), mon("b"), bird, mon("x"), booted)
	e := &state.Side(battle.Side1).Effects
	e.AddSpikes()
	e.SetStickyWeb(true)

	s.Switch(state.Side(battle.Side1), state.Side(battle.Side2), &state.Conditions, 1)
	assert.Equal(t, 100, bird.HP)
	assert.Zero(t, bird.Volatile.Stage(dex.Speed))

	e.SetStealthRock(true)
	s.Switch(state.Side(battle.Side1), state.Side(battle.Side2), &state.Conditions, 2)
	assert.Equal(t, 100, booted.HP)
}

func TestSwitchIn_ToxicSpikes(t *testing.T) {
	s := hitting(t, 9)
	victim, absorber := mon("victim"), mon("absorber", dex.TypePoison)
	state := duel(mon("a"), mon("b"), victim, mon("x"), absorber)
	e := &state.Side(battle.Side1).Effects
	e.AddToxicSpikes()
	e.AddToxicSpikes()
	e.SetStickyWeb(true)

	s.Switch(state.Side(battle.Side1), state.Side(battle.Side2), &state.Conditions, 1)
	assert.Equal(t, creature.StatusBadlyPoison, victim.Status)
	assert.Equal(t, -1, victim.Volatile.Stage(dex.Speed))

	s.Switch(state.Side(battle.Side1), state.Side(battle.Side2), &state.Conditions, 2)
	assert.Zero(t, e.ToxicSpikes())
	assert.True(t, e.StickyWeb(), "absorbing toxic spikes leaves other hazards")
	assert.Equal(t, creature.StatusNone, absorber.Status)
}

func TestStart_TraceCopiesAndActivates(t *testing.T) {
	s := hitting(t, 9)
	tracer, scary := mon("tracer"), mon("scary")
	tracer.Ability = dex.AbilityTrace
	tracer.Stats.Speed = 200
	scary.Ability = dex.AbilityIntimidate
	state := duel(tracer, scary)

	s.Start(state)

	assert.Equal(t, dex.AbilityIntimidate, s.EffectiveAbility(tracer))
	assert.Equal(t, -1, scary.Volatile.Stage(dex.Attack))
	assert.Equal(t, -1, tracer.Volatile.Stage(dex.Attack))
}

func TestStart_TraceOfTraceIsNoop(t *testing.T) {
	s := hitting(t, 9)
	a, b := mon("a"), mon("b")
	a.Ability, b.Ability = dex.AbilityTrace, dex.AbilityTrace
	state := duel(a, b)
	s.Start(state)
	assert.Equal(t, dex.AbilityTrace, s.EffectiveAbility(a))
	assert.Equal(t, dex.AbilityTrace, s.EffectiveAbility(b))
}

func TestEntryWeather_Duration(t *testing.T) {
	cases := []struct {
		gen  int
		item dex.Item
		want int
	}{
		{5, dex.ItemNone, battle.PermanentTurns},
		{6, dex.ItemNone, 5},
		{6, dex.ItemDampRock, 8},
	}
	for _, c := range cases {
		s := hitting(t, c.gen)
		rain := mon("rain")
		rain.Ability = dex.AbilityDrizzle
		rain.Item = c.item
		state := duel(rain, mon("b"))
		s.Start(state)
		require.Equal(t, battle.WeatherRain, state.Conditions.Weather())
		assert.Equal(t, c.want, state.Conditions.WeatherTurns(), "gen %d", c.gen)
	}
}

func TestEntryAbility_StrongWeatherHolds(t *testing.T) {
	s := hitting(t, 9)
	sea, sun := mon("sea"), mon("sun")
	sea.Ability = dex.AbilityPrimordialSea
	sea.Stats.Speed = 200
	sun.Ability = dex.AbilityDrought
	state := duel(sea, sun)
	s.Start(state)
	assert.Equal(t, battle.WeatherHeavyRain, state.Conditions.Weather())
	assert.Equal(t, battle.PermanentTurns, state.Conditions.WeatherTurns())
}

func TestEntryAbility_Download(t *testing.T) {
	s := hitting(t, 9)
	dl, foe := mon("dl"), mon("foe")
	dl.Ability = dex.AbilityDownload
	foe.Stats.Defense = 50
	s.Start(duel(dl, foe))
	assert.Equal(t, 1, dl.Volatile.Stage(dex.Attack))

	dl2, foe2 := mon("dl"), mon("foe")
	dl2.Ability = dex.AbilityDownload
	s.Start(duel(dl2, foe2))
	assert.Equal(t, 1, dl2.Volatile.Stage(dex.SpecialAttack))
}
