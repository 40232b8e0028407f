package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/creature"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
	"github.com/cory-johannsen/monbattle/internal/game/sim"
)

func TestApplyStage_Table(t *testing.T) {
	cases := []struct {
		stage, want int
	}{
		{-6, 25}, {-2, 50}, {-1, 66}, {0, 100}, {1, 150}, {2, 200}, {6, 400},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, sim.ApplyStage(100, c.stage), "stage %d", c.stage)
	}
}

func TestApplyStage_MonotoneProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := rapid.IntRange(1, 1000).Draw(rt, "v")
		s := rapid.IntRange(creature.MinStage, creature.MaxStage-1).Draw(rt, "s")
		assert.LessOrEqual(rt, sim.ApplyStage(v, s), sim.ApplyStage(v, s+1))
	})
}

func TestEffectiveStat_FlooredAtOneProperty(t *testing.T) {
	s := hitting(t, 9)
	rapid.Check(t, func(rt *rapid.T) {
		c := mon("a")
		c.Stats.Speed = rapid.IntRange(1, 10).Draw(rt, "speed")
		c.Volatile.SetStage(dex.Speed, rapid.IntRange(creature.MinStage, creature.MaxStage).Draw(rt, "stage"))
		c.Status = creature.StatusParalysis
		var cond battle.Conditions
		assert.GreaterOrEqual(rt, s.EffectiveStat(c, dex.Speed, &cond), 1)
	})
}

func TestEffectiveStat_Abilities(t *testing.T) {
	s := hitting(t, 9)
	var cond battle.Conditions

	c := mon("a")
	c.Ability = dex.AbilityHugePower
	assert.Equal(t, 200, s.EffectiveStat(c, dex.Attack, &cond))

	c = mon("b")
	c.Ability = dex.AbilitySwiftSwim
	assert.Equal(t, 100, s.EffectiveStat(c, dex.Speed, &cond))
	cond.SetWeather(battle.WeatherRain, 5)
	assert.Equal(t, 200, s.EffectiveStat(c, dex.Speed, &cond))

	c = mon("c")
	c.Ability = dex.AbilityMarvelScale
	c.Status = creature.StatusPoison
	assert.Equal(t, 150, s.EffectiveStat(c, dex.Defense, &cond))
}

func TestEffectiveStat_StatusPenalties(t *testing.T) {
	var cond battle.Conditions

	c := mon("a")
	c.Status = creature.StatusParalysis
	assert.Equal(t, 25, hitting(t, 6).EffectiveStat(c, dex.Speed, &cond))
	assert.Equal(t, 50, hitting(t, 7).EffectiveStat(c, dex.Speed, &cond))

	c.Ability = dex.AbilityQuickFeet
	assert.Equal(t, 150, hitting(t, 7).EffectiveStat(c, dex.Speed, &cond))

	b := mon("b")
	b.Status = creature.StatusBurn
	assert.Equal(t, 50, hitting(t, 9).EffectiveStat(b, dex.Attack, &cond))
	b.Ability = dex.AbilityGuts
	assert.Equal(t, 150, hitting(t, 9).EffectiveStat(b, dex.Attack, &cond))
}

func TestEffectiveStat_SandstormRockSpecialDefense(t *testing.T) {
	var cond battle.Conditions
	cond.SetWeather(battle.WeatherSandstorm, 5)
	c := mon("rock", dex.TypeRock)
	assert.Equal(t, 150, hitting(t, 4).EffectiveStat(c, dex.SpecialDefense, &cond))
	assert.Equal(t, 100, hitting(t, 3).EffectiveStat(c, dex.SpecialDefense, &cond))
}

func TestEffectiveStat_LockedItems(t *testing.T) {
	var cond battle.Conditions
	pika := mon("pika", dex.TypeElectric)
	pika.Species = "pikachu"
	pika.Item = dex.ItemLightBall
	assert.Equal(t, 200, hitting(t, 5).EffectiveStat(pika, dex.Attack, &cond))
	assert.Equal(t, 100, hitting(t, 4).EffectiveStat(pika, dex.Attack, &cond))
	assert.Equal(t, 100, hitting(t, 4).EffectiveStat(pika, dex.SpecialAttack, &cond))
	assert.Equal(t, 200, hitting(t, 9).EffectiveStat(pika, dex.SpecialAttack, &cond))

	other := mon("raichu", dex.TypeElectric)
	other.Item = dex.ItemLightBall
	assert.Equal(t, 100, hitting(t, 9).EffectiveStat(other, dex.Attack, &cond))

	ditto := mon("ditto")
	ditto.Species = "ditto"
	ditto.Item = dex.ItemMetalPowder
	assert.Equal(t, 150, hitting(t, 2).EffectiveStat(ditto, dex.Defense, &cond))
	assert.Equal(t, 150, hitting(t, 2).EffectiveStat(ditto, dex.SpecialDefense, &cond))
	assert.Equal(t, 200, hitting(t, 3).EffectiveStat(ditto, dex.Defense, &cond))
	assert.Equal(t, 100, hitting(t, 3).EffectiveStat(ditto, dex.SpecialDefense, &cond))
}

func TestEffectiveStat_StageThenItem(t *testing.T) {
	var cond battle.Conditions
	c := mon("a")
	c.Item = dex.ItemChoiceScarf
	c.Volatile.SetStage(dex.Speed, -1)
	// 100*2/3 = 66, then *3/2 = 99.
	assert.Equal(t, 99, hitting(t, 9).EffectiveStat(c, dex.Speed, &cond))
}

func TestEffectiveStat_PanicsOnEvasion(t *testing.T) {
	var cond battle.Conditions
	s := hitting(t, 9)
	assert.Panics(t, func() { s.EffectiveStat(mon("a"), dex.Evasion, &cond) })
	assert.Panics(t, func() { s.EffectiveStat(mon("a"), dex.Accuracy, &cond) })
}
