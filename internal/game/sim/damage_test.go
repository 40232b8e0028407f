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

var maxHit = sim.HitProperties{Roll: sim.MaxRoll}

// With every stat at 100 and level 50, a 40 power physical hit is
// (22*40*100/100/50 + 2) = 19 before modifiers.

func TestComputeDamage_Neutral(t *testing.T) {
	s := hitting(t, 9)
	var cond battle.Conditions
	tackle := move(t, "tackle")
	atk, def := mon("a"), mon("d")

	assert.Equal(t, 28, s.ComputeDamage(tackle, atk, def, &cond, maxHit))
	assert.Equal(t, 57, s.ComputeDamage(tackle, atk, def, &cond, sim.HitProperties{Critical: true, Roll: sim.MaxRoll}))
	assert.Equal(t, 24, s.ComputeDamage(tackle, atk, def, &cond, sim.HitProperties{Roll: sim.MinRoll}))

	nonStab := mon("fire", dex.TypeFire)
	assert.Equal(t, 19, s.ComputeDamage(tackle, nonStab, def, &cond, maxHit))
}

func TestComputeDamage_TypeChainTruncatesEachFactor(t *testing.T) {
	s := hitting(t, 9)
	var cond battle.Conditions
	atk := mon("a")
	tb := move(t, "thunderbolt")
	ft := move(t, "flamethrower")

	// base damage 22*90*100/100/50 + 2 = 41
	assert.Equal(t, 41, s.ComputeDamage(tb, atk, mon("n"), &cond, maxHit))
	assert.Equal(t, 82, s.ComputeDamage(tb, atk, mon("w", dex.TypeWater), &cond, maxHit))
	assert.Equal(t, 164, s.ComputeDamage(tb, atk, mon("wf", dex.TypeWater, dex.TypeFlying), &cond, maxHit))
	assert.Equal(t, 0, s.ComputeDamage(tb, atk, mon("g", dex.TypeGround), &cond, maxHit))
	// 41*50/100 = 20, then *200/100 = 40; a combined x1 would give 41.
	assert.Equal(t, 40, s.ComputeDamage(ft, atk, mon("wg", dex.TypeWater, dex.TypeGrass), &cond, maxHit))
	assert.Equal(t, 100, s.Effectiveness(dex.TypeFire, mon("wg", dex.TypeWater, dex.TypeGrass)))
}

func TestComputeDamage_Levitate(t *testing.T) {
	s := hitting(t, 9)
	var cond battle.Conditions
	def := mon("floaty")
	def.Ability = dex.AbilityLevitate
	assert.Equal(t, 0, s.ComputeDamage(move(t, "earthquake"), mon("a"), def, &cond, maxHit))

	def.Volatile.Add(creature.Effect{Kind: creature.KindIngrain})
	assert.Positive(t, s.ComputeDamage(move(t, "earthquake"), mon("a"), def, &cond, maxHit))
}

func TestComputeDamage_Burn(t *testing.T) {
	s := hitting(t, 9)
	var cond battle.Conditions
	tackle := move(t, "tackle")
	atk := mon("a")
	atk.Status = creature.StatusBurn
	assert.Equal(t, 14, s.ComputeDamage(tackle, atk, mon("d"), &cond, maxHit))

	// Guts skips the halving and raises attack to 150: 22*40*150/100/50+2 = 28, STAB 42.
	atk.Ability = dex.AbilityGuts
	assert.Equal(t, 42, s.ComputeDamage(tackle, atk, mon("d"), &cond, maxHit))

	special := mon("s")
	special.Status = creature.StatusBurn
	assert.Equal(t, 41, s.ComputeDamage(move(t, "thunderbolt"), special, mon("d"), &cond, maxHit))
}

func TestComputeDamage_ScreensIgnoredByCrits(t *testing.T) {
	s := hitting(t, 9)
	var cond battle.Conditions
	tackle := move(t, "tackle")
	assert.Equal(t, 14, s.ComputeDamage(tackle, mon("a"), mon("d"), &cond, sim.HitProperties{Roll: sim.MaxRoll, Screened: true}))
	assert.Equal(t, 57, s.ComputeDamage(tackle, mon("a"), mon("d"), &cond, sim.HitProperties{Roll: sim.MaxRoll, Screened: true, Critical: true}))
}

func TestComputeDamage_LifeOrb(t *testing.T) {
	s := hitting(t, 9)
	var cond battle.Conditions
	atk := mon("a")
	atk.Item = dex.ItemLifeOrb
	assert.Equal(t, 44, s.ComputeDamage(move(t, "tackle"), atk, mon("d"), &cond, maxHit))
}

func TestComputeDamage_FalseSwipeLeavesOneHP(t *testing.T) {
	s := hitting(t, 9)
	var cond battle.Conditions
	def := mon("d")
	def.HP = 5
	assert.Equal(t, 4, s.ComputeDamage(move(t, "falseswipe"), mon("a"), def, &cond, maxHit))
}

func TestComputeDamage_MinimumOneUnlessImmune(t *testing.T) {
	s := hitting(t, 9)
	var cond battle.Conditions
	atk := mon("tiny")
	atk.Level = 1
	atk.Stats.Attack = 1
	def := mon("wall", dex.TypeRock, dex.TypeSteel)
	def.Stats.Defense = 400
	assert.Equal(t, 1, s.ComputeDamage(move(t, "tackle"), atk, def, &cond, sim.HitProperties{Roll: sim.MinRoll}))
	assert.Equal(t, 0, s.ComputeDamage(move(t, "tackle"), atk, mon("ghost", dex.TypeGhost), &cond, maxHit))
}

func TestComputeDamage_RollBoundsProperty(t *testing.T) {
	s := hitting(t, 9)
	d := testDex(t)
	moves := []dex.MoveID{"tackle", "thunderbolt", "earthquake", "closecombat", "surf", "crunch", "psyshock"}
	rapid.Check(t, func(rt *rapid.T) {
		var cond battle.Conditions
		mv, _ := d.Move(rapid.SampledFrom(moves).Draw(rt, "move"))
		atk, def := mon("a", rapid.SampledFrom(dex.AllTypes).Draw(rt, "atkType")), mon("d", rapid.SampledFrom(dex.AllTypes).Draw(rt, "defType"))
		atk.Level = rapid.IntRange(1, 100).Draw(rt, "level")
		atk.Stats.Attack = rapid.IntRange(1, 500).Draw(rt, "atk")
		atk.Stats.SpecialAttack = rapid.IntRange(1, 500).Draw(rt, "spa")
		def.Stats.Defense = rapid.IntRange(1, 500).Draw(rt, "def")
		def.Stats.SpecialDefense = rapid.IntRange(1, 500).Draw(rt, "spd")
		roll := rapid.IntRange(sim.MinRoll, sim.MaxRoll).Draw(rt, "roll")

		lo := s.ComputeDamage(mv, atk, def, &cond, sim.HitProperties{Roll: sim.MinRoll})
		hi := s.ComputeDamage(mv, atk, def, &cond, sim.HitProperties{Roll: sim.MaxRoll})
		got := s.ComputeDamage(mv, atk, def, &cond, sim.HitProperties{Roll: roll})
		assert.GreaterOrEqual(rt, got, lo)
		assert.LessOrEqual(rt, got, hi)
		assert.GreaterOrEqual(rt, got, 0)
		if s.Effectiveness(mv.Type, def) > 0 {
			assert.GreaterOrEqual(rt, got, 1)
		} else {
			assert.Zero(rt, got)
		}
	})
}

func TestComputeDamage_PanicsOnBadRoll(t *testing.T) {
	s := hitting(t, 9)
	var cond battle.Conditions
	assert.Panics(t, func() {
		s.ComputeDamage(move(t, "tackle"), mon("a"), mon("d"), &cond, sim.HitProperties{Roll: 84})
	})
}

func TestMovePower_Modifiers(t *testing.T) {
	s := hitting(t, 9)
	atk, def := mon("a"), mon("d")

	atk.Friendship = 255
	assert.Equal(t, 102, s.MovePower(move(t, "return"), atk, def))
	assert.Equal(t, 1, s.MovePower(move(t, "frustration"), atk, def))
	atk.Friendship = 0
	assert.Equal(t, 102, s.MovePower(move(t, "frustration"), atk, def))

	assert.Equal(t, 110, s.MovePower(move(t, "acrobatics"), atk, def))
	atk.Item = dex.ItemLeftovers
	assert.Equal(t, 55, s.MovePower(move(t, "acrobatics"), atk, def))
	atk.Item = dex.ItemNone

	def.HP = 50
	assert.Equal(t, 130, s.MovePower(move(t, "brine"), atk, def))
	def.HP = 51
	assert.Equal(t, 65, s.MovePower(move(t, "brine"), atk, def))

	tech := mon("t")
	tech.Ability = dex.AbilityTechnician
	assert.Equal(t, 60, s.MovePower(move(t, "tackle"), tech, def))
	assert.Equal(t, 90, s.MovePower(move(t, "thunderbolt"), tech, def))

	fist := mon("f")
	fist.Ability = dex.AbilityIronFist
	assert.Equal(t, 89, s.MovePower(move(t, "thunderpunch"), fist, def))

	// Every pulse move gets x4915/4096; Mega Launcher stacks x1.5 on top.
	assert.Equal(t, 71, s.MovePower(move(t, "waterpulse"), mon("plain"), def))
	launcher := mon("l")
	launcher.Ability = dex.AbilityMegaLauncher
	assert.Equal(t, 107, s.MovePower(move(t, "waterpulse"), launcher, def))
}

func TestMovePower_PulseBonusProperty(t *testing.T) {
	s := hitting(t, 9)
	def := mon("d")
	rapid.Check(t, func(rt *rapid.T) {
		power := rapid.IntRange(1, 250).Draw(rt, "power")
		pulse := &dex.Move{ID: "testpulse", Name: "Test Pulse", Type: dex.TypeWater, Class: dex.Special, Power: power}
		pulse.Flags.Pulse = true
		plain := *pulse
		plain.Flags.Pulse = false

		got := s.MovePower(pulse, mon("a"), def)
		assert.Equal(rt, max(power*4915/4096, 1), got)
		assert.GreaterOrEqual(rt, got, s.MovePower(&plain, mon("a"), def))
	})
}

func TestMovePower_Rivalry(t *testing.T) {
	s := hitting(t, 9)
	atk, def := mon("a"), mon("d")
	atk.Ability = dex.AbilityRivalry
	atk.Gender, def.Gender = creature.Male, creature.Male
	assert.Equal(t, 50, s.MovePower(move(t, "tackle"), atk, def))
	def.Gender = creature.Female
	assert.Equal(t, 30, s.MovePower(move(t, "tackle"), atk, def))
	def.Gender = creature.Genderless
	assert.Equal(t, 40, s.MovePower(move(t, "tackle"), atk, def))
}

func TestComputeDamage_FoulPlayUsesDefenderAttack(t *testing.T) {
	s := hitting(t, 9)
	var cond battle.Conditions
	weak, strong := mon("weak"), mon("strong")
	weak.Stats.Attack = 10
	strong.Stats.Attack = 300
	fp := move(t, "foulplay")
	assert.Greater(t, s.ComputeDamage(fp, weak, strong, &cond, maxHit), s.ComputeDamage(fp, strong, weak, &cond, maxHit))
}

func TestExpectedDamage(t *testing.T) {
	s := hitting(t, 9)
	var cond battle.Conditions
	var effects battle.SideEffects
	atk, def := mon("a"), mon("d")

	// 19 * 92/100 = 17, STAB 25.
	assert.Equal(t, 25, s.ExpectedDamage(move(t, "tackle"), atk, def, &cond, &effects))
	assert.Equal(t, 0, s.ExpectedDamage(move(t, "swordsdance"), atk, def, &cond, &effects))
	assert.Equal(t, 0, s.ExpectedDamage(move(t, "thunderbolt"), atk, mon("g", dex.TypeGround), &cond, &effects))

	effects.SetReflect(5)
	assert.Equal(t, 12, s.ExpectedDamage(move(t, "tackle"), atk, def, &cond, &effects))
}
