package sim

import (
	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/creature"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// Moves whose damage rules are keyed by identity.
const (
	moveAcrobatics  dex.MoveID = "acrobatics"
	moveBrine       dex.MoveID = "brine"
	moveFacade      dex.MoveID = "facade"
	moveFalseSwipe  dex.MoveID = "falseswipe"
	moveFoulPlay    dex.MoveID = "foulplay"
	moveFrustration dex.MoveID = "frustration"
	movePsyshock    dex.MoveID = "psyshock"
	moveReturn      dex.MoveID = "return"
	moveVenoshock   dex.MoveID = "venoshock"
)

// Damage roll bounds, in percent.
const (
	MinRoll = 85
	MaxRoll = 100
)

// HitProperties are the per-hit random outcomes, decided before the damage
// formula runs so the formula itself is deterministic.
type HitProperties struct {
	Critical bool
	// Roll is the damage roll percentage in [MinRoll, MaxRoll].
	Roll int
	// Screened is set when the defender's side has a screen that applies to
	// the move's class.
	Screened bool
}

// MovePower returns the move's power after every power modifier.
func (s *Simulator) MovePower(mv *dex.Move, atk, def *creature.Creature) int {
	power := mv.Power
	switch mv.ID {
	case moveReturn:
		power = atk.Friendship * 2 / 5
	case moveFrustration:
		power = (255 - atk.Friendship) * 2 / 5
	}
	power = max(power, 1)

	mod := 4096
	chain := func(n int) { mod = mod * n / 4096 }

	switch {
	case mv.ID == moveAcrobatics && atk.Item == dex.ItemNone,
		mv.ID == moveBrine && def.HP <= def.MaxHP/2,
		mv.ID == moveFacade && atk.Status != creature.StatusNone,
		mv.ID == moveVenoshock && (def.Status == creature.StatusPoison || def.Status == creature.StatusBadlyPoison):
		chain(8192)
	}
	if mv.Flags.Pulse {
		chain(4915)
	}

	ability := s.EffectiveAbility(atk)
	if ability == dex.AbilityRivalry && atk.Gender != creature.Genderless && def.Gender != creature.Genderless {
		if atk.Gender == def.Gender {
			chain(5120)
		} else {
			chain(3072)
		}
	}
	if ability == dex.AbilityIronFist && mv.Flags.Punch {
		chain(4915)
	}
	if ability == dex.AbilityStrongJaw && mv.Flags.Bite {
		chain(6144)
	}
	if ability == dex.AbilityMegaLauncher && mv.Flags.Pulse {
		chain(6144)
	}
	if ability == dex.AbilityTechnician && power <= 60 {
		chain(6144)
	}

	switch {
	case mv.Class == dex.Physical && atk.Item == dex.ItemMuscleBand,
		mv.Class == dex.Special && atk.Item == dex.ItemWiseGlasses:
		chain(4505)
	}
	if t, ok := atk.Item.BoostedType(); ok && t == mv.Type {
		chain(4505)
	}
	if atk.Item == dex.ItemLightBall && atk.Species == speciesPikachu && s.gen == 4 {
		chain(8192)
	}

	return max(power*mod/4096, 1)
}

// attackingStat picks the offensive stat: Attack for physical moves,
// Special Attack otherwise. Foul Play reads the defender's Attack.
func (s *Simulator) attackingStat(mv *dex.Move, atk, def *creature.Creature, cond *battle.Conditions) int {
	switch {
	case mv.ID == moveFoulPlay:
		return s.stat(def, dex.Attack, cond, false)
	case mv.Class == dex.Physical:
		return s.stat(atk, dex.Attack, cond, false)
	default:
		return s.stat(atk, dex.SpecialAttack, cond, false)
	}
}

// defendingStat picks the defensive stat: Defense for physical moves and
// Psyshock, Special Defense otherwise.
func (s *Simulator) defendingStat(mv *dex.Move, def *creature.Creature, cond *battle.Conditions) int {
	if mv.Class == dex.Physical || mv.ID == movePsyshock {
		return s.EffectiveStat(def, dex.Defense, cond)
	}
	return s.EffectiveStat(def, dex.SpecialDefense, cond)
}

// Effectiveness returns the combined percent multiplier of a move type
// against c, each factor truncated in turn.
func (s *Simulator) Effectiveness(t dex.Type, c *creature.Creature) int {
	eff := 100
	for _, dt := range c.Types {
		eff = eff * s.dex.Effectiveness(t, dt) / 100
	}
	if t == dex.TypeGround && s.EffectiveAbility(c) == dex.AbilityLevitate && !c.Volatile.Has(creature.KindIngrain) {
		eff = 0
	}
	return eff
}

// ComputeDamage returns the damage mv deals from atk to def.
//
//	((2*L/5+2)*P*A/D/50+2), then critical x2, roll/100, STAB x1.5, each type
//	factor, physical burn /2, screens /2, Life Orb x8/5.
//
// Precondition: mv is a damaging move; hit.Roll is in [MinRoll, MaxRoll].
// Postcondition: the result is >= 0, and 0 only when the defender is immune.
// False Swipe never returns more than def.HP-1.
func (s *Simulator) ComputeDamage(mv *dex.Move, atk, def *creature.Creature, cond *battle.Conditions, hit HitProperties) int {
	if hit.Roll < MinRoll || hit.Roll > MaxRoll {
		panic("sim: ComputeDamage called with roll outside [85, 100]")
	}
	a := s.attackingStat(mv, atk, def, cond)
	d := s.defendingStat(mv, def, cond)
	p := s.MovePower(mv, atk, def)

	dmg := (2*atk.Level/5+2)*p*a/d/50 + 2
	if hit.Critical {
		dmg = scale(dmg, 2, 1)
	}
	dmg = scale(dmg, hit.Roll, 100)
	if atk.HasType(mv.Type) {
		dmg = scale(dmg, 3, 2)
	}
	for _, dt := range def.Types {
		dmg = scale(dmg, s.dex.Effectiveness(mv.Type, dt), 100)
	}
	if mv.Type == dex.TypeGround && s.EffectiveAbility(def) == dex.AbilityLevitate && !def.Volatile.Has(creature.KindIngrain) {
		dmg = 0
	}
	if mv.Class == dex.Physical && atk.Status == creature.StatusBurn && s.EffectiveAbility(atk) != dex.AbilityGuts && mv.ID != moveFacade {
		dmg /= 2
	}
	if hit.Screened && !hit.Critical {
		dmg /= 2
	}
	if atk.Item == dex.ItemLifeOrb {
		dmg = scale(dmg, 8, 5)
	}

	if dmg == 0 && s.Effectiveness(mv.Type, def) > 0 {
		dmg = 1
	}
	if mv.ID == moveFalseSwipe && dmg >= def.HP {
		dmg = max(def.HP-1, 0)
	}
	return dmg
}

// NeutralRoll is the midpoint of the damage roll range.
const NeutralRoll = (MinRoll + MaxRoll) / 2

// ExpectedDamage estimates what mv would deal without consuming any
// randomness: no critical hit, the neutral roll, the defender's screens,
// then scaled by the move's accuracy. Status moves estimate 0.
func (s *Simulator) ExpectedDamage(mv *dex.Move, atk, def *creature.Creature, cond *battle.Conditions, defEffects *battle.SideEffects) int {
	if !mv.HasPower() {
		return 0
	}
	dmg := s.ComputeDamage(mv, atk, def, cond, HitProperties{
		Roll:     NeutralRoll,
		Screened: screenedBy(defEffects, mv.Class),
	})
	if mv.Accuracy > 0 {
		dmg = scale(dmg, mv.Accuracy, 100)
	}
	return dmg
}

// screened reports whether a screen on side reduces damage of class.
func screened(side *battle.Side, class dex.Class) bool {
	return screenedBy(&side.Effects, class)
}

func screenedBy(e *battle.SideEffects, class dex.Class) bool {
	if e.AuroraVeil() > 0 {
		return true
	}
	return (class == dex.Physical && e.Reflect() > 0) || (class == dex.Special && e.LightScreen() > 0)
}

// critDenominator returns N for a 1/N critical-hit chance at stage.
func (s *Simulator) critDenominator(stage int) int {
	switch {
	case stage <= 0:
		if s.gen >= 7 {
			return 24
		}
		return 16
	case stage == 1:
		return 8
	case stage == 2:
		if s.gen >= 6 {
			return 2
		}
		return 4
	default:
		return 1
	}
}
