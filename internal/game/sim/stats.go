package sim

import (
	"fmt"

	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/creature"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// Species with locked items.
const (
	speciesPikachu  dex.SpeciesID = "pikachu"
	speciesDitto    dex.SpeciesID = "ditto"
	speciesClamperl dex.SpeciesID = "clamperl"
)

// EffectiveStat computes one of the five battle stats of c under cond.
//
// Order: stage multiplier, ability rescalings, field rescalings, held item
// rescalings, status penalties. Each multiply/divide pair truncates.
//
// Precondition: stat is Attack through Speed.
// Postcondition: the result is >= 1.
func (s *Simulator) EffectiveStat(c *creature.Creature, stat dex.Stat, cond *battle.Conditions) int {
	return s.stat(c, stat, cond, true)
}

// stat is EffectiveStat with the burn penalty optional; the damage formula
// applies burn itself.
func (s *Simulator) stat(c *creature.Creature, stat dex.Stat, cond *battle.Conditions, burn bool) int {
	if stat == dex.Evasion || stat == dex.Accuracy {
		panic(fmt.Sprintf("sim: EffectiveStat called with %s", stat))
	}
	v := ApplyStage(c.Stats.Get(stat), c.Volatile.Stage(stat))
	v = s.abilityRescale(c, stat, cond, v)
	v = s.fieldRescale(c, stat, cond, v)
	v = s.itemRescale(c, stat, v)
	v = s.statusRescale(c, stat, v, burn)
	return max(v, 1)
}

// ApplyStage applies the stage multiplier: stage s<0 multiplies by 2 and
// divides by 2+|s|, s>0 multiplies by 2+s and divides by 2.
func ApplyStage(v, stage int) int {
	switch {
	case stage < 0:
		return scale(v, 2, 2-stage)
	case stage > 0:
		return scale(v, 2+stage, 2)
	default:
		return v
	}
}

func (s *Simulator) abilityRescale(c *creature.Creature, stat dex.Stat, cond *battle.Conditions, v int) int {
	ability := s.EffectiveAbility(c)
	statused := c.Status != creature.StatusNone
	switch stat {
	case dex.Attack:
		switch {
		case ability == dex.AbilityFlowerGift && cond.Sunny():
			v = scale(v, 3, 2)
		case ability == dex.AbilityGorillaTactics:
			v = scale(v, 3, 2)
		case ability == dex.AbilityGuts && statused:
			v = scale(v, 3, 2)
		case ability == dex.AbilityHustle:
			v = scale(v, 3, 2)
		case ability == dex.AbilityOrichalcumPulse && cond.Sunny():
			v = scale(v, 5461, 4096)
		case ability == dex.AbilityHugePower, ability == dex.AbilityPurePower:
			v = scale(v, 2, 1)
		}
	case dex.Defense:
		switch {
		case ability == dex.AbilityFurCoat:
			v = scale(v, 2, 1)
		case ability == dex.AbilityGrassPelt && cond.IsTerrain(battle.TerrainGrassy):
			v = scale(v, 3, 2)
		case ability == dex.AbilityMarvelScale && statused:
			v = scale(v, 3, 2)
		}
	case dex.SpecialAttack:
		switch {
		case ability == dex.AbilityHadronEngine && cond.IsTerrain(battle.TerrainElectric):
			v = scale(v, 5461, 4096)
		case ability == dex.AbilitySolarPower && cond.Sunny():
			v = scale(v, 3, 2)
		}
	case dex.SpecialDefense:
		if ability == dex.AbilityFlowerGift && cond.Sunny() {
			v = scale(v, 3, 2)
		}
	case dex.Speed:
		switch {
		case ability == dex.AbilityChlorophyll && cond.Sunny():
			v = scale(v, 2, 1)
		case ability == dex.AbilityQuickFeet && statused:
			v = scale(v, 3, 2)
		case ability == dex.AbilitySandRush && cond.IsWeather(battle.WeatherSandstorm):
			v = scale(v, 2, 1)
		case ability == dex.AbilitySlushRush && cond.Snowy():
			v = scale(v, 2, 1)
		case ability == dex.AbilitySurgeSurfer && cond.IsTerrain(battle.TerrainElectric):
			v = scale(v, 2, 1)
		case ability == dex.AbilitySwiftSwim && cond.Rainy():
			v = scale(v, 2, 1)
		}
	}
	return v
}

func (s *Simulator) fieldRescale(c *creature.Creature, stat dex.Stat, cond *battle.Conditions, v int) int {
	switch {
	case stat == dex.SpecialDefense && s.gen >= 4 && cond.IsWeather(battle.WeatherSandstorm) && c.HasType(dex.TypeRock):
		v = scale(v, 3, 2)
	case stat == dex.Defense && s.gen >= 9 && cond.IsWeather(battle.WeatherSnow) && c.HasType(dex.TypeIce):
		v = scale(v, 3, 2)
	}
	return v
}

func (s *Simulator) itemRescale(c *creature.Creature, stat dex.Stat, v int) int {
	item := c.Item
	if item == dex.ItemNone {
		return v
	}
	switch stat {
	case dex.Attack:
		switch {
		case item == dex.ItemChoiceBand:
			v = scale(v, 3, 2)
		case item == dex.ItemLightBall && c.Species == speciesPikachu && s.gen >= 5:
			v = scale(v, 2, 1)
		}
	case dex.Defense:
		if item == dex.ItemMetalPowder && c.Species == speciesDitto {
			if s.gen == 2 {
				v = scale(v, 3, 2)
			} else {
				v = scale(v, 2, 1)
			}
		}
	case dex.SpecialAttack:
		switch {
		case item == dex.ItemChoiceSpecs:
			v = scale(v, 3, 2)
		case item == dex.ItemLightBall && c.Species == speciesPikachu && s.gen != 4:
			v = scale(v, 2, 1)
		case item == dex.ItemDeepSeaTooth && c.Species == speciesClamperl:
			v = scale(v, 2, 1)
		}
	case dex.SpecialDefense:
		switch {
		case item == dex.ItemAssaultVest:
			v = scale(v, 3, 2)
		case item == dex.ItemMetalPowder && c.Species == speciesDitto && s.gen == 2:
			v = scale(v, 3, 2)
		case item == dex.ItemDeepSeaScale && c.Species == speciesClamperl:
			v = scale(v, 2, 1)
		}
	case dex.Speed:
		switch {
		case item == dex.ItemChoiceScarf:
			v = scale(v, 3, 2)
		case item == dex.ItemQuickPowder && c.Species == speciesDitto:
			v = scale(v, 2, 1)
		}
	}
	return v
}

func (s *Simulator) statusRescale(c *creature.Creature, stat dex.Stat, v int, burn bool) int {
	ability := s.EffectiveAbility(c)
	switch {
	case burn && stat == dex.Attack && c.Status == creature.StatusBurn && ability != dex.AbilityGuts:
		v /= 2
	case stat == dex.Speed && c.Status == creature.StatusParalysis && ability != dex.AbilityQuickFeet:
		if s.gen <= 6 {
			v /= 4
		} else {
			v /= 2
		}
	}
	return v
}

// turnSpeed is the speed used for ordering: the effective speed, doubled
// under the side's tailwind.
func (s *Simulator) turnSpeed(side *battle.Side, cond *battle.Conditions) int {
	v := s.EffectiveStat(side.ActiveCreature(), dex.Speed, cond)
	if side.Effects.Tailwind() > 0 {
		v = scale(v, 2, 1)
	}
	return v
}

// accuracyMultiplier applies the accuracy/evasion stage table, which uses
// thirds rather than halves.
func accuracyMultiplier(v, stage int) int {
	stage = min(max(stage, creature.MinStage), creature.MaxStage)
	switch {
	case stage < 0:
		return scale(v, 3, 3-stage)
	case stage > 0:
		return scale(v, 3+stage, 3)
	default:
		return v
	}
}
