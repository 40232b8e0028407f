package sim

import (
	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/creature"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// ActivateEntryAbility runs the switch-in ability of side's active creature
// against opp.
func (s *Simulator) ActivateEntryAbility(side, opp *battle.Side, cond *battle.Conditions) {
	c := side.ActiveCreature()
	if c.Fainted() {
		return
	}
	foe := opp.ActiveCreature()
	ability := s.EffectiveAbility(c)

	switch ability {
	case dex.AbilityDauntlessShield:
		s.ChangeStages(side, false, StageChange{dex.Defense, 1})
	case dex.AbilityIntrepidSword:
		s.ChangeStages(side, false, StageChange{dex.Attack, 1})
	case dex.AbilityDownload:
		if foe.Fainted() {
			return
		}
		if s.EffectiveStat(foe, dex.Defense, cond) < s.EffectiveStat(foe, dex.SpecialDefense, cond) {
			s.ChangeStages(side, false, StageChange{dex.Attack, 1})
		} else {
			s.ChangeStages(side, false, StageChange{dex.SpecialAttack, 1})
		}
	case dex.AbilityDrizzle:
		s.SetWeather(cond, battle.WeatherRain, side, true)
	case dex.AbilityDrought, dex.AbilityOrichalcumPulse:
		s.SetWeather(cond, battle.WeatherSun, side, true)
	case dex.AbilitySandStream:
		s.SetWeather(cond, battle.WeatherSandstorm, side, true)
	case dex.AbilitySnowWarning:
		if s.gen >= 9 {
			s.SetWeather(cond, battle.WeatherSnow, side, true)
		} else {
			s.SetWeather(cond, battle.WeatherHail, side, true)
		}
	case dex.AbilityDesolateLand:
		s.SetWeather(cond, battle.WeatherExtremeSun, side, true)
	case dex.AbilityPrimordialSea:
		s.SetWeather(cond, battle.WeatherHeavyRain, side, true)
	case dex.AbilityDeltaStream:
		s.SetWeather(cond, battle.WeatherStrongWinds, side, true)
	case dex.AbilityElectricSurge, dex.AbilityHadronEngine:
		s.SetTerrain(cond, battle.TerrainElectric, side)
	case dex.AbilityGrassySurge:
		s.SetTerrain(cond, battle.TerrainGrassy, side)
	case dex.AbilityMistySurge:
		s.SetTerrain(cond, battle.TerrainMisty, side)
	case dex.AbilityPsychicSurge:
		s.SetTerrain(cond, battle.TerrainPsychic, side)
	case dex.AbilityIntimidate:
		if !foe.Fainted() {
			s.emit(side.ID, EventAbility, "%s's intimidate", c.Name)
			s.ChangeStages(opp, true, StageChange{dex.Attack, -1})
		}
	case dex.AbilitySupersweetSyrup:
		if !foe.Fainted() {
			s.ChangeStages(opp, true, StageChange{dex.Evasion, -1})
		}
	case dex.AbilityTrace:
		if foe.Fainted() {
			return
		}
		copied := s.EffectiveAbility(foe)
		if copied == dex.AbilityNone || copied == dex.AbilityTrace {
			return
		}
		c.Volatile.Remove(creature.KindAbilityChange)
		c.Volatile.Add(creature.Effect{Kind: creature.KindAbilityChange, Ability: copied})
		s.emit(side.ID, EventAbility, "%s traced %s", c.Name, copied)
		s.ActivateEntryAbility(side, opp, cond)
	}
}

// contactAbility reacts to attacker making contact with defender.
func (s *Simulator) contactAbility(attacker, defender *battle.Side, cond *battle.Conditions) {
	a, d := attacker.ActiveCreature(), defender.ActiveCreature()
	if a.Fainted() {
		return
	}
	switch s.EffectiveAbility(d) {
	case dex.AbilityEffectSpore:
		if a.Status == creature.StatusNone && !a.HasType(dex.TypeGrass) && s.roll.Chance("effect spore", 3, 10) {
			choices := []creature.Status{creature.StatusPoison, creature.StatusParalysis, creature.StatusSleep}
			s.Inflict(attacker, choices[s.roll.Intn("effect spore status", len(choices))], nil, cond)
		}
	case dex.AbilityFlameBody:
		if a.Status == creature.StatusNone && s.roll.Chance("flame body", 3, 10) {
			s.Inflict(attacker, creature.StatusBurn, nil, cond)
		}
	case dex.AbilityPoisonPoint:
		if a.Status == creature.StatusNone && s.roll.Chance("poison point", 3, 10) {
			s.Inflict(attacker, creature.StatusPoison, nil, cond)
		}
	case dex.AbilityStatic:
		if a.Status == creature.StatusNone && s.roll.Chance("static", 3, 10) {
			s.Inflict(attacker, creature.StatusParalysis, nil, cond)
		}
	case dex.AbilityGooey, dex.AbilityTanglingHair:
		s.ChangeStages(attacker, true, StageChange{dex.Speed, -1})
	case dex.AbilityIronBarbs, dex.AbilityRoughSkin:
		taken := a.TakeDamage(fraction(a.MaxHP, 8))
		s.emit(attacker.ID, EventDamage, "%s was hurt by %s (%d)", a.Name, d.Name, taken)
		if a.Fainted() {
			s.emit(attacker.ID, EventFaint, "%s fainted", a.Name)
		}
	case dex.AbilityMummy:
		if s.EffectiveAbility(a) != dex.AbilityMummy {
			a.Volatile.Remove(creature.KindAbilityChange)
			a.Volatile.Add(creature.Effect{Kind: creature.KindAbilityChange, Ability: dex.AbilityMummy})
			s.emit(attacker.ID, EventAbility, "%s's ability became mummy", a.Name)
		}
	}
}
