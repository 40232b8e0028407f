package sim

import (
	"fmt"

	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/creature"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// confusionHit is the typeless physical attack a confused creature uses on
// itself.
var confusionHit = &dex.Move{ID: "confusionhit", Name: "confusion", Class: dex.Physical, Power: 40}

// SimulateTurn resolves one full turn: both actions in order, then the end
// of turn. It does not perform forced switches.
//
// Precondition: both actions are legal for their side.
// Postcondition: returns the narration of the turn.
func (s *Simulator) SimulateTurn(state *battle.State, a1, a2 battle.Action) []Event {
	actions := [2]battle.Action{a1, a2}
	first := s.Order(a1, a2, state)
	s.PerformAction(state, first, actions[first])
	s.PerformAction(state, first.Other(), actions[first.Other()])
	s.EndOfTurn(state)
	return s.Events()
}

// PerformAction resolves one side's action. A fainted actor does nothing.
//
// Precondition: a is legal for side id.
func (s *Simulator) PerformAction(state *battle.State, id battle.SideID, a battle.Action) {
	side, opp := state.Side(id), state.Opponent(id)
	if side.ActiveCreature().Fainted() {
		return
	}
	switch a.Kind {
	case battle.ActionSwitch:
		s.Switch(side, opp, &state.Conditions, a.Switch)
	case battle.ActionItem:
		s.UseItem(side, a.Item)
	case battle.ActionMove:
		s.UseMove(s.move(a.Move), side, opp, &state.Conditions)
	default:
		panic(fmt.Sprintf("sim: unknown action kind %d", a.Kind))
	}
}

// UseMove resolves mv used by side's active creature against opp's.
func (s *Simulator) UseMove(mv *dex.Move, side, opp *battle.Side, cond *battle.Conditions) {
	user, target := side.ActiveCreature(), opp.ActiveCreature()
	if e, ok := user.Volatile.Get(creature.KindEncore); ok && e.Move != mv.ID && user.KnowsMove(e.Move) {
		mv = s.move(e.Move)
	}
	if !s.canAct(side, mv, cond) {
		return
	}
	if e, ok := user.Volatile.Get(creature.KindDisable); ok && e.Move == mv.ID {
		s.emit(side.ID, EventCantMove, "%s is disabled", mv.Name)
		return
	}
	if mv.Class == dex.Status && user.Volatile.Has(creature.KindTaunt) {
		s.emit(side.ID, EventCantMove, "%s can't use %s after the taunt", user.Name, mv.Name)
		return
	}
	user.LastMove = mv.ID
	s.emit(side.ID, EventMove, "%s used %s", user.Name, mv.Name)

	aimed := mv.Target == dex.TargetNormal
	if aimed && target.Fainted() {
		s.emit(side.ID, EventMiss, "but there was no target")
		return
	}
	if aimed && !s.hits(mv, user, target, cond) {
		s.emit(side.ID, EventMiss, "%s's attack missed", user.Name)
		return
	}

	dealt := 0
	if mv.Class != dex.Status {
		hit := HitProperties{Roll: MaxRoll, Screened: screened(opp, mv.Class)}
		if opp.Effects.LuckyChant() == 0 {
			hit.Critical = s.roll.Chance("critical", 1, s.critDenominator(s.critStage(user)))
		}
		hit.Roll = s.roll.Between("damage roll", MinRoll, MaxRoll)
		dmg := s.ComputeDamage(mv, user, target, cond, hit)
		if hit.Critical && dmg > 0 {
			s.emit(side.ID, EventCritical, "a critical hit")
		}
		switch eff := s.Effectiveness(mv.Type, target); {
		case eff == 0:
			s.emit(opp.ID, EventEffectiveness, "it doesn't affect %s", target.Name)
			return
		case eff > 100:
			s.emit(opp.ID, EventEffectiveness, "it's super effective")
		case eff < 100:
			s.emit(opp.ID, EventEffectiveness, "it's not very effective")
		}
		dealt = s.applyHit(mv, side, opp, cond, dmg)
	}

	if mv.Effect == dex.EffectNone {
		return
	}
	if mv.EffectChance > 0 && !s.roll.Chance("secondary effect", mv.EffectChance, 100) {
		return
	}
	s.ApplySecondaryEffect(mv.Effect, side, opp, cond, dealt)
}

func (s *Simulator) critStage(c *creature.Creature) int {
	if c.Volatile.Has(creature.KindFocusEnergy) {
		return 2
	}
	return 0
}

// hits rolls accuracy. Moves without an accuracy never miss.
func (s *Simulator) hits(mv *dex.Move, user, target *creature.Creature, cond *battle.Conditions) bool {
	if mv.Accuracy == 0 {
		return true
	}
	acc := accuracyMultiplier(mv.Accuracy, user.Volatile.Stage(dex.Accuracy)-target.Volatile.Stage(dex.Evasion))
	if mv.Class == dex.Physical && s.EffectiveAbility(user) == dex.AbilityHustle {
		acc = scale(acc, 3277, 4096)
	}
	return s.roll.Chance("accuracy", acc, 100)
}

// canAct applies the checks that stop a creature before it moves: flinch,
// sleep, freeze, paralysis and confusion.
func (s *Simulator) canAct(side *battle.Side, mv *dex.Move, cond *battle.Conditions) bool {
	c := side.ActiveCreature()
	if c.Volatile.Has(creature.KindFlinch) {
		s.emit(side.ID, EventCantMove, "%s flinched", c.Name)
		return false
	}
	switch c.Status {
	case creature.StatusSleep:
		if c.SleepTurns > 0 {
			c.SleepTurns--
			s.emit(side.ID, EventCantMove, "%s is fast asleep", c.Name)
			return false
		}
		c.Cure()
		s.emit(side.ID, EventStatus, "%s woke up", c.Name)
	case creature.StatusFreeze:
		if mv.Flags.Defrost || s.roll.Chance("thaw", 1, 5) {
			c.Cure()
			s.emit(side.ID, EventStatus, "%s thawed out", c.Name)
		} else {
			s.emit(side.ID, EventCantMove, "%s is frozen solid", c.Name)
			return false
		}
	case creature.StatusParalysis:
		if s.roll.Chance("full paralysis", 1, 4) {
			s.emit(side.ID, EventCantMove, "%s is fully paralyzed", c.Name)
			return false
		}
	}
	if c.Volatile.Has(creature.KindConfusion) {
		den := 2
		if s.gen >= 7 {
			den = 3
		}
		if s.roll.Chance("confusion", 1, den) {
			dmg := s.ComputeDamage(confusionHit, c, c, cond, HitProperties{Roll: MaxRoll})
			c.TakeDamage(dmg)
			s.emit(side.ID, EventDamage, "%s hurt itself in confusion (%d)", c.Name, dmg)
			if c.Fainted() {
				s.emit(side.ID, EventFaint, "%s fainted", c.Name)
			}
			return false
		}
	}
	return true
}

// applyHit removes damage from opp's active creature and runs everything a
// landed hit triggers: substitute absorption, survival items, Justified and
// contact abilities.
//
// Postcondition: returns the HP actually removed from the creature.
func (s *Simulator) applyHit(mv *dex.Move, side, opp *battle.Side, cond *battle.Conditions, damage int) int {
	attacker, defender := side.ActiveCreature(), opp.ActiveCreature()

	if sub, ok := defender.Volatile.Get(creature.KindSubstitute); ok && !mv.Flags.Sound && !mv.Flags.Authentic {
		sub.Magnitude -= damage
		if sub.Magnitude <= 0 {
			defender.Volatile.Remove(creature.KindSubstitute)
			s.emit(opp.ID, EventVolatile, "%s's substitute faded", defender.Name)
		} else {
			defender.Volatile.Update(sub)
			s.emit(opp.ID, EventVolatile, "the substitute took the hit")
		}
		return 0
	}

	damage = s.survive(opp, damage)
	dealt := defender.TakeDamage(damage)
	s.emit(opp.ID, EventDamage, "%s took %d damage", defender.Name, dealt)
	if defender.Fainted() {
		s.emit(opp.ID, EventFaint, "%s fainted", defender.Name)
	} else if mv.Type == dex.TypeDark && s.EffectiveAbility(defender) == dex.AbilityJustified {
		s.ChangeStages(opp, false, StageChange{dex.Attack, 1})
	}

	if mv.Flags.Contact && attacker.Item != dex.ItemProtectivePads {
		s.contactAbility(side, opp, cond)
	}
	if attacker.Item == dex.ItemLifeOrb && dealt > 0 && !attacker.Fainted() {
		attacker.TakeDamage(fraction(attacker.MaxHP, 10))
		if attacker.Fainted() {
			s.emit(side.ID, EventFaint, "%s fainted", attacker.Name)
		}
	}
	return dealt
}

// survive lets a creature at full HP hold on with 1 HP against a lethal hit:
// Sturdy first, then a Focus Sash (consumed), then a Focus Band (1 in 10).
func (s *Simulator) survive(side *battle.Side, damage int) int {
	c := side.ActiveCreature()
	if damage < c.HP || !c.FullHP() {
		return damage
	}
	switch {
	case s.EffectiveAbility(c) == dex.AbilitySturdy:
		s.emit(side.ID, EventHeldOn, "%s endured the hit with sturdy", c.Name)
	case c.Item == dex.ItemFocusSash:
		c.Item = dex.ItemNone
		s.emit(side.ID, EventHeldOn, "%s held on using its focus sash", c.Name)
	case c.Item == dex.ItemFocusBand && s.roll.Chance("focus band", 1, 10):
		s.emit(side.ID, EventHeldOn, "%s held on using its focus band", c.Name)
	default:
		return damage
	}
	return c.HP - 1
}

// UseItem applies a bag item to side's active creature. Unknown items do
// nothing.
func (s *Simulator) UseItem(side *battle.Side, item dex.Item) {
	c := side.ActiveCreature()
	s.emit(side.ID, EventItem, "%s used on %s", item, c.Name)
	xBoost := 1
	if s.gen >= 7 {
		xBoost = 2
	}
	switch item {
	case dex.ItemPotion:
		c.Heal(20)
	case dex.ItemSuperPotion:
		if s.gen >= 7 {
			c.Heal(60)
		} else {
			c.Heal(50)
		}
	case dex.ItemHyperPotion:
		if s.gen >= 7 {
			c.Heal(120)
		} else {
			c.Heal(200)
		}
	case dex.ItemMaxPotion:
		c.Heal(c.MaxHP)
	case dex.ItemFullRestore:
		c.Heal(c.MaxHP)
		c.Cure()
		c.Volatile.Remove(creature.KindConfusion)
	case dex.ItemFullHeal:
		c.Cure()
	case dex.ItemXAttack:
		s.ChangeStages(side, false, StageChange{dex.Attack, xBoost})
	case dex.ItemXDefense:
		s.ChangeStages(side, false, StageChange{dex.Defense, xBoost})
	case dex.ItemXSpAtk:
		s.ChangeStages(side, false, StageChange{dex.SpecialAttack, xBoost})
	case dex.ItemXSpDef:
		s.ChangeStages(side, false, StageChange{dex.SpecialDefense, xBoost})
	case dex.ItemXSpeed:
		s.ChangeStages(side, false, StageChange{dex.Speed, xBoost})
	default:
		s.logger.Debug("item has no battle use")
	}
}

// EndOfTurn applies residual effects to both actives, then advances every
// counter: volatile effects, side conditions, weather and terrain.
func (s *Simulator) EndOfTurn(state *battle.State) {
	cond := &state.Conditions
	for _, id := range []battle.SideID{battle.Side1, battle.Side2} {
		s.residual(state.Side(id), state.Opponent(id), cond)
	}
	for _, id := range []battle.SideID{battle.Side1, battle.Side2} {
		side := state.Side(id)
		c := side.ActiveCreature()
		for _, k := range c.Volatile.Tick() {
			if k == creature.KindPerishSong && !c.Fainted() {
				c.Faint()
				s.emit(id, EventFaint, "%s's perish count fell to zero", c.Name)
			}
		}
		side.Effects.Tick()
	}
	weatherEnded, terrainEnded := cond.Tick()
	if weatherEnded {
		s.emit(battle.Side1, EventField, "the weather cleared")
	}
	if terrainEnded {
		s.emit(battle.Side1, EventField, "the terrain faded")
	}
}

func (s *Simulator) residual(side, opp *battle.Side, cond *battle.Conditions) {
	c := side.ActiveCreature()
	if c.Fainted() {
		return
	}
	hurt := func(den int, why string) {
		taken := c.TakeDamage(fraction(c.MaxHP, den))
		s.emit(side.ID, EventDamage, "%s is hurt by %s (%d)", c.Name, why, taken)
	}

	switch {
	case cond.IsWeather(battle.WeatherSandstorm) && !c.HasType(dex.TypeRock) && !c.HasType(dex.TypeGround) && !c.HasType(dex.TypeSteel):
		hurt(16, "the sandstorm")
	case cond.IsWeather(battle.WeatherHail) && !c.HasType(dex.TypeIce):
		hurt(16, "the hail")
	}
	if c.Item == dex.ItemLeftovers {
		c.Heal(fraction(c.MaxHP, 16))
	}
	if cond.IsTerrain(battle.TerrainGrassy) && s.grounded(c) {
		c.Heal(fraction(c.MaxHP, 16))
	}
	if c.Volatile.Has(creature.KindAquaRing) {
		c.Heal(fraction(c.MaxHP, 16))
	}
	if c.Volatile.Has(creature.KindIngrain) {
		c.Heal(fraction(c.MaxHP, 16))
	}
	if c.Volatile.Has(creature.KindLeechSeed) && !c.Fainted() {
		sapped := c.TakeDamage(fraction(c.MaxHP, 8))
		opp.ActiveCreature().Heal(sapped)
		s.emit(side.ID, EventDamage, "%s's health is sapped by leech seed (%d)", c.Name, sapped)
	}
	switch c.Status {
	case creature.StatusPoison:
		hurt(8, "poison")
	case creature.StatusBadlyPoison:
		e, ok := c.Volatile.Get(creature.KindToxic)
		if !ok {
			e = creature.Effect{Kind: creature.KindToxic, Magnitude: 1}
			c.Volatile.Add(e)
		}
		taken := c.TakeDamage(max(1, c.MaxHP*e.Magnitude/16))
		s.emit(side.ID, EventDamage, "%s is hurt by poison (%d)", c.Name, taken)
		e.Magnitude = min(e.Magnitude+1, 15)
		c.Volatile.Update(e)
	case creature.StatusBurn:
		if s.gen >= 7 {
			hurt(16, "its burn")
		} else {
			hurt(8, "its burn")
		}
	}
	if c.Volatile.Has(creature.KindCurse) {
		hurt(4, "the curse")
	}
	if c.Fainted() {
		s.emit(side.ID, EventFaint, "%s fainted", c.Name)
	}
}
