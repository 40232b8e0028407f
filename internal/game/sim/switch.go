package sim

import (
	"fmt"

	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/creature"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// SwitchOut withdraws side's active creature: Natural Cure clears its
// status, Regenerator restores a third of its HP, and its volatile record
// is discarded. Fainted creatures only lose their volatile record.
func (s *Simulator) SwitchOut(side *battle.Side) {
	c := side.ActiveCreature()
	if !c.Fainted() {
		switch s.EffectiveAbility(c) {
		case dex.AbilityNaturalCure:
			if c.Status != creature.StatusNone {
				c.Cure()
				s.emit(side.ID, EventAbility, "%s was cured by natural cure", c.Name)
			}
		case dex.AbilityRegenerator:
			c.Heal(c.MaxHP / 3)
		}
	}
	c.Volatile.Clear()
	c.LastMove = ""
}

// SwitchIn makes index the active member of side, applies entry hazards and
// activates its entry ability.
//
// Precondition: side.CanSwitchTo(index), or index is the current active
// slot at battle start.
func (s *Simulator) SwitchIn(side, opp *battle.Side, cond *battle.Conditions, index int) {
	if index < 0 || index >= len(side.Team) || side.Team[index].Fainted() {
		panic(fmt.Sprintf("sim: SwitchIn called with illegal index %d", index))
	}
	side.Active = index
	c := side.ActiveCreature()
	s.emit(side.ID, EventSwitch, "%s was sent out", c.Name)
	s.applyHazards(side, cond)
	if !c.Fainted() {
		s.ActivateEntryAbility(side, opp, cond)
	}
}

// Switch performs a full switch: SwitchOut of the current active creature
// followed by SwitchIn of index.
func (s *Simulator) Switch(side, opp *battle.Side, cond *battle.Conditions, index int) {
	if !side.CanSwitchTo(index) {
		panic(fmt.Sprintf("sim: Switch called with illegal index %d", index))
	}
	s.SwitchOut(side)
	s.SwitchIn(side, opp, cond, index)
}

// Start activates both leads' entry abilities, faster side first.
func (s *Simulator) Start(state *battle.State) {
	first := s.fasterSide(state)
	for _, id := range []battle.SideID{first, first.Other()} {
		s.ActivateEntryAbility(state.Side(id), state.Opponent(id), &state.Conditions)
	}
}

func (s *Simulator) applyHazards(side *battle.Side, cond *battle.Conditions) {
	c := side.ActiveCreature()
	if c.Item == dex.ItemHeavyDutyBoots || !side.Effects.HasHazards() {
		return
	}
	e := &side.Effects
	if e.StealthRock() {
		eff := s.Effectiveness(dex.TypeRock, c)
		taken := c.TakeDamage(max(1, c.MaxHP*eff/800))
		s.emit(side.ID, EventDamage, "pointed stones dug into %s (%d)", c.Name, taken)
	}
	if s.grounded(c) {
		switch e.Spikes() {
		case 1:
			c.TakeDamage(fraction(c.MaxHP, 8))
		case 2:
			c.TakeDamage(fraction(c.MaxHP, 6))
		case 3:
			c.TakeDamage(fraction(c.MaxHP, 4))
		}
		if layers := e.ToxicSpikes(); layers > 0 {
			if c.HasType(dex.TypePoison) {
				e.ClearToxicSpikes()
				s.emit(side.ID, EventField, "%s absorbed the toxic spikes", c.Name)
			} else if layers == 1 {
				s.Inflict(side, creature.StatusPoison, nil, cond)
			} else {
				s.Inflict(side, creature.StatusBadlyPoison, nil, cond)
			}
		}
		if e.StickyWeb() {
			s.ChangeStages(side, true, StageChange{dex.Speed, -1})
		}
	}
	if c.Fainted() {
		s.emit(side.ID, EventFaint, "%s fainted", c.Name)
	}
}
