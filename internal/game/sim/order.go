package sim

import (
	"github.com/cory-johannsen/monbattle/internal/game/battle"
)

// Priority returns the priority tier of action a: the
// switch tier for switches and items, otherwise the move's priority.
func (s *Simulator) Priority(a battle.Action) int {
	if a.Kind != battle.ActionMove {
		return battle.SwitchPriority
	}
	return s.move(a.Move).Priority
}

// Order decides which side acts first this turn: higher priority tier,
// then higher turn speed (tailwind and paralysis included), then a fair
// coin from the dice source.
//
// Postcondition: the Source is consumed only on a full tie.
func (s *Simulator) Order(a1, a2 battle.Action, state *battle.State) battle.SideID {
	p1, p2 := s.Priority(a1), s.Priority(a2)
	if p1 != p2 {
		if p1 > p2 {
			return battle.Side1
		}
		return battle.Side2
	}
	return s.fasterSide(state)
}

// fasterSide compares turn speed and breaks ties with a coin flip.
func (s *Simulator) fasterSide(state *battle.State) battle.SideID {
	sp1 := s.turnSpeed(state.Side(battle.Side1), &state.Conditions)
	sp2 := s.turnSpeed(state.Side(battle.Side2), &state.Conditions)
	switch {
	case sp1 > sp2:
		return battle.Side1
	case sp2 > sp1:
		return battle.Side2
	}
	if s.roll.Coin("speed tie") {
		return battle.Side1
	}
	return battle.Side2
}
