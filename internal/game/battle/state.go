// Package battle holds the mutable state of one battle: two sides, the
// shared field conditions and the turn counter, plus the actions and
// read-only views exchanged with controllers.
package battle

import "github.com/cory-johannsen/monbattle/internal/game/creature"

// State is the complete mutable state of a battle. It is owned by a single
// goroutine for the battle's lifetime.
type State struct {
	Sides      [2]*Side
	Conditions Conditions
	Turn       int
}

// NewState creates a battle between two rosters with the first member of
// each active.
//
// Precondition: both teams are non-empty.
func NewState(team1, team2 []*creature.Creature) *State {
	if len(team1) == 0 || len(team2) == 0 {
		panic("battle: NewState called with an empty team")
	}
	return &State{
		Sides: [2]*Side{
			{ID: Side1, Team: team1},
			{ID: Side2, Team: team2},
		},
	}
}

// Side returns the side with the given id.
func (s *State) Side(id SideID) *Side { return s.Sides[id] }

// Opponent returns the side facing id.
func (s *State) Opponent(id SideID) *Side { return s.Sides[id.Other()] }

// Snapshot is a deep copy of one side, safe to hand to a controller.
type Snapshot struct {
	Active  int
	Team    []*creature.Creature
	Effects SideEffects
	Bag     Bag
}

// ActiveCreature returns the snapshot of the active creature.
func (s Snapshot) ActiveCreature() *creature.Creature { return s.Team[s.Active] }

// View is what a controller sees when choosing: its own side, the opposing
// side and the field. Mutating a View never affects the battle.
type View struct {
	Turn       int
	Self       SideID
	Own        Snapshot
	Opponent   Snapshot
	Conditions Conditions
}

func snapshot(s *Side) Snapshot {
	team := make([]*creature.Creature, len(s.Team))
	for i, c := range s.Team {
		team[i] = c.Clone()
	}
	return Snapshot{Active: s.Active, Team: team, Effects: s.Effects, Bag: s.Bag.Clone()}
}

// View builds the controller view for side id.
func (s *State) View(id SideID) View {
	return View{
		Turn:       s.Turn,
		Self:       id,
		Own:        snapshot(s.Side(id)),
		Opponent:   snapshot(s.Opponent(id)),
		Conditions: s.Conditions,
	}
}
