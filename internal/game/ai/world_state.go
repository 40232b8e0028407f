package ai

import (
	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/creature"
)

// WorldState is the snapshot passed to the planner for one side.
type WorldState struct {
	View battle.View
}

// NewWorldState wraps a controller view.
func NewWorldState(view battle.View) *WorldState {
	return &WorldState{View: view}
}

// Own returns the planning side's active creature.
func (ws *WorldState) Own() *creature.Creature { return ws.View.Own.ActiveCreature() }

// Foe returns the opposing active creature.
func (ws *WorldState) Foe() *creature.Creature { return ws.View.Opponent.ActiveCreature() }

// HPPercent returns current HP as a percentage of MaxHP; 0 if MaxHP == 0.
func HPPercent(c *creature.Creature) float64 {
	if c.MaxHP <= 0 {
		return 0
	}
	return float64(c.HP) / float64(c.MaxHP) * 100
}

// Bench returns the roster indices the planning side may switch to.
//
// Postcondition: no index is fainted or currently active.
func (ws *WorldState) Bench() []int {
	var out []int
	own := ws.View.Own
	for i, c := range own.Team {
		if i != own.Active && !c.Fainted() {
			out = append(out, i)
		}
	}
	return out
}

// Healthiest returns the bench index with the highest HP percentage, or -1
// when the bench is empty. Ties go to the lower index.
func (ws *WorldState) Healthiest() int {
	best := -1
	for _, i := range ws.Bench() {
		if best < 0 || HPPercent(ws.View.Own.Team[i]) > HPPercent(ws.View.Own.Team[best]) {
			best = i
		}
	}
	return best
}

// Table renders the view for Lua preconditions.
func (ws *WorldState) Table() map[string]any { return ViewTable(ws.View) }
