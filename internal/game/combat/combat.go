// Package combat drives battles from start to finish. A Battle asks its two
// controllers for actions, hands them to the simulator one phase at a time
// and decides when the battle is over. The Engine tracks every live battle.
package combat

import (
	"github.com/google/uuid"

	"github.com/cory-johannsen/monbattle/internal/game/battle"
)

// Phase is a step of the turn state machine.
type Phase int

const (
	PhaseTurnStart Phase = iota
	PhaseActionsOrdered
	PhaseFirstActionResolved
	PhaseSecondActionResolved
	PhaseEndOfTurnTick
	PhaseForcedSwitch
	PhaseBattleOver
)

// String returns a human-readable phase label.
func (p Phase) String() string {
	switch p {
	case PhaseTurnStart:
		return "turn start"
	case PhaseActionsOrdered:
		return "actions ordered"
	case PhaseFirstActionResolved:
		return "first action resolved"
	case PhaseSecondActionResolved:
		return "second action resolved"
	case PhaseEndOfTurnTick:
		return "end of turn"
	case PhaseForcedSwitch:
		return "forced switch"
	case PhaseBattleOver:
		return "battle over"
	default:
		return "unknown"
	}
}

// Outcome is how a battle ended.
type Outcome int

const (
	OutcomeUndecided Outcome = iota
	OutcomeWin
	OutcomeDraw
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeDraw:
		return "draw"
	default:
		return "undecided"
	}
}

// Reasons recorded on a Result.
const (
	ReasonWipe      = "all opposing creatures fainted"
	ReasonDoubleKO  = "both sides fainted"
	ReasonTurnLimit = "turn limit reached"
)

// Result summarises a finished battle.
//
// Invariant: Winner is meaningful only when Outcome == OutcomeWin.
type Result struct {
	BattleID uuid.UUID
	Outcome  Outcome
	Winner   battle.SideID
	Turns    int
	// Forfeit is true when the loser was a controller that failed to decide.
	Forfeit bool
	Reason  string
	// Remaining is the count of non-fainted creatures per side.
	Remaining [2]int
}

// Won reports whether side won the battle.
func (r Result) Won(side battle.SideID) bool {
	return r.Outcome == OutcomeWin && r.Winner == side
}
