package rollout

import (
	"time"

	"github.com/google/uuid"

	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/combat"
)

// Summary aggregates a rollout.
//
// Invariant: Wins[0] + Wins[1] + Draws == Battles.
type Summary struct {
	RolloutID  uuid.UUID
	Battles    int
	Wins       [2]int
	Draws      int
	Forfeits   int
	TotalTurns int
	MinTurns   int
	MaxTurns   int
	Elapsed    time.Duration
	Records    []Record
}

// Summarize folds records into a Summary.
func Summarize(records []Record) *Summary {
	s := &Summary{Battles: len(records), Records: records}
	for i, rec := range records {
		res := rec.Result
		switch res.Outcome {
		case combat.OutcomeWin:
			s.Wins[res.Winner]++
		default:
			s.Draws++
		}
		if res.Forfeit {
			s.Forfeits++
		}
		s.TotalTurns += res.Turns
		if i == 0 || res.Turns < s.MinTurns {
			s.MinTurns = res.Turns
		}
		if res.Turns > s.MaxTurns {
			s.MaxTurns = res.Turns
		}
	}
	return s
}

// WinRate returns the fraction of battles side won.
func (s *Summary) WinRate(side battle.SideID) float64 {
	if s.Battles == 0 {
		return 0
	}
	return float64(s.Wins[side]) / float64(s.Battles)
}

// MeanTurns returns the average battle length.
func (s *Summary) MeanTurns() float64 {
	if s.Battles == 0 {
		return 0
	}
	return float64(s.TotalTurns) / float64(s.Battles)
}
