package controller

import (
	"context"

	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
)

// Random picks uniformly among the legal actions.
type Random struct {
	roller *dice.Roller
	dex    dex.Provider
}

// NewRandom creates a Random controller. d may be nil.
//
// Precondition: roller must be non-nil.
func NewRandom(roller *dice.Roller, d dex.Provider) *Random {
	if roller == nil {
		panic("controller: NewRandom called with nil roller")
	}
	return &Random{roller: roller, dex: d}
}

func (r *Random) ChooseAction(_ context.Context, view battle.View, _ battle.SideID) (battle.Action, error) {
	legal := LegalActions(view, r.dex)
	if len(legal) == 0 {
		return battle.Action{}, ErrNoChoice
	}
	return legal[r.roller.Intn("random action", len(legal))], nil
}

func (r *Random) ChooseSwitchIn(_ context.Context, view battle.View, _ battle.SideID) (int, error) {
	opts := SwitchOptions(view)
	if len(opts) == 0 {
		return 0, ErrNoChoice
	}
	return opts[r.roller.Intn("random switch", len(opts))], nil
}
