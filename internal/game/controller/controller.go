// Package controller decides the actions of one side of a battle. The
// battle driver asks a Controller for a turn action every turn and for a
// replacement whenever the active creature faints.
package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/creature"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrIllegalAction marks a choice the rules do not allow.
	ErrIllegalAction = errors.New("controller: illegal action")
	// ErrNoChoice marks a controller that produced nothing usable.
	ErrNoChoice = errors.New("controller: no choice")
)

// Controller chooses actions for one side. Implementations only ever see a
// View, a deep copy of the battle, so they cannot mutate it.
type Controller interface {
	// ChooseAction returns the side's action for the coming turn.
	ChooseAction(ctx context.Context, view battle.View, side battle.SideID) (battle.Action, error)
	// ChooseSwitchIn returns the roster index to bring in after a faint.
	ChooseSwitchIn(ctx context.Context, view battle.View, side battle.SideID) (int, error)
}

// usableMoves lists the active creature's moves, leaving out a disabled
// move and, under taunt, status moves. When that would leave nothing the
// full moveset is returned.
func usableMoves(view battle.View, d dex.Provider) []dex.MoveID {
	c := view.Own.ActiveCreature()
	disabled, _ := c.Volatile.Get(creature.KindDisable)
	taunted := c.Volatile.Has(creature.KindTaunt)
	var out []dex.MoveID
	for _, id := range c.Moves {
		if disabled.Kind == creature.KindDisable && disabled.Move == id {
			continue
		}
		if taunted && d != nil {
			if mv, ok := d.Move(id); ok && mv.Class == dex.Status {
				continue
			}
		}
		out = append(out, id)
	}
	if len(out) == 0 {
		return append([]dex.MoveID(nil), c.Moves...)
	}
	return out
}

// SwitchOptions lists the roster indices the side may switch to.
func SwitchOptions(view battle.View) []int {
	var out []int
	for i, c := range view.Own.Team {
		if i != view.Own.Active && !c.Fainted() {
			out = append(out, i)
		}
	}
	return out
}

// LegalActions enumerates every legal turn action: each usable move, each
// switch target and each bag item in stock. d may be nil, in which case
// taunt does not filter status moves.
func LegalActions(view battle.View, d dex.Provider) []battle.Action {
	var out []battle.Action
	for _, id := range usableMoves(view, d) {
		out = append(out, battle.UseMove(id))
	}
	for _, i := range SwitchOptions(view) {
		out = append(out, battle.Switch(i))
	}
	for _, it := range view.Own.Bag.Items() {
		out = append(out, battle.UseItem(it))
	}
	return out
}

// Validate checks a against the rules for the view's side.
//
// Postcondition: a nil return means the driver may execute a; otherwise the
// error wraps ErrIllegalAction.
func Validate(view battle.View, a battle.Action) error {
	c := view.Own.ActiveCreature()
	switch a.Kind {
	case battle.ActionMove:
		if !c.KnowsMove(a.Move) {
			return fmt.Errorf("%w: %s does not know %q", ErrIllegalAction, c.Name, a.Move)
		}
	case battle.ActionSwitch:
		if err := ValidateSwitchIn(view, a.Switch); err != nil {
			return err
		}
	case battle.ActionItem:
		if !a.Item.IsBagItem() {
			return fmt.Errorf("%w: %q is not a usable item", ErrIllegalAction, a.Item)
		}
		if view.Own.Bag.Count(a.Item) == 0 {
			return fmt.Errorf("%w: no %q left", ErrIllegalAction, a.Item)
		}
	default:
		return fmt.Errorf("%w: unknown action kind %d", ErrIllegalAction, a.Kind)
	}
	return nil
}

// ValidateSwitchIn checks that index names a healthy benched creature.
func ValidateSwitchIn(view battle.View, index int) error {
	if index < 0 || index >= len(view.Own.Team) {
		return fmt.Errorf("%w: switch index %d out of range", ErrIllegalAction, index)
	}
	if index == view.Own.Active {
		return fmt.Errorf("%w: %s is already active", ErrIllegalAction, view.Own.Team[index].Name)
	}
	if view.Own.Team[index].Fainted() {
		return fmt.Errorf("%w: %s has fainted", ErrIllegalAction, view.Own.Team[index].Name)
	}
	return nil
}
