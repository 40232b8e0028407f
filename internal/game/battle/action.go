package battle

import (
	"fmt"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// ActionKind classifies a turn action.
type ActionKind int

const (
	ActionMove ActionKind = iota
	ActionSwitch
	ActionItem
)

func (k ActionKind) String() string {
	switch k {
	case ActionSwitch:
		return "switch"
	case ActionItem:
		return "item"
	default:
		return "move"
	}
}

// SwitchPriority is the priority tier of switches and item use, above every
// move priority.
const SwitchPriority = 8

// Action is one side's choice for a turn. Exactly one of Move, Switch or
// Item is meaningful, as selected by Kind.
type Action struct {
	Kind   ActionKind
	Move   dex.MoveID
	Switch int
	Item   dex.Item
}

// UseMove selects a move from the active creature's moveset.
func UseMove(id dex.MoveID) Action { return Action{Kind: ActionMove, Move: id} }

// Switch selects a roster index to bring in.
func Switch(index int) Action { return Action{Kind: ActionSwitch, Switch: index} }

// UseItem selects a bag item to use on the active creature.
func UseItem(item dex.Item) Action { return Action{Kind: ActionItem, Item: item} }

func (a Action) String() string {
	switch a.Kind {
	case ActionSwitch:
		return fmt.Sprintf("switch(%d)", a.Switch)
	case ActionItem:
		return fmt.Sprintf("item(%s)", a.Item)
	default:
		return fmt.Sprintf("move(%s)", a.Move)
	}
}
