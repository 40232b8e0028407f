package controller

import (
	"context"
	"fmt"

	"github.com/cory-johannsen/monbattle/internal/game/ai"
	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
	"github.com/cory-johannsen/monbattle/internal/scripting"
)

// Hooks a controller script defines.
const (
	HookChooseAction = "choose_action"
	HookChooseSwitch = "choose_switch"
)

// Lua delegates decisions to a script. choose_action(view) returns a table
// {kind = "move", move = id}, {kind = "switch", index = n} or
// {kind = "item", item = id}; choose_switch(view) returns a roster index.
// Indices are 1-based on the Lua side.
type Lua struct {
	caller ai.ScriptCaller
	key    string
	roller *dice.Roller
}

// NewLua creates a controller whose hooks run in key's VM. The script's
// engine.random and engine.dice draw from roller; nil leaves them on the
// script manager's own roller.
//
// Precondition: caller must be non-nil.
func NewLua(caller ai.ScriptCaller, key string, roller *dice.Roller) *Lua {
	if caller == nil {
		panic("controller: NewLua called with nil caller")
	}
	return &Lua{caller: caller, key: key, roller: roller}
}

func (l *Lua) ChooseAction(ctx context.Context, view battle.View, _ battle.SideID) (battle.Action, error) {
	ctx = scripting.WithRoller(ctx, l.roller)
	ret, err := l.caller.CallHook(ctx, l.key, HookChooseAction, ai.ViewTable(view))
	if err != nil {
		return battle.Action{}, err
	}
	return decodeAction(ret)
}

func (l *Lua) ChooseSwitchIn(ctx context.Context, view battle.View, _ battle.SideID) (int, error) {
	ctx = scripting.WithRoller(ctx, l.roller)
	ret, err := l.caller.CallHook(ctx, l.key, HookChooseSwitch, ai.ViewTable(view))
	if err != nil {
		return 0, err
	}
	n, ok := ret.(int)
	if !ok {
		return 0, fmt.Errorf("%w: %s returned %v", ErrNoChoice, HookChooseSwitch, ret)
	}
	return n - 1, nil
}

func decodeAction(ret any) (battle.Action, error) {
	t, ok := ret.(map[string]any)
	if !ok {
		return battle.Action{}, fmt.Errorf("%w: %s returned %v", ErrNoChoice, HookChooseAction, ret)
	}
	switch t["kind"] {
	case "move":
		id, ok := t["move"].(string)
		if !ok {
			return battle.Action{}, fmt.Errorf("%w: move action without a move id", ErrNoChoice)
		}
		return battle.UseMove(dex.MoveID(dex.ToID(id))), nil
	case "switch":
		n, ok := t["index"].(int)
		if !ok {
			return battle.Action{}, fmt.Errorf("%w: switch action without an index", ErrNoChoice)
		}
		return battle.Switch(n - 1), nil
	case "item":
		id, ok := t["item"].(string)
		if !ok {
			return battle.Action{}, fmt.Errorf("%w: item action without an item id", ErrNoChoice)
		}
		return battle.UseItem(dex.Item(dex.ToID(id))), nil
	default:
		return battle.Action{}, fmt.Errorf("%w: unknown action kind %v", ErrNoChoice, t["kind"])
	}
}

// BindDex exposes d to scripts through engine.dex.
func BindDex(m *scripting.Manager, d dex.Provider) {
	m.LookupMove = func(id string) (scripting.MoveInfo, bool) {
		mv, ok := d.Move(dex.MoveID(dex.ToID(id)))
		if !ok {
			return scripting.MoveInfo{}, false
		}
		return scripting.MoveInfo{
			ID:       string(mv.ID),
			Name:     mv.Name,
			Type:     string(mv.Type),
			Class:    mv.Class.String(),
			Power:    mv.Power,
			Accuracy: mv.Accuracy,
			Priority: mv.Priority,
		}, true
	}
	m.Effectiveness = func(attack, defend string) (int, bool) {
		a, err := dex.ParseType(attack)
		if err != nil {
			return 0, false
		}
		t, err := dex.ParseType(defend)
		if err != nil {
			return 0, false
		}
		return d.Effectiveness(a, t), true
	}
}
