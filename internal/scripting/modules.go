package scripting

import (
	"context"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/monbattle/internal/game/dice"
)

// RegisterModules registers all engine.* Lua tables into L:
//
//	engine.log.{debug,info,warn,error}(msg)
//	engine.random(n)              -> integer in [1, n]
//	engine.dice.roll(expr)        -> {total, dice, modifier}
//	engine.dex.move(id)           -> move table or nil
//	engine.dex.effectiveness(a,d) -> percent or nil
//
// Precondition: L must be from NewSandboxedState.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "log", m.logModule(L))
	L.SetField(engine, "dice", m.diceModule(L))
	L.SetField(engine, "dex", m.dexModule(L))
	L.SetField(engine, "random", L.NewFunction(m.luaRandom))
	L.SetGlobal("engine", engine)
}

type rollerKey struct{}

// WithRoller returns a context under which engine.random and engine.dice
// draw from r instead of the Manager's roller. A battle passes its own
// roller so its script draws do not interleave with other battles.
func WithRoller(ctx context.Context, r *dice.Roller) context.Context {
	if r == nil {
		return ctx
	}
	return context.WithValue(ctx, rollerKey{}, r)
}

// rollerFor returns the roller bound to the running call, or the Manager's.
func (m *Manager) rollerFor(L *lua.LState) *dice.Roller {
	if ctx := L.Context(); ctx != nil {
		if r, ok := ctx.Value(rollerKey{}).(*dice.Roller); ok {
			return r
		}
	}
	return m.roller
}

func (m *Manager) logModule(L *lua.LState) *lua.LTable {
	t := L.NewTable()
	levels := map[string]func(string, ...zap.Field){
		"debug": m.logger.Debug,
		"info":  m.logger.Info,
		"warn":  m.logger.Warn,
		"error": m.logger.Error,
	}
	for name, logf := range levels {
		L.SetField(t, name, L.NewFunction(func(L *lua.LState) int {
			logf(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}))
	}
	return t
}

func (m *Manager) luaRandom(L *lua.LState) int {
	n := L.CheckInt(1)
	if n <= 0 {
		L.ArgError(1, "n must be positive")
		return 0
	}
	L.Push(lua.LNumber(m.rollerFor(L).Intn("lua random", n) + 1))
	return 1
}

func (m *Manager) diceModule(L *lua.LState) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "roll", L.NewFunction(func(L *lua.LState) int {
		expr, err := dice.Parse(L.CheckString(1))
		if err != nil {
			L.ArgError(1, err.Error())
			return 0
		}
		res := m.rollerFor(L).Roll(expr)
		sum := 0
		for _, d := range res.Dice {
			sum += d
		}
		out := L.NewTable()
		out.RawSetString("total", lua.LNumber(res.Total()))
		out.RawSetString("dice", lua.LNumber(sum))
		out.RawSetString("modifier", lua.LNumber(res.Modifier))
		L.Push(out)
		return 1
	}))
	return t
}

func (m *Manager) dexModule(L *lua.LState) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "move", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		if m.LookupMove == nil {
			L.Push(lua.LNil)
			return 1
		}
		info, ok := m.LookupMove(id)
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(ToLua(L, map[string]any{
			"id":       info.ID,
			"name":     info.Name,
			"type":     info.Type,
			"class":    info.Class,
			"power":    info.Power,
			"accuracy": info.Accuracy,
			"priority": info.Priority,
		}))
		return 1
	}))
	L.SetField(t, "effectiveness", L.NewFunction(func(L *lua.LState) int {
		attack, defend := L.CheckString(1), L.CheckString(2)
		if m.Effectiveness == nil {
			L.Push(lua.LNil)
			return 1
		}
		pct, ok := m.Effectiveness(attack, defend)
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LNumber(pct))
		return 1
	}))
	return t
}
