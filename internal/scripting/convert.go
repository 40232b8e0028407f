package scripting

import (
	"fmt"
	"math"
	"sort"

	lua "github.com/yuin/gopher-lua"
)

// ToLua converts a Go value into a Lua value. Supported inputs are nil,
// bool, the integer and float kinds, string, []any, []string, []int,
// map[string]any and lua.LValue (passed through).
//
// Precondition: v is one of the supported kinds; anything else panics.
func ToLua(L *lua.LState, v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case lua.LValue:
		return x
	case bool:
		return lua.LBool(x)
	case int:
		return lua.LNumber(x)
	case int64:
		return lua.LNumber(x)
	case float64:
		return lua.LNumber(x)
	case string:
		return lua.LString(x)
	case []string:
		t := L.CreateTable(len(x), 0)
		for _, s := range x {
			t.Append(lua.LString(s))
		}
		return t
	case []int:
		t := L.CreateTable(len(x), 0)
		for _, n := range x {
			t.Append(lua.LNumber(n))
		}
		return t
	case []any:
		t := L.CreateTable(len(x), 0)
		for _, e := range x {
			t.Append(ToLua(L, e))
		}
		return t
	case map[string]any:
		t := L.CreateTable(0, len(x))
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			t.RawSetString(k, ToLua(L, x[k]))
		}
		return t
	default:
		panic(fmt.Sprintf("scripting: cannot convert %T to a Lua value", v))
	}
}

// FromLua converts a Lua value into plain Go data. Integral numbers become
// int, other numbers float64. A table whose keys are exactly 1..n becomes
// []any; any other table becomes map[string]any with keys formatted by
// their Lua string form. Functions and userdata become nil.
func FromLua(v lua.LValue) any {
	switch x := v.(type) {
	case lua.LBool:
		return bool(x)
	case lua.LNumber:
		f := float64(x)
		if f == math.Trunc(f) && math.Abs(f) < math.MaxInt32 {
			return int(f)
		}
		return f
	case lua.LString:
		return string(x)
	case *lua.LTable:
		return tableFromLua(x)
	default:
		return nil
	}
}

func tableFromLua(t *lua.LTable) any {
	n := t.MaxN()
	count := 0
	t.ForEach(func(lua.LValue, lua.LValue) { count++ })
	if n > 0 && n == count {
		out := make([]any, n)
		for i := 1; i <= n; i++ {
			out[i-1] = FromLua(t.RawGetInt(i))
		}
		return out
	}
	out := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		out[k.String()] = FromLua(v)
	})
	return out
}
