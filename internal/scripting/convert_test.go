package scripting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	lua "github.com/yuin/gopher-lua"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/monbattle/internal/scripting"
)

func TestFromLua_Scalars(t *testing.T) {
	assert.Nil(t, scripting.FromLua(lua.LNil))
	assert.Equal(t, true, scripting.FromLua(lua.LTrue))
	assert.Equal(t, 3, scripting.FromLua(lua.LNumber(3)))
	assert.Equal(t, 2.5, scripting.FromLua(lua.LNumber(2.5)))
	assert.Equal(t, "x", scripting.FromLua(lua.LString("x")))
}

func TestToLua_UnsupportedPanics(t *testing.T) {
	L := scripting.NewSandboxedState(0)
	defer L.Close()
	assert.Panics(t, func() { scripting.ToLua(L, struct{}{}) })
}

func TestFromLua_MixedTableIsMap(t *testing.T) {
	L := scripting.NewSandboxedState(0)
	defer L.Close()
	tbl := L.NewTable()
	tbl.Append(lua.LString("a"))
	tbl.RawSetString("k", lua.LNumber(1))
	assert.Equal(t, map[string]any{"1": "a", "k": 1}, scripting.FromLua(tbl))
}

func TestProperty_StringListRoundTrip(t *testing.T) {
	L := scripting.NewSandboxedState(0)
	defer L.Close()
	rapid.Check(t, func(rt *rapid.T) {
		in := rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,8}`), 1, 6).Draw(rt, "in")
		out, ok := scripting.FromLua(scripting.ToLua(L, in)).([]any)
		if !ok || len(out) != len(in) {
			rt.Fatalf("round trip of %v produced %v", in, out)
		}
		for i := range in {
			if out[i] != in[i] {
				rt.Fatalf("element %d: %v != %v", i, out[i], in[i])
			}
		}
	})
}
