// Package scripting hosts sandboxed GopherLua VMs for battle controllers.
// It has no dependency on the battle engine; reference data lookups are
// injected via Manager callback fields.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the maximum number of Lua opcodes one script
// load or one hook call may execute when no override is configured.
const DefaultInstructionLimit = 100_000

// countingContext cancels itself after Done() has been called limit times.
// GopherLua's mainLoopWithContext calls Done() once per opcode, making this
// an exact instruction-count limit.
type countingContext struct {
	context.Context
	cancel    context.CancelFunc
	remaining *atomic.Int64
}

func (c *countingContext) Done() <-chan struct{} {
	if c.remaining.Add(-1) <= 0 {
		c.cancel()
	}
	return c.Context.Done()
}

// newCountingContext returns a context derived from parent that cancels
// after limit calls to Done().
//
// Precondition: limit > 0.
func newCountingContext(parent context.Context, limit int) (context.Context, context.CancelFunc) {
	base, cancel := context.WithCancel(parent)
	rem := &atomic.Int64{}
	rem.Store(int64(limit))
	return &countingContext{Context: base, cancel: cancel, remaining: rem}, cancel
}

func effectiveLimit(instLimit int) int {
	if instLimit <= 0 {
		return DefaultInstructionLimit
	}
	return instLimit
}

// NewSandboxedState creates a GopherLua LState with:
//   - Only safe stdlib loaded: base, table, string, math
//   - Dangerous globals removed: dofile, loadfile, load, collectgarbage, require
//   - Execution limited to at most instLimit Lua opcodes
//
// The limit installed here covers whatever the caller runs next; Manager
// replaces it with a fresh budget before every hook call.
//
// Precondition: instLimit >= 0; 0 uses DefaultInstructionLimit.
// Postcondition: The caller owns the LState and must call L.Close().
func NewSandboxedState(instLimit int) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "collectgarbage", "require"} {
		L.SetGlobal(name, lua.LNil)
	}

	budget(L, context.Background(), instLimit)
	return L
}

// budget installs a fresh instruction budget on L, bound to ctx. The
// returned cancel releases the context once the call is finished.
func budget(L *lua.LState, ctx context.Context, instLimit int) context.CancelFunc {
	c, cancel := newCountingContext(ctx, effectiveLimit(instLimit))
	L.SetContext(c)
	return cancel
}
