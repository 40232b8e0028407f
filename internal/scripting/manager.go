package scripting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/monbattle/internal/game/dice"
)

// GlobalKey is the reserved key for shared scripts loaded via LoadGlobal.
// CallHook falls back to this VM when no VM is registered under a key.
const GlobalKey = "__global__"

// MoveInfo is the reference data about one move exposed to scripts.
type MoveInfo struct {
	ID       string
	Name     string
	Type     string
	Class    string
	Power    int
	Accuracy int
	Priority int
}

// vm is one sandboxed LState. An LState is single-threaded, so every call
// into it holds mu.
type vm struct {
	mu    sync.Mutex
	L     *lua.LState
	limit int
}

// Manager owns one sandboxed VM per key and exposes hook dispatch.
//
// Manager is safe for concurrent use. Calls into different VMs run in
// parallel; calls into the same VM are serialized.
type Manager struct {
	mu     sync.RWMutex
	vms    map[string]*vm
	roller *dice.Roller
	logger *zap.Logger

	// Injected after construction. nil = engine.dex.* returns nil.
	LookupMove    func(id string) (MoveInfo, bool)
	Effectiveness func(attack, defend string) (int, bool)
}

// NewManager creates a Manager.
//
// Precondition: roller and logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no VMs.
func NewManager(roller *dice.Roller, logger *zap.Logger) *Manager {
	if roller == nil || logger == nil {
		panic("scripting: NewManager called with nil roller or logger")
	}
	return &Manager{
		vms:    make(map[string]*vm),
		roller: roller,
		logger: logger,
	}
}

// Load creates a sandboxed VM under key, registers the engine.* modules,
// then executes every *.lua file in scriptDir in lexicographic order. A VM
// already registered under key is replaced and closed.
//
// Precondition: key must be non-empty; scriptDir must be a readable directory.
func (m *Manager) Load(key, scriptDir string, instLimit int) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q for %q: %w", scriptDir, key, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			files = append(files, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(files)
	return m.loadInto(key, files, instLimit)
}

// LoadFile is Load for a single script file.
func (m *Manager) LoadFile(key, path string, instLimit int) error {
	return m.loadInto(key, []string{path}, instLimit)
}

// LoadGlobal creates the GlobalKey VM used as the CallHook fallback.
func (m *Manager) LoadGlobal(scriptDir string, instLimit int) error {
	return m.Load(GlobalKey, scriptDir, instLimit)
}

func (m *Manager) loadInto(key string, files []string, instLimit int) error {
	if key == "" {
		panic("scripting: empty VM key")
	}
	L := NewSandboxedState(instLimit)
	m.RegisterModules(L)

	for _, path := range files {
		cancel := budget(L, context.Background(), instLimit)
		err := L.DoFile(path)
		cancel()
		if err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q for %q: %w", path, key, err)
		}
	}

	m.mu.Lock()
	old := m.vms[key]
	m.vms[key] = &vm{L: L, limit: instLimit}
	m.mu.Unlock()

	if old != nil {
		old.mu.Lock()
		old.L.Close()
		old.mu.Unlock()
	}
	return nil
}

// Has reports whether a VM is registered under key.
func (m *Manager) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.vms[key]
	return ok
}

// CallHook calls the named Lua global function in key's VM, falling back to
// the GlobalKey VM. Each call runs under a fresh instruction budget bound
// to ctx. Arguments are converted with ToLua and the first return value
// with FromLua.
//
// Returns (nil, nil) if no VM exists or the hook is not defined. Lua runtime
// errors, including an exhausted budget, are logged at Warn level and also
// yield (nil, nil). Only ctx cancellation is returned as an error.
func (m *Manager) CallHook(ctx context.Context, key, hook string, args ...any) (any, error) {
	m.mu.RLock()
	v, ok := m.vms[key]
	if !ok {
		v = m.vms[GlobalKey]
	}
	m.mu.RUnlock()

	if v == nil {
		m.logger.Info("scripting: no VM for key",
			zap.String("key", key),
			zap.String("hook", hook),
		)
		return nil, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	L := v.L

	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return nil, nil
	}

	largs := make([]lua.LValue, len(args))
	for i, a := range args {
		largs[i] = ToLua(L, a)
	}

	cancel := budget(L, ctx, v.limit)
	defer cancel()
	if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, largs...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("key", key),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return nil, nil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return FromLua(ret), nil
}

// Close shuts down every VM.
func (m *Manager) Close() {
	m.mu.Lock()
	vms := m.vms
	m.vms = make(map[string]*vm)
	m.mu.Unlock()
	for _, v := range vms {
		v.mu.Lock()
		v.L.Close()
		v.mu.Unlock()
	}
}
