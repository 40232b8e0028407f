package combat

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Engine tracks every live Battle, keyed by battle id.
// All methods are safe for concurrent use.
type Engine struct {
	mu      sync.RWMutex
	battles map[uuid.UUID]*Battle
}

// NewEngine creates an empty Engine.
func NewEngine() *Engine {
	return &Engine{battles: make(map[uuid.UUID]*Battle)}
}

// Start registers b as live.
//
// Precondition: b must be non-nil.
// Postcondition: returns an error if a battle with the same id is already live.
func (e *Engine) Start(b *Battle) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.battles[b.ID()]; exists {
		return fmt.Errorf("battle %s already running", b.ID())
	}
	e.battles[b.ID()] = b
	return nil
}

// Get returns the live battle with id.
func (e *Engine) Get(id uuid.UUID) (*Battle, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	b, ok := e.battles[id]
	return b, ok
}

// End removes the battle with id. Ending an unknown id is a no-op.
func (e *Engine) End(id uuid.UUID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.battles, id)
}

// Live returns the number of battles in progress.
func (e *Engine) Live() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.battles)
}

// Run registers b, runs it to completion and removes it again.
func (e *Engine) Run(ctx context.Context, b *Battle) (Result, error) {
	if err := e.Start(b); err != nil {
		return Result{}, err
	}
	defer e.End(b.ID())
	return b.Run(ctx), nil
}
