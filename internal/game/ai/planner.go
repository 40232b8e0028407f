package ai

import (
	"context"
	"fmt"
)

// RootTask is the task every plan starts from.
const RootTask = "behave"

// maxSteps bounds decomposition so a cyclic domain cannot loop forever.
const maxSteps = 32

// ScriptCaller is the interface required by the Planner to evaluate Lua
// preconditions.
type ScriptCaller interface {
	// CallHook calls a named Lua function in the VM registered under key.
	// Returns (nil, nil) if the function is not defined.
	CallHook(ctx context.Context, key, hook string, args ...any) (any, error)
}

// PlannedAction is one primitive action produced by the planner.
type PlannedAction struct {
	Operator string
	Action   string // one of the Action* constants
	Target   string // selector or literal id
}

// Planner evaluates an HTN domain for one side and produces an ordered list
// of candidate actions for the current turn.
//
// Invariant: domain and caller must not be nil.
type Planner struct {
	domain *Domain
	caller ScriptCaller
	key    string
}

// NewPlanner constructs a Planner whose preconditions run in key's VM.
//
// Precondition: domain and caller must not be nil.
func NewPlanner(domain *Domain, caller ScriptCaller, key string) *Planner {
	if domain == nil {
		panic("ai.NewPlanner: domain must not be nil")
	}
	if caller == nil {
		panic("ai.NewPlanner: caller must not be nil")
	}
	return &Planner{domain: domain, caller: caller, key: key}
}

// Domain returns the planner's domain.
func (p *Planner) Domain() *Domain { return p.domain }

// Plan decomposes RootTask against state and returns the primitive actions
// in order. The caller uses the first one that is legal.
//
// Precondition: state must not be nil.
// Postcondition: returns a non-nil slice (may be empty). Lua failures are
// treated as a false precondition; only ctx cancellation is an error.
func (p *Planner) Plan(ctx context.Context, state *WorldState) ([]PlannedAction, error) {
	if state == nil {
		return nil, fmt.Errorf("ai.Planner.Plan: state must not be nil")
	}

	taskQueue := []string{RootTask}
	result := []PlannedAction{}
	steps := 0

	for len(taskQueue) > 0 && steps < maxSteps {
		steps++
		current := taskQueue[0]
		taskQueue = taskQueue[1:]

		if op, ok := p.domain.OperatorByID(current); ok {
			result = append(result, PlannedAction{Operator: op.ID, Action: op.Action, Target: op.Target})
			continue
		}

		method, err := p.findApplicableMethod(ctx, current, state)
		if err != nil {
			return nil, err
		}
		if method == nil {
			continue
		}
		taskQueue = append(append([]string(nil), method.Subtasks...), taskQueue...)
	}
	return result, nil
}

// findApplicableMethod returns the first Method for taskID whose
// precondition passes, or nil if none applies. Methods are tried in
// declaration order. An empty Precondition always passes.
func (p *Planner) findApplicableMethod(ctx context.Context, taskID string, state *WorldState) (*Method, error) {
	var table map[string]any
	for _, m := range p.domain.MethodsForTask(taskID) {
		if m.Precondition == "" {
			return m, nil
		}
		if table == nil {
			table = state.Table()
		}
		val, err := p.caller.CallHook(ctx, p.key, m.Precondition, table)
		if err != nil {
			return nil, err
		}
		if val == true {
			return m, nil
		}
	}
	return nil, nil
}
