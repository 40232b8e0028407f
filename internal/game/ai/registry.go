package ai

import (
	"fmt"
	"sort"
)

// Registry indexes Planners by domain ID.
//
// Invariant: each domain ID is registered at most once.
type Registry struct {
	planners map[string]*Planner
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{planners: make(map[string]*Planner)}
}

// Register creates and stores a Planner for domain whose preconditions run
// in key's VM.
//
// Precondition: domain and caller must not be nil.
// Postcondition: returns error on domain ID collision.
func (r *Registry) Register(domain *Domain, caller ScriptCaller, key string) error {
	if _, exists := r.planners[domain.ID]; exists {
		return fmt.Errorf("ai.Registry: domain %q already registered", domain.ID)
	}
	r.planners[domain.ID] = NewPlanner(domain, caller, key)
	return nil
}

// PlannerFor returns the Planner for domainID, or false if not registered.
func (r *Registry) PlannerFor(domainID string) (*Planner, bool) {
	p, ok := r.planners[domainID]
	return p, ok
}

// IDs lists the registered domain IDs in sorted order.
func (r *Registry) IDs() []string {
	out := make([]string, 0, len(r.planners))
	for id := range r.planners {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
