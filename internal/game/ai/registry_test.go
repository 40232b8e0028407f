package ai_test

import (
	"testing"

	"github.com/cory-johannsen/monbattle/internal/game/ai"
)

func TestRegistry_Register_And_PlannerFor(t *testing.T) {
	reg := ai.NewRegistry()
	if err := reg.Register(cautiousDomain(), &mockScriptCaller{}, "side1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	planner, ok := reg.PlannerFor("cautious")
	if !ok || planner == nil {
		t.Fatal("expected planner for cautious")
	}
	if ids := reg.IDs(); len(ids) != 1 || ids[0] != "cautious" {
		t.Fatalf("unexpected IDs %v", ids)
	}
}

func TestRegistry_Register_CollisionError(t *testing.T) {
	reg := ai.NewRegistry()
	caller := &mockScriptCaller{}
	_ = reg.Register(cautiousDomain(), caller, "side1")
	if err := reg.Register(cautiousDomain(), caller, "side1"); err == nil {
		t.Fatal("expected collision error on second Register")
	}
}

func TestRegistry_PlannerFor_NotFound(t *testing.T) {
	if _, ok := ai.NewRegistry().PlannerFor("missing"); ok {
		t.Fatal("expected not found")
	}
}
