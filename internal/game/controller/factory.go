package controller

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/monbattle/internal/game/ai"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
	"github.com/cory-johannsen/monbattle/internal/scripting"
)

// Controller kinds accepted by New. Kinds that take an argument are written
// "kind:arg".
const (
	KindRandom  = "random"
	KindGreedy  = "greedy"
	KindLua     = "lua"     // lua:<script path>
	KindPlanner = "planner" // planner:<domain id>
)

// ErrUnknownKind is returned by New for an unrecognised controller kind.
var ErrUnknownKind = errors.New("controller: unknown kind")

// Deps are the collaborators controllers are built from. Roller is the
// battle's own roller; Scripts and Planners are shared across battles.
type Deps struct {
	Dex        dex.Provider
	Generation int
	Roller     *dice.Roller
	Scripts    *scripting.Manager
	Planners   *ai.Registry
	Logger     *zap.Logger
}

// ParseSpec splits "kind:arg" into its parts.
func ParseSpec(spec string) (kind, arg string) {
	kind, arg, _ = strings.Cut(strings.TrimSpace(spec), ":")
	return strings.ToLower(kind), arg
}

// CheckSpec reports whether spec names a known kind with the argument it
// needs, without building anything.
func CheckSpec(spec string) error {
	kind, arg := ParseSpec(spec)
	switch kind {
	case KindRandom, KindGreedy:
		return nil
	case KindLua, KindPlanner:
		if arg == "" {
			return fmt.Errorf("controller: %q needs an argument (%s:<...>)", spec, kind)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, spec)
	}
}

// New builds the controller named by spec.
//
// Postcondition: lua specs load the script into deps.Scripts on first use;
// planner specs must name a domain already registered in deps.Planners.
func New(spec string, deps Deps) (Controller, error) {
	if err := CheckSpec(spec); err != nil {
		return nil, err
	}
	kind, arg := ParseSpec(spec)
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	switch kind {
	case KindRandom:
		return NewRandom(deps.Roller, deps.Dex), nil
	case KindGreedy:
		return NewGreedy(deps.Dex, deps.Generation), nil
	case KindLua:
		if deps.Scripts == nil {
			return nil, fmt.Errorf("controller: %q needs a script manager", spec)
		}
		if !deps.Scripts.Has(arg) {
			if err := deps.Scripts.LoadFile(arg, arg, 0); err != nil {
				return nil, err
			}
		}
		return NewLua(deps.Scripts, arg, deps.Roller), nil
	default:
		if deps.Planners == nil {
			return nil, fmt.Errorf("controller: %q needs a planner registry", spec)
		}
		p, ok := deps.Planners.PlannerFor(arg)
		if !ok {
			return nil, fmt.Errorf("controller: no planner domain %q", arg)
		}
		return NewPlanner(p, NewGreedy(deps.Dex, deps.Generation), NewRandom(deps.Roller, deps.Dex), logger), nil
	}
}
