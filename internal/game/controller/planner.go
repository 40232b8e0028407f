package controller

import (
	"context"

	"go.uber.org/zap"

	"github.com/cory-johannsen/monbattle/internal/game/ai"
	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
	"github.com/cory-johannsen/monbattle/internal/scripting"
)

// Planner runs an HTN domain and plays the first planned action that
// resolves to something legal. When nothing in the plan is usable it falls
// back to Greedy, which also handles every switch-in.
type Planner struct {
	planner *ai.Planner
	greedy  *Greedy
	random  *Random
	logger  *zap.Logger
}

// NewPlanner wraps p.
//
// Precondition: every argument is non-nil.
func NewPlanner(p *ai.Planner, greedy *Greedy, random *Random, logger *zap.Logger) *Planner {
	if p == nil || greedy == nil || random == nil || logger == nil {
		panic("controller: NewPlanner called with nil dependency")
	}
	return &Planner{planner: p, greedy: greedy, random: random, logger: logger}
}

func (p *Planner) ChooseAction(ctx context.Context, view battle.View, side battle.SideID) (battle.Action, error) {
	ws := ai.NewWorldState(view)
	// Preconditions share one VM across battles; their draws come from this
	// battle's roller.
	plan, err := p.planner.Plan(scripting.WithRoller(ctx, p.random.roller), ws)
	if err != nil {
		return battle.Action{}, err
	}
	for _, step := range plan {
		a, ok := p.resolve(view, ws, step)
		if !ok || Validate(view, a) != nil {
			continue
		}
		p.logger.Debug("planned action",
			zap.String("domain", p.planner.Domain().ID),
			zap.String("operator", step.Operator),
			zap.Stringer("action", a),
		)
		return a, nil
	}
	return p.greedy.ChooseAction(ctx, view, side)
}

func (p *Planner) ChooseSwitchIn(ctx context.Context, view battle.View, side battle.SideID) (int, error) {
	return p.greedy.ChooseSwitchIn(ctx, view, side)
}

// resolve turns a planned step into a concrete action. It reports false
// when the selector finds nothing.
func (p *Planner) resolve(view battle.View, ws *ai.WorldState, step ai.PlannedAction) (battle.Action, bool) {
	moves := usableMoves(view, p.greedy.dex)
	switch step.Action {
	case ai.ActionAttack:
		switch step.Target {
		case "strongest", "":
			id, dmg := p.greedy.bestMove(moves, ws.Own(), ws.Foe(), view)
			return battle.UseMove(id), dmg > 0
		case "super_effective":
			id, ok := p.greedy.superEffective(moves, view)
			return battle.UseMove(id), ok
		case "random":
			if len(moves) == 0 {
				return battle.Action{}, false
			}
			return battle.UseMove(moves[p.random.roller.Intn("planned random move", len(moves))]), true
		}
	case ai.ActionMove:
		id := dex.MoveID(dex.ToID(step.Target))
		for _, m := range moves {
			if m == id {
				return battle.UseMove(id), true
			}
		}
	case ai.ActionSwitch:
		var i int
		switch step.Target {
		case "healthiest":
			i = ws.Healthiest()
		case "best_matchup":
			i, _ = p.greedy.bestSwitch(view)
		default:
			opts := SwitchOptions(view)
			if len(opts) == 0 {
				return battle.Action{}, false
			}
			i = opts[0]
		}
		return battle.Switch(i), i >= 0
	case ai.ActionItem:
		item := dex.Item(dex.ToID(step.Target))
		return battle.UseItem(item), view.Own.Bag.Count(item) > 0
	}
	return battle.Action{}, false
}
