package controller

import (
	"context"

	"go.uber.org/zap"

	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/creature"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
	"github.com/cory-johannsen/monbattle/internal/game/sim"
)

// Greedy picks the move with the highest expected damage against the
// opposing active creature. When none of its moves can do damage it
// switches to the bench member that could, if any.
//
// Greedy owns a private Simulator used only for estimates; it never
// consumes the battle's dice.
type Greedy struct {
	dex dex.Provider
	est *sim.Simulator
}

// NewGreedy creates a Greedy controller for generation gen.
//
// Precondition: d is non-nil; gen is a valid generation.
func NewGreedy(d dex.Provider, gen int) *Greedy {
	roller := dice.NewRoller(dice.NewSeededSource(0), zap.NewNop())
	return &Greedy{dex: d, est: sim.New(d, gen, roller, zap.NewNop())}
}

// bestMove returns the move of c with the highest expected damage against
// foe and that damage. Ties keep the earlier move. An empty id means c has
// no known move.
func (g *Greedy) bestMove(moves []dex.MoveID, c, foe *creature.Creature, view battle.View) (dex.MoveID, int) {
	cond := view.Conditions
	var best dex.MoveID
	bestDmg := -1
	for _, id := range moves {
		mv, ok := g.dex.Move(id)
		if !ok {
			continue
		}
		dmg := g.est.ExpectedDamage(mv, c, foe, &cond, &view.Opponent.Effects)
		if dmg > bestDmg {
			best, bestDmg = id, dmg
		}
	}
	return best, max(bestDmg, 0)
}

// superEffective returns the move with the highest expected damage among
// those that are super effective against the opposing active creature.
func (g *Greedy) superEffective(moves []dex.MoveID, view battle.View) (dex.MoveID, bool) {
	foe := view.Opponent.ActiveCreature()
	var picked []dex.MoveID
	for _, id := range moves {
		if mv, ok := g.dex.Move(id); ok && mv.HasPower() && g.est.Effectiveness(mv.Type, foe) > 100 {
			picked = append(picked, id)
		}
	}
	if len(picked) == 0 {
		return "", false
	}
	id, dmg := g.bestMove(picked, view.Own.ActiveCreature(), foe, view)
	return id, dmg > 0
}

// bestSwitch returns the bench index with the highest best-move damage, or
// -1 when the bench is empty.
func (g *Greedy) bestSwitch(view battle.View) (int, int) {
	foe := view.Opponent.ActiveCreature()
	best, bestDmg := -1, -1
	for _, i := range SwitchOptions(view) {
		c := view.Own.Team[i]
		if _, dmg := g.bestMove(c.Moves, c, foe, view); dmg > bestDmg {
			best, bestDmg = i, dmg
		}
	}
	return best, bestDmg
}

func (g *Greedy) ChooseAction(_ context.Context, view battle.View, _ battle.SideID) (battle.Action, error) {
	moves := usableMoves(view, g.dex)
	if len(moves) == 0 {
		return battle.Action{}, ErrNoChoice
	}
	id, dmg := g.bestMove(moves, view.Own.ActiveCreature(), view.Opponent.ActiveCreature(), view)
	if dmg > 0 {
		return battle.UseMove(id), nil
	}
	if i, benchDmg := g.bestSwitch(view); i >= 0 && benchDmg > 0 {
		return battle.Switch(i), nil
	}
	if id == "" {
		id = moves[0]
	}
	return battle.UseMove(id), nil
}

func (g *Greedy) ChooseSwitchIn(_ context.Context, view battle.View, _ battle.SideID) (int, error) {
	i, _ := g.bestSwitch(view)
	if i < 0 {
		return 0, ErrNoChoice
	}
	return i, nil
}
