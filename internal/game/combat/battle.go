package combat

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/controller"
	"github.com/cory-johannsen/monbattle/internal/game/sim"
)

// DefaultMaxTurns is the turn limit used when Config.MaxTurns is zero.
const DefaultMaxTurns = 1000

// Config tunes a Battle.
type Config struct {
	// MaxTurns ends the battle in a draw once this many turns have been
	// played. Zero means DefaultMaxTurns.
	MaxTurns int
	// DecisionTimeout bounds each controller call. Zero means no bound
	// beyond the caller's context.
	DecisionTimeout time.Duration
	// OnEvent, when set, receives every narration event as it happens.
	OnEvent func(turn int, e sim.Event)
}

// Battle is one battle between two controllers. It is driven by a single
// goroutine and is not safe for concurrent use.
type Battle struct {
	id          uuid.UUID
	state       *battle.State
	sim         *sim.Simulator
	controllers [2]controller.Controller
	cfg         Config
	logger      *zap.Logger

	phase   Phase
	started bool
	result  Result
}

// New creates a battle over state. The simulator must be bound to this
// battle's own roller.
//
// Precondition: every argument is non-nil.
func New(state *battle.State, s *sim.Simulator, c1, c2 controller.Controller, cfg Config, logger *zap.Logger) *Battle {
	if state == nil || s == nil || c1 == nil || c2 == nil || logger == nil {
		panic("combat: New called with nil dependency")
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = DefaultMaxTurns
	}
	id := uuid.New()
	return &Battle{
		id:          id,
		state:       state,
		sim:         s,
		controllers: [2]controller.Controller{c1, c2},
		cfg:         cfg,
		logger:      logger.With(zap.Stringer("battle", id)),
		result:      Result{BattleID: id},
	}
}

// ID returns the battle's unique id.
func (b *Battle) ID() uuid.UUID { return b.id }

// Phase returns the current state machine phase.
func (b *Battle) Phase() Phase { return b.phase }

// Turn returns the number of the turn in progress, or the last one played.
func (b *Battle) Turn() int { return b.state.Turn }

// Over reports whether the battle has ended.
func (b *Battle) Over() bool { return b.phase == PhaseBattleOver }

// View returns a copy of the battle as side sees it.
func (b *Battle) View(side battle.SideID) battle.View { return b.state.View(side) }

// Result returns the outcome. ok is false while the battle is running.
func (b *Battle) Result() (Result, bool) {
	return b.result, b.Over()
}

// Run steps the battle until it is over and returns the result. Controller
// failures and context cancellation end the battle as forfeits; they are
// never returned as errors.
func (b *Battle) Run(ctx context.Context) Result {
	for !b.Step(ctx) {
	}
	return b.result
}

// Step plays one turn and reports whether the battle is over. The first
// call also activates the leads' entry abilities.
//
// Postcondition: after returning true, Result reports ok.
func (b *Battle) Step(ctx context.Context) bool {
	if b.Over() {
		return true
	}
	if !b.started {
		b.start(ctx)
		if b.Over() {
			return true
		}
	}
	if b.state.Turn >= b.cfg.MaxTurns {
		b.finish(OutcomeDraw, 0, ReasonTurnLimit)
		return true
	}

	b.state.Turn++
	b.phase = PhaseTurnStart
	var actions [2]battle.Action
	for _, id := range []battle.SideID{battle.Side1, battle.Side2} {
		a, err := b.chooseAction(ctx, id)
		if err != nil {
			b.forfeit(id, err)
			return true
		}
		actions[id] = a
	}

	b.phase = PhaseActionsOrdered
	first := b.sim.Order(actions[0], actions[1], b.state)
	b.perform(first, actions[first])
	b.phase = PhaseFirstActionResolved
	if b.checkDefeat() {
		return true
	}
	b.perform(first.Other(), actions[first.Other()])
	b.phase = PhaseSecondActionResolved
	if b.checkDefeat() {
		return true
	}

	b.sim.EndOfTurn(b.state)
	b.phase = PhaseEndOfTurnTick
	b.flush()
	if b.checkDefeat() {
		return true
	}
	return b.forcedSwitches(ctx)
}

func (b *Battle) start(ctx context.Context) {
	b.started = true
	b.logger.Info("battle started",
		zap.Int("team1", len(b.state.Sides[0].Team)),
		zap.Int("team2", len(b.state.Sides[1].Team)),
		zap.Int("generation", b.sim.Generation()),
	)
	b.sim.Start(b.state)
	b.flush()
	b.forcedSwitches(ctx)
}

// perform consumes a bag item when one is used, then resolves the action.
func (b *Battle) perform(id battle.SideID, a battle.Action) {
	if a.Kind == battle.ActionItem && !b.state.Side(id).ActiveCreature().Fainted() {
		b.state.Side(id).Bag.Take(a.Item)
	}
	b.sim.PerformAction(b.state, id, a)
	b.flush()
}

func (b *Battle) chooseAction(ctx context.Context, id battle.SideID) (battle.Action, error) {
	if err := ctx.Err(); err != nil {
		return battle.Action{}, err
	}
	dctx, cancel := b.decisionContext(ctx)
	defer cancel()
	view := b.state.View(id)
	a, err := b.controllers[id].ChooseAction(dctx, view, id)
	if err != nil {
		return battle.Action{}, err
	}
	if err := controller.Validate(view, a); err != nil {
		return battle.Action{}, err
	}
	return a, nil
}

func (b *Battle) chooseSwitchIn(ctx context.Context, id battle.SideID) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	dctx, cancel := b.decisionContext(ctx)
	defer cancel()
	view := b.state.View(id)
	i, err := b.controllers[id].ChooseSwitchIn(dctx, view, id)
	if err != nil {
		return 0, err
	}
	if err := controller.ValidateSwitchIn(view, i); err != nil {
		return 0, err
	}
	return i, nil
}

func (b *Battle) decisionContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.cfg.DecisionTimeout > 0 {
		return context.WithTimeout(ctx, b.cfg.DecisionTimeout)
	}
	return context.WithCancel(ctx)
}

// forcedSwitches replaces fainted actives, side 1 first, until both sides
// have a healthy active or the battle ends. Entry hazards can knock out a
// replacement, which triggers another switch. It reports whether the
// battle is over.
func (b *Battle) forcedSwitches(ctx context.Context) bool {
	for _, id := range []battle.SideID{battle.Side1, battle.Side2} {
		side := b.state.Side(id)
		for side.ActiveCreature().Fainted() && !side.Defeated() {
			b.phase = PhaseForcedSwitch
			i, err := b.chooseSwitchIn(ctx, id)
			if err != nil {
				b.forfeit(id, err)
				return true
			}
			b.sim.Switch(side, b.state.Opponent(id), &b.state.Conditions, i)
			b.flush()
		}
	}
	return b.checkDefeat()
}

// checkDefeat ends the battle when either side has no creature left.
func (b *Battle) checkDefeat() bool {
	d1, d2 := b.state.Sides[0].Defeated(), b.state.Sides[1].Defeated()
	switch {
	case d1 && d2:
		b.finish(OutcomeDraw, 0, ReasonDoubleKO)
	case d1:
		b.finish(OutcomeWin, battle.Side2, ReasonWipe)
	case d2:
		b.finish(OutcomeWin, battle.Side1, ReasonWipe)
	default:
		return false
	}
	return true
}

func (b *Battle) forfeit(loser battle.SideID, err error) {
	b.result.Forfeit = true
	b.finish(OutcomeWin, loser.Other(), fmt.Sprintf("%s forfeited: %v", loser, err))
}

func (b *Battle) finish(o Outcome, winner battle.SideID, reason string) {
	b.phase = PhaseBattleOver
	b.result.Outcome = o
	b.result.Winner = winner
	b.result.Turns = b.state.Turn
	b.result.Reason = reason
	for i, s := range b.state.Sides {
		b.result.Remaining[i] = s.Remaining()
	}
	fields := []zap.Field{
		zap.Stringer("outcome", o),
		zap.Int("turns", b.result.Turns),
		zap.String("reason", reason),
	}
	if o == OutcomeWin {
		fields = append(fields, zap.Stringer("winner", winner))
	}
	b.logger.Info("battle finished", fields...)
}

func (b *Battle) flush() {
	events := b.sim.Events()
	if b.cfg.OnEvent == nil {
		return
	}
	for _, e := range events {
		b.cfg.OnEvent(b.state.Turn, e)
	}
}
