// Package arena lets a person play battles over telnet. The player picks a
// team and takes side 1; side 2 is the configured controller.
package arena

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/monbattle/internal/config"
	"github.com/cory-johannsen/monbattle/internal/frontend/telnet"
	"github.com/cory-johannsen/monbattle/internal/game/ai"
	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/combat"
	"github.com/cory-johannsen/monbattle/internal/game/controller"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
	"github.com/cory-johannsen/monbattle/internal/game/sim"
	"github.com/cory-johannsen/monbattle/internal/game/team"
	"github.com/cory-johannsen/monbattle/internal/rollout"
	"github.com/cory-johannsen/monbattle/internal/scripting"
)

// HumanLabel is the controller half of a player's result label.
const HumanLabel = "human"

// Deps are the shared collaborators of every session.
type Deps struct {
	Dex      dex.Provider
	Teams    map[string]*team.Team
	Opponent config.SideConfig
	Battle   config.BattleConfig
	Scripts  *scripting.Manager
	Planners *ai.Registry
	Engine   *combat.Engine
	// Sink, when set, stores every finished battle under the session id.
	Sink   rollout.Sink
	Logger *zap.Logger
}

// Handler runs arena sessions. It implements telnet.SessionHandler.
type Handler struct {
	deps  Deps
	names []string
}

// NewHandler checks deps and builds a Handler.
//
// Precondition: Dex, Engine and Logger are non-nil.
// Postcondition: the opponent team exists and builds against Dex.
func NewHandler(deps Deps) (*Handler, error) {
	if deps.Dex == nil || deps.Engine == nil || deps.Logger == nil {
		return nil, errors.New("arena: NewHandler needs Dex, Engine and Logger")
	}
	opp, ok := deps.Teams[deps.Opponent.Team]
	if !ok {
		return nil, fmt.Errorf("arena: opponent team %q not found", deps.Opponent.Team)
	}
	if _, _, err := opp.Build(deps.Dex); err != nil {
		return nil, fmt.Errorf("arena: opponent team: %w", err)
	}
	if err := controller.CheckSpec(deps.Opponent.Controller); err != nil {
		return nil, fmt.Errorf("arena: opponent: %w", err)
	}
	names := make([]string, 0, len(deps.Teams))
	for name := range deps.Teams {
		names = append(names, name)
	}
	slices.Sort(names)
	return &Handler{deps: deps, names: names}, nil
}

// HandleSession implements telnet.SessionHandler.
func (h *Handler) HandleSession(ctx context.Context, conn *telnet.Conn) error {
	return h.Play(ctx, conn)
}

// Play runs battles for one player until they decline a rematch, quit or
// disconnect.
func (h *Handler) Play(ctx context.Context, term Terminal) error {
	sessionID := uuid.New()
	logger := h.deps.Logger.With(zap.Stringer("session", sessionID))
	opp := h.deps.Opponent

	banner := telnet.Colorize(telnet.BrightYellow, "Welcome to the arena.") + "\n" +
		fmt.Sprintf("Your opponent is %s, playing as %s.", telnet.Colorize(telnet.BrightWhite, opp.Team), opp.Controller)
	if err := term.WriteLine(banner); err != nil {
		return err
	}

	for idx := 0; ; idx++ {
		name, err := h.chooseTeam(ctx, term)
		if errors.Is(err, ErrForfeit) {
			return term.WriteLine("Goodbye.")
		}
		if err != nil {
			return err
		}

		start := time.Now()
		res, err := h.playBattle(ctx, term, name, logger)
		if err != nil {
			return err
		}
		logger.Info("arena battle finished",
			zap.String("team", name),
			zap.Stringer("outcome", res.Outcome),
			zap.Bool("player_won", res.Won(battle.Side1)),
			zap.Int("turns", res.Turns),
			zap.Bool("forfeit", res.Forfeit),
			zap.Duration("elapsed", time.Since(start)),
		)
		h.save(ctx, rollout.Record{
			RolloutID: sessionID,
			Index:     idx,
			Labels:    [2]string{name + "/" + HumanLabel, opp.Team + "/" + opp.Controller},
			Result:    res,
		}, logger)

		if err := term.WriteLine(RenderResult(battle.Side1, res)); err != nil {
			return err
		}
		again, err := term.Prompt("Play again? [y/N] ")
		if err != nil {
			return err
		}
		if !strings.HasPrefix(strings.ToLower(again), "y") {
			return term.WriteLine("Goodbye.")
		}
	}
}

func (h *Handler) chooseTeam(ctx context.Context, term Terminal) (string, error) {
	var b strings.Builder
	b.WriteString("Choose your team:")
	for i, name := range h.names {
		fmt.Fprintf(&b, "\n  %s%2d)%s %s (%d)", telnet.BrightCyan, i+1, telnet.Reset, name, len(h.deps.Teams[name].Members))
	}
	if err := term.WriteLine(b.String()); err != nil {
		return "", err
	}
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		line, err := term.Prompt("team> ")
		if err != nil {
			return "", err
		}
		switch key := dex.ToID(line); {
		case key == "quit" || key == "forfeit":
			return "", ErrForfeit
		case slices.Contains(h.names, line):
			return line, nil
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(h.names) {
			return h.names[n-1], nil
		}
		if err := term.WriteLine(telnet.Colorf(telnet.Red, "No team %q.", line)); err != nil {
			return "", err
		}
	}
}

func (h *Handler) playBattle(ctx context.Context, term Terminal, name string, logger *zap.Logger) (combat.Result, error) {
	d := h.deps.Dex
	quiet := zap.NewNop()
	roller := dice.NewRoller(dice.NewCryptoSource(), quiet)

	mine, myBag, err := h.deps.Teams[name].Build(d)
	if err != nil {
		return combat.Result{}, err
	}
	theirs, theirBag, err := h.deps.Teams[h.deps.Opponent.Team].Build(d)
	if err != nil {
		return combat.Result{}, err
	}
	opponent, err := controller.New(h.deps.Opponent.Controller, controller.Deps{
		Dex:        d,
		Generation: h.deps.Battle.Generation,
		Roller:     roller,
		Scripts:    h.deps.Scripts,
		Planners:   h.deps.Planners,
		Logger:     logger,
	})
	if err != nil {
		return combat.Result{}, err
	}

	state := battle.NewState(mine, theirs)
	state.Sides[battle.Side1].Bag = myBag
	state.Sides[battle.Side2].Bag = theirBag

	// The player's read timeout bounds their decisions instead of
	// battle.decision_timeout.
	cfg := combat.Config{
		MaxTurns: h.deps.Battle.MaxTurns,
		OnEvent: func(_ int, e sim.Event) {
			_ = term.WriteLine(RenderEvent(battle.Side1, e))
		},
	}
	s := sim.New(d, h.deps.Battle.Generation, roller, quiet)
	b := combat.New(state, s, NewHuman(term, d), opponent, cfg, logger)
	return h.deps.Engine.Run(ctx, b)
}

func (h *Handler) save(ctx context.Context, rec rollout.Record, logger *zap.Logger) {
	if h.deps.Sink == nil || rec.Result.Outcome == combat.OutcomeUndecided {
		return
	}
	if err := h.deps.Sink.Save(ctx, rec); err != nil {
		logger.Warn("saving arena result", zap.Error(err))
	}
}
