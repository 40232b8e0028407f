// Package rollout plays many independent battles in parallel and
// aggregates their results. Every battle gets its own dice stream and its
// own simulator; only the reference data is shared.
package rollout

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/combat"
	"github.com/cory-johannsen/monbattle/internal/game/controller"
	"github.com/cory-johannsen/monbattle/internal/game/creature"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
	"github.com/cory-johannsen/monbattle/internal/game/sim"
	"github.com/cory-johannsen/monbattle/internal/observability"
)

// Config sizes a rollout.
type Config struct {
	Battles int
	// Workers bounds concurrency. Zero means GOMAXPROCS.
	Workers int
	// Seed makes the rollout reproducible: battle i draws from a stream
	// seeded with Seed+i. Zero means every battle uses crypto randomness.
	Seed            uint64
	Generation      int
	MaxTurns        int
	DecisionTimeout time.Duration
	// Narrate logs every battle event at debug level.
	Narrate bool
}

// Validate reports every problem with c.
func (c Config) Validate() error {
	var errs []error
	if c.Battles < 1 {
		errs = append(errs, fmt.Errorf("battles must be >= 1, got %d", c.Battles))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be >= 0, got %d", c.Workers))
	}
	if c.Generation < sim.MinGeneration || c.Generation > sim.MaxGeneration {
		errs = append(errs, fmt.Errorf("generation must be in [%d, %d], got %d", sim.MinGeneration, sim.MaxGeneration, c.Generation))
	}
	if c.MaxTurns < 0 {
		errs = append(errs, fmt.Errorf("max_turns must be >= 0, got %d", c.MaxTurns))
	}
	return errors.Join(errs...)
}

// Setup is everything needed to start one battle.
type Setup struct {
	Team1, Team2 []*creature.Creature
	Bag1, Bag2   battle.Bag
	C1, C2       controller.Controller
	// Labels name the two participants in results, e.g. controller kinds.
	Labels [2]string
}

// Factory builds battle i. roller is the battle's own dice stream, for
// controllers that need randomness. Factories are called concurrently and
// must return fresh creatures every time.
type Factory func(ctx context.Context, i int, roller *dice.Roller) (Setup, error)

// Record is the result of one battle in a rollout.
type Record struct {
	RolloutID uuid.UUID
	Index     int
	Seed      uint64
	Labels    [2]string
	Result    combat.Result
}

// Sink receives each record as soon as its battle finishes. Save is called
// concurrently.
type Sink interface {
	Save(ctx context.Context, rec Record) error
}

// Runner plays rollouts.
type Runner struct {
	dex    dex.Provider
	engine *combat.Engine
	logger *zap.Logger
	sink   Sink
}

// NewRunner creates a Runner. sink may be nil.
//
// Precondition: d, engine and logger are non-nil.
func NewRunner(d dex.Provider, engine *combat.Engine, sink Sink, logger *zap.Logger) *Runner {
	if d == nil || engine == nil || logger == nil {
		panic("rollout: NewRunner called with nil dependency")
	}
	return &Runner{dex: d, engine: engine, sink: sink, logger: logger}
}

// Run plays cfg.Battles battles on cfg.Workers goroutines.
//
// Postcondition: on success the summary covers every battle and records
// are ordered by index. A factory or sink error cancels the remaining
// battles and is returned.
func (r *Runner) Run(ctx context.Context, cfg Config, factory Factory) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rollout config: %w", err)
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	id := uuid.New()
	logger := r.logger.With(zap.Stringer("rollout", id))
	logger.Info("rollout started",
		zap.Int("battles", cfg.Battles),
		zap.Int("workers", workers),
		zap.Uint64("seed", cfg.Seed),
	)
	start := time.Now()

	records := make([]Record, cfg.Battles)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range cfg.Battles {
		g.Go(func() error {
			rec, err := r.play(gctx, cfg, i, factory, logger)
			if err != nil {
				return fmt.Errorf("battle %d: %w", i, err)
			}
			rec.RolloutID = id
			records[i] = rec
			if r.sink != nil {
				if err := r.sink.Save(gctx, rec); err != nil {
					return fmt.Errorf("saving battle %d: %w", i, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sum := Summarize(records)
	sum.RolloutID = id
	sum.Elapsed = time.Since(start)
	logger.Info("rollout finished",
		zap.Int("battles", sum.Battles),
		zap.Int("side1_wins", sum.Wins[battle.Side1]),
		zap.Int("side2_wins", sum.Wins[battle.Side2]),
		zap.Int("draws", sum.Draws),
		zap.Int("forfeits", sum.Forfeits),
		zap.Duration("elapsed", sum.Elapsed),
	)
	return sum, nil
}

func (r *Runner) play(ctx context.Context, cfg Config, i int, factory Factory, logger *zap.Logger) (Record, error) {
	var src dice.Source
	seed := uint64(0)
	if cfg.Seed != 0 {
		seed = cfg.Seed + uint64(i)
		src = dice.NewSeededSource(seed)
	} else {
		src = dice.NewCryptoSource()
	}
	quiet := zap.NewNop()
	roller := dice.NewRoller(src, quiet)

	setup, err := factory(ctx, i, roller)
	if err != nil {
		return Record{}, err
	}
	state := battle.NewState(setup.Team1, setup.Team2)
	state.Sides[battle.Side1].Bag = setup.Bag1
	state.Sides[battle.Side2].Bag = setup.Bag2

	logger = logger.With(zap.Int("index", i))
	bcfg := combat.Config{
		MaxTurns:        cfg.MaxTurns,
		DecisionTimeout: cfg.DecisionTimeout,
	}
	if cfg.Narrate {
		bcfg.OnEvent = observability.NarrationHook(logger)
	}
	s := sim.New(r.dex, cfg.Generation, roller, quiet)
	b := combat.New(state, s, setup.C1, setup.C2, bcfg, logger)
	res, err := r.engine.Run(ctx, b)
	if err != nil {
		return Record{}, err
	}
	return Record{Index: i, Seed: seed, Labels: setup.Labels, Result: res}, nil
}
