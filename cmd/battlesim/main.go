// Package main provides the battle simulator binary: it plays a rollout of
// battles between two configured teams and reports the results.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/monbattle/internal/app"
	"github.com/cory-johannsen/monbattle/internal/config"
	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/combat"
	"github.com/cory-johannsen/monbattle/internal/game/controller"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
	"github.com/cory-johannsen/monbattle/internal/game/team"
	"github.com/cory-johannsen/monbattle/internal/observability"
	"github.com/cory-johannsen/monbattle/internal/rollout"
	"github.com/cory-johannsen/monbattle/internal/server"
	"github.com/cory-johannsen/monbattle/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	narrate := flag.Bool("narrate", false, "log every battle event at debug level")
	matchups := flag.Bool("matchups", false, "print stored matchup statistics and exit (requires database.enabled)")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, zap.String("app", "battlesim"))
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	lc := server.NewLifecycle(logger)

	var repo *postgres.ResultRepository
	if cfg.Database.Enabled {
		dbStart := time.Now()
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		lc.AddCloserFunc("database", pool.Close)
		repo = postgres.NewResultRepository(pool.DB())
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Duration("elapsed", time.Since(dbStart)),
		)
	}

	if *matchups {
		if repo == nil {
			logger.Fatal("-matchups needs database.enabled")
		}
		err := lc.Run(ctx, map[string]server.Job{
			"matchups": server.JobFunc(func(ctx context.Context) error {
				ms, err := repo.Matchups(ctx)
				if err != nil {
					return err
				}
				return printMatchups(os.Stdout, ms)
			}),
		})
		if err != nil {
			logger.Fatal("matchups", zap.Error(err))
		}
		return
	}

	sides := [2]config.SideConfig{cfg.Side1, cfg.Side2}
	env, err := app.Load(cfg, []string{cfg.Side1.Controller, cfg.Side2.Controller}, logger)
	if err != nil {
		logger.Fatal("loading", zap.Error(err))
	}
	lc.AddCloserFunc("scripts", env.Close)

	var chosen [2]*team.Team
	for i, s := range sides {
		if chosen[i], err = env.Team(s.Team); err != nil {
			logger.Fatal("resolving side", zap.Int("side", i+1), zap.Error(err))
		}
	}
	d := env.Dex

	factory := func(_ context.Context, _ int, roller *dice.Roller) (rollout.Setup, error) {
		deps := controller.Deps{
			Dex:        d,
			Generation: cfg.Battle.Generation,
			Roller:     roller,
			Scripts:    env.Scripts,
			Planners:   env.Planners,
			Logger:     logger,
		}
		var setup rollout.Setup
		for i, s := range sides {
			roster, bag, err := chosen[i].Build(d)
			if err != nil {
				return rollout.Setup{}, err
			}
			c, err := controller.New(s.Controller, deps)
			if err != nil {
				return rollout.Setup{}, err
			}
			setup.Labels[i] = fmt.Sprintf("%s/%s", s.Team, s.Controller)
			if i == int(battle.Side1) {
				setup.Team1, setup.Bag1, setup.C1 = roster, bag, c
			} else {
				setup.Team2, setup.Bag2, setup.C2 = roster, bag, c
			}
		}
		return setup, nil
	}

	var sink rollout.Sink
	if repo != nil {
		sink = repo
	}
	runner := rollout.NewRunner(d, combat.NewEngine(), sink, logger)
	rcfg := rollout.Config{
		Battles:         cfg.Rollout.Battles,
		Workers:         cfg.Rollout.Workers,
		Seed:            cfg.Rollout.Seed,
		Generation:      cfg.Battle.Generation,
		MaxTurns:        cfg.Battle.MaxTurns,
		DecisionTimeout: cfg.Battle.DecisionTimeout,
		Narrate:         *narrate,
	}

	logger.Info("starting battle simulator",
		zap.String("side1", cfg.Side1.Team+"/"+cfg.Side1.Controller),
		zap.String("side2", cfg.Side2.Team+"/"+cfg.Side2.Controller),
		zap.Int("generation", cfg.Battle.Generation),
		zap.Duration("startup", time.Since(start)),
	)

	err = lc.Run(ctx, map[string]server.Job{
		"rollout": server.JobFunc(func(ctx context.Context) error {
			sum, err := runner.Run(ctx, rcfg, factory)
			if err != nil {
				return err
			}
			return printSummary(os.Stdout, sum, sides)
		}),
	})
	if err != nil {
		logger.Fatal("rollout", zap.Error(err))
	}
}

func printSummary(w io.Writer, sum *rollout.Summary, sides [2]config.SideConfig) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "rollout %s: %d battles in %s\n", sum.RolloutID, sum.Battles, sum.Elapsed.Round(time.Millisecond))
	fmt.Fprintln(tw, "side\tteam\tcontroller\twins\trate")
	for i, s := range sides {
		id := battle.SideID(i)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.1f%%\n", id, s.Team, s.Controller, sum.Wins[i], 100*sum.WinRate(id))
	}
	fmt.Fprintf(tw, "draws\t%d\n", sum.Draws)
	fmt.Fprintf(tw, "forfeits\t%d\n", sum.Forfeits)
	fmt.Fprintf(tw, "turns\tmin %d\tmean %.1f\tmax %d\n", sum.MinTurns, sum.MeanTurns(), sum.MaxTurns)
	return tw.Flush()
}

func printMatchups(w io.Writer, ms []postgres.Matchup) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "side1\tside2\tbattles\twins1\twins2\tdraws\tforfeits\tmean turns")
	for _, m := range ms {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%.1f\n",
			m.Labels[0], m.Labels[1], m.Battles, m.Wins[0], m.Wins[1], m.Draws, m.Forfeits, m.MeanTurns)
	}
	return tw.Flush()
}
