// Package main provides the telnet arena: players connect, pick a team and
// battle the configured side2 controller.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/monbattle/internal/app"
	"github.com/cory-johannsen/monbattle/internal/config"
	"github.com/cory-johannsen/monbattle/internal/frontend/arena"
	"github.com/cory-johannsen/monbattle/internal/frontend/telnet"
	"github.com/cory-johannsen/monbattle/internal/game/combat"
	"github.com/cory-johannsen/monbattle/internal/observability"
	"github.com/cory-johannsen/monbattle/internal/rollout"
	"github.com/cory-johannsen/monbattle/internal/server"
	"github.com/cory-johannsen/monbattle/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, zap.String("app", "arena"))
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	lc := server.NewLifecycle(logger)
	jobs := map[string]server.Job{}

	var sink rollout.Sink
	if cfg.Database.Enabled {
		dbStart := time.Now()
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		lc.AddCloserFunc("database", pool.Close)
		sink = postgres.NewResultRepository(pool.DB())
		jobs["database-health"] = server.JobFunc(func(ctx context.Context) error {
			return pool.Monitor(ctx, 30*time.Second, logger)
		})
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Duration("elapsed", time.Since(dbStart)),
		)
	}

	env, err := app.Load(cfg, []string{cfg.Side2.Controller}, logger)
	if err != nil {
		logger.Fatal("loading", zap.Error(err))
	}
	lc.AddCloserFunc("scripts", env.Close)

	handler, err := arena.NewHandler(arena.Deps{
		Dex:      env.Dex,
		Teams:    env.Teams,
		Opponent: cfg.Side2,
		Battle:   cfg.Battle,
		Scripts:  env.Scripts,
		Planners: env.Planners,
		Engine:   combat.NewEngine(),
		Sink:     sink,
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal("building arena", zap.Error(err))
	}
	acceptor := telnet.NewAcceptor(cfg.Arena, handler, logger)
	jobs["arena"] = server.JobFunc(acceptor.Serve)

	logger.Info("arena initialized",
		zap.String("addr", cfg.Arena.Addr()),
		zap.String("opponent", cfg.Side2.Team+"/"+cfg.Side2.Controller),
		zap.Duration("startup", time.Since(start)),
	)

	if err := lc.Run(ctx, jobs); err != nil {
		logger.Fatal("arena", zap.Error(err))
	}
}
