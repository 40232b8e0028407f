// Package app loads the reference data, teams and scripts the binaries
// share.
package app

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/monbattle/internal/config"
	"github.com/cory-johannsen/monbattle/internal/game/ai"
	"github.com/cory-johannsen/monbattle/internal/game/controller"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
	"github.com/cory-johannsen/monbattle/internal/game/team"
	"github.com/cory-johannsen/monbattle/internal/scripting"
)

// Env is everything a battle needs besides its own state and dice.
type Env struct {
	Dex      *dex.Dex
	Teams    map[string]*team.Team
	Scripts  *scripting.Manager
	Planners *ai.Registry
}

// Load reads the dex, the teams and the scripts named by cfg. The Lua
// scripts of specs are loaded up front so concurrent battles never race to
// load them.
//
// Postcondition: on success the caller owns Env and must Close it.
func Load(cfg config.Config, specs []string, logger *zap.Logger) (*Env, error) {
	start := time.Now()
	d, err := dex.LoadDirectory(cfg.Battle.DataDir)
	if err != nil {
		return nil, fmt.Errorf("loading dex: %w", err)
	}
	species, moves, natures := d.Counts()
	logger.Info("dex loaded",
		zap.String("dir", cfg.Battle.DataDir),
		zap.Int("species", species),
		zap.Int("moves", moves),
		zap.Int("natures", natures),
		zap.Duration("elapsed", time.Since(start)),
	)

	teams, err := team.LoadDirectory(cfg.TeamDir)
	if err != nil {
		return nil, fmt.Errorf("loading teams: %w", err)
	}
	logger.Info("teams loaded", zap.Int("count", len(teams)))

	mgr, reg, err := LoadScripting(cfg, d, specs, logger)
	if err != nil {
		return nil, err
	}
	return &Env{Dex: d, Teams: teams, Scripts: mgr, Planners: reg}, nil
}

// Close releases the Lua states.
func (e *Env) Close() { e.Scripts.Close() }

// Team returns the named team after checking that it builds.
func (e *Env) Team(name string) (*team.Team, error) {
	t, ok := e.Teams[name]
	if !ok {
		return nil, fmt.Errorf("unknown team %q", name)
	}
	if _, _, err := t.Build(e.Dex); err != nil {
		return nil, fmt.Errorf("building team %q: %w", name, err)
	}
	return t, nil
}

// LoadScripting prepares the shared Lua manager and registers every planner
// domain against the global precondition VM.
func LoadScripting(cfg config.Config, d dex.Provider, specs []string, logger *zap.Logger) (*scripting.Manager, *ai.Registry, error) {
	src := dice.NewCryptoSource()
	if cfg.Rollout.Seed != 0 {
		src = dice.NewSeededSource(cfg.Rollout.Seed)
	}
	mgr := scripting.NewManager(dice.NewRoller(src, logger), logger)
	controller.BindDex(mgr, d)

	for _, spec := range specs {
		if kind, path := controller.ParseSpec(spec); kind == controller.KindLua && !mgr.Has(path) {
			if err := mgr.LoadFile(path, path, cfg.Scripts.InstructionLimit); err != nil {
				mgr.Close()
				return nil, nil, err
			}
		}
	}

	reg := ai.NewRegistry()
	if cfg.Scripts.AIDir == "" {
		return mgr, reg, nil
	}
	if err := mgr.LoadGlobal(cfg.Scripts.AIDir, cfg.Scripts.InstructionLimit); err != nil {
		mgr.Close()
		return nil, nil, fmt.Errorf("loading %s: %w", cfg.Scripts.AIDir, err)
	}
	if cfg.Scripts.DomainDir != "" {
		domains, err := ai.LoadDomains(cfg.Scripts.DomainDir)
		if err != nil {
			mgr.Close()
			return nil, nil, err
		}
		for _, dom := range domains {
			if err := reg.Register(dom, mgr, scripting.GlobalKey); err != nil {
				mgr.Close()
				return nil, nil, err
			}
		}
		logger.Info("planner domains loaded",
			zap.String("dir", filepath.Clean(cfg.Scripts.DomainDir)),
			zap.Strings("domains", reg.IDs()),
		)
	}
	return mgr, reg, nil
}
