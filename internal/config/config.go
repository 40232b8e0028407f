// Package config provides Viper-based configuration loading for the battle
// simulator.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/monbattle/internal/game/controller"
	"github.com/cory-johannsen/monbattle/internal/game/sim"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	// Enabled turns on result persistence. When false the other fields are
	// not validated.
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// BattleConfig holds the rules every battle is played under.
type BattleConfig struct {
	// Generation selects the mechanics, 1 through 9.
	Generation int `mapstructure:"generation"`
	// MaxTurns ends a battle in a draw. Zero means the engine default.
	MaxTurns int `mapstructure:"max_turns"`
	// DecisionTimeout bounds each controller call. Zero means unbounded.
	DecisionTimeout time.Duration `mapstructure:"decision_timeout"`
	// DataDir holds the species, move, type and nature tables.
	DataDir string `mapstructure:"data_dir"`
}

// RolloutConfig sizes a batch of battles.
type RolloutConfig struct {
	Battles int `mapstructure:"battles"`
	// Workers bounds concurrency. Zero means GOMAXPROCS.
	Workers int `mapstructure:"workers"`
	// Seed makes the batch reproducible. Zero means crypto randomness.
	Seed uint64 `mapstructure:"seed"`
}

// SideConfig names the team and controller for one side.
type SideConfig struct {
	// Team is a team name from the teams directory.
	Team string `mapstructure:"team"`
	// Controller is a controller spec such as "greedy" or "lua:path".
	Controller string `mapstructure:"controller"`
}

// ScriptsConfig locates Lua scripts and planner domains.
type ScriptsConfig struct {
	// AIDir holds the shared precondition scripts loaded into the global VM.
	AIDir string `mapstructure:"ai_dir"`
	// DomainDir holds the planner domain YAML files.
	DomainDir string `mapstructure:"domain_dir"`
	// InstructionLimit caps each script call. Zero means the default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// ArenaConfig holds the telnet arena settings. Each connected player takes
// side 1 with a team of their choice against the side2 controller.
type ArenaConfig struct {
	// Host is the bind address for the telnet listener.
	Host string `mapstructure:"host"`
	// Port is the TCP port for the telnet listener. Zero picks a free port.
	Port int `mapstructure:"port"`
	// ReadTimeout bounds the wait for each line of player input.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout is the per-write timeout for telnet connections.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// MaxSessions caps concurrent players. Zero means unlimited.
	MaxSessions int `mapstructure:"max_sessions"`
}

// Addr returns the "host:port" listen address.
func (a ArenaConfig) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// Config is the top-level application configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Battle   BattleConfig   `mapstructure:"battle"`
	Rollout  RolloutConfig  `mapstructure:"rollout"`
	TeamDir  string         `mapstructure:"team_dir"`
	Side1    SideConfig     `mapstructure:"side1"`
	Side2    SideConfig     `mapstructure:"side2"`
	Scripts  ScriptsConfig  `mapstructure:"scripts"`
	Arena    ArenaConfig    `mapstructure:"arena"`
	Database DatabaseConfig `mapstructure:"database"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateBattle(c.Battle); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateRollout(c.Rollout); err != nil {
		errs = append(errs, err.Error())
	}
	if c.TeamDir == "" {
		errs = append(errs, "team_dir must not be empty")
	}
	if err := validateSide("side1", c.Side1); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSide("side2", c.Side2); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Scripts.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("scripts.instruction_limit must be >= 0, got %d", c.Scripts.InstructionLimit))
	}
	if err := validateArena(c.Arena); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Database.Enabled {
		if err := validateDatabase(c.Database); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateBattle(b BattleConfig) error {
	var errs []string
	if b.Generation < sim.MinGeneration || b.Generation > sim.MaxGeneration {
		errs = append(errs, fmt.Sprintf("battle.generation must be %d-%d, got %d", sim.MinGeneration, sim.MaxGeneration, b.Generation))
	}
	if b.MaxTurns < 0 {
		errs = append(errs, fmt.Sprintf("battle.max_turns must be >= 0, got %d", b.MaxTurns))
	}
	if b.DecisionTimeout < 0 {
		errs = append(errs, "battle.decision_timeout must not be negative")
	}
	if b.DataDir == "" {
		errs = append(errs, "battle.data_dir must not be empty")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateRollout(r RolloutConfig) error {
	var errs []string
	if r.Battles < 1 {
		errs = append(errs, fmt.Sprintf("rollout.battles must be >= 1, got %d", r.Battles))
	}
	if r.Workers < 0 {
		errs = append(errs, fmt.Sprintf("rollout.workers must be >= 0, got %d", r.Workers))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateSide(name string, s SideConfig) error {
	var errs []string
	if s.Team == "" {
		errs = append(errs, name+".team must not be empty")
	}
	if err := controller.CheckSpec(s.Controller); err != nil {
		errs = append(errs, fmt.Sprintf("%s.controller: %v", name, err))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateArena(a ArenaConfig) error {
	var errs []string
	if a.Port < 0 || a.Port > 65535 {
		errs = append(errs, fmt.Sprintf("arena.port must be 0-65535, got %d", a.Port))
	}
	if a.ReadTimeout < 0 || a.WriteTimeout < 0 {
		errs = append(errs, "arena timeouts must not be negative")
	}
	if a.MaxSessions < 0 {
		errs = append(errs, fmt.Sprintf("arena.max_sessions must be >= 0, got %d", a.MaxSessions))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// MONBATTLE_BATTLE_GENERATION overrides battle.generation, and so on.
	v.SetEnvPrefix("MONBATTLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("battle.generation", sim.MaxGeneration)
	v.SetDefault("battle.max_turns", 1000)
	v.SetDefault("battle.decision_timeout", "0s")
	v.SetDefault("battle.data_dir", "data")

	v.SetDefault("rollout.battles", 100)
	v.SetDefault("rollout.workers", 0)
	v.SetDefault("rollout.seed", 0)

	v.SetDefault("team_dir", "content/teams")
	v.SetDefault("side1.controller", controller.KindGreedy)
	v.SetDefault("side2.controller", controller.KindRandom)

	v.SetDefault("scripts.ai_dir", "content/scripts/ai")
	v.SetDefault("scripts.domain_dir", "content/ai")
	v.SetDefault("scripts.instruction_limit", 0)

	v.SetDefault("arena.host", "0.0.0.0")
	v.SetDefault("arena.port", 4000)
	v.SetDefault("arena.read_timeout", "5m")
	v.SetDefault("arena.write_timeout", "10s")
	v.SetDefault("arena.max_sessions", 0)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "monbattle")
	v.SetDefault("database.password", "monbattle")
	v.SetDefault("database.name", "monbattle")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")
}
