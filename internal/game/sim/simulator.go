// Package sim is the battle engine: the stat pipeline, the damage formula,
// turn ordering, secondary effect dispatch and the switch lifecycle. It
// mutates a battle.State and never owns one.
//
// A Simulator is bound to one battle's dice stream and is not safe for
// concurrent use. The dex.Provider it reads may be shared freely.
package sim

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/creature"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
)

// Generation bounds.
const (
	MinGeneration = 1
	MaxGeneration = 9
)

// EventKind classifies a battle event.
type EventKind int

const (
	EventMove EventKind = iota
	EventDamage
	EventMiss
	EventCritical
	EventEffectiveness
	EventFaint
	EventSwitch
	EventStatus
	EventStage
	EventField
	EventHeal
	EventItem
	EventAbility
	EventVolatile
	EventCantMove
	EventHeldOn
)

var eventKindNames = [...]string{
	"move", "damage", "miss", "critical", "effectiveness", "faint", "switch",
	"status", "stage", "field", "heal", "item", "ability", "volatile",
	"cant_move", "held_on",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
	return eventKindNames[k]
}

// Event is one line of battle narration.
type Event struct {
	Side battle.SideID
	Kind EventKind
	Text string
}

// Simulator resolves actions against a battle.State.
type Simulator struct {
	dex     dex.Provider
	gen     int
	roll    *dice.Roller
	logger  *zap.Logger
	effects map[dex.Effect]EffectHandler
	events  []Event
}

// New creates a Simulator for generation gen.
//
// Precondition: d, roller and logger are non-nil; MinGeneration <= gen <= MaxGeneration.
func New(d dex.Provider, gen int, roller *dice.Roller, logger *zap.Logger) *Simulator {
	if d == nil || roller == nil || logger == nil {
		panic("sim: New called with nil dependency")
	}
	if gen < MinGeneration || gen > MaxGeneration {
		panic(fmt.Sprintf("sim: generation %d out of range", gen))
	}
	s := &Simulator{dex: d, gen: gen, roll: roller, logger: logger}
	s.effects = defaultEffects()
	return s
}

// Generation returns the rules generation.
func (s *Simulator) Generation() int { return s.gen }

// Dex returns the reference data provider.
func (s *Simulator) Dex() dex.Provider { return s.dex }

// RegisterEffect installs or replaces the handler for tag.
func (s *Simulator) RegisterEffect(tag dex.Effect, h EffectHandler) {
	s.effects[tag] = h
}

// HasEffect reports whether tag has a handler.
func (s *Simulator) HasEffect(tag dex.Effect) bool {
	_, ok := s.effects[tag]
	return ok
}

// Events returns and clears the narration recorded since the last call.
func (s *Simulator) Events() []Event {
	out := s.events
	s.events = nil
	return out
}

func (s *Simulator) emit(side battle.SideID, kind EventKind, format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	s.events = append(s.events, Event{Side: side, Kind: kind, Text: text})
	s.logger.Debug(text, zap.Stringer("side", side), zap.Int("kind", int(kind)))
}

// move looks up a move that must exist.
func (s *Simulator) move(id dex.MoveID) *dex.Move {
	m, ok := s.dex.Move(id)
	if !ok {
		panic(fmt.Sprintf("sim: unknown move %q", id))
	}
	return m
}

// EffectiveAbility returns the ability c currently has: none while
// suppressed, the replacement while changed, otherwise its own.
func (s *Simulator) EffectiveAbility(c *creature.Creature) dex.Ability {
	if c.Volatile.Has(creature.KindAbilitySuppression) {
		return dex.AbilityNone
	}
	if e, ok := c.Volatile.Get(creature.KindAbilityChange); ok {
		return e.Ability
	}
	return c.Ability
}

// grounded reports whether c is affected by hazards and terrain.
func (s *Simulator) grounded(c *creature.Creature) bool {
	if c.Volatile.Has(creature.KindIngrain) {
		return true
	}
	return !c.HasType(dex.TypeFlying) && s.EffectiveAbility(c) != dex.AbilityLevitate
}

// scale applies v*num/den as one truncating step.
func scale(v, num, den int) int {
	v *= num
	v /= den
	return v
}

// fraction returns max(1, n/den) for residual HP changes.
func fraction(n, den int) int {
	return max(1, n/den)
}
