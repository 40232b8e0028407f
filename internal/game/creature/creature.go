// Package creature models one creature as it exists inside a battle: its
// computed stats, current HP, non-volatile status and the volatile record
// that is discarded when it leaves the field.
package creature

import (
	"fmt"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// MaxMoves is the largest moveset a creature may carry.
const MaxMoves = 4

// Status is the non-volatile status condition. The zero value is healthy.
type Status int

const (
	StatusNone Status = iota
	StatusBurn
	StatusFreeze
	StatusParalysis
	StatusPoison
	StatusBadlyPoison
	StatusSleep
)

func (s Status) String() string {
	switch s {
	case StatusBurn:
		return "burn"
	case StatusFreeze:
		return "freeze"
	case StatusParalysis:
		return "paralysis"
	case StatusPoison:
		return "poison"
	case StatusBadlyPoison:
		return "badly_poison"
	case StatusSleep:
		return "sleep"
	default:
		return "none"
	}
}

// Gender of a creature. Genderless creatures never trigger Rivalry.
type Gender int

const (
	Genderless Gender = iota
	Male
	Female
)

func (g Gender) String() string {
	switch g {
	case Male:
		return "male"
	case Female:
		return "female"
	default:
		return "genderless"
	}
}

// Stats holds the five computed battle stats.
type Stats struct {
	Attack         int
	Defense        int
	SpecialAttack  int
	SpecialDefense int
	Speed          int
}

// Get returns the stat value for one of the five battle stats.
//
// Precondition: stat is Attack through Speed.
func (s Stats) Get(stat dex.Stat) int {
	switch stat {
	case dex.Attack:
		return s.Attack
	case dex.Defense:
		return s.Defense
	case dex.SpecialAttack:
		return s.SpecialAttack
	case dex.SpecialDefense:
		return s.SpecialDefense
	case dex.Speed:
		return s.Speed
	default:
		panic(fmt.Sprintf("creature: Stats.Get called with %s", stat))
	}
}

// Creature is one roster member for the length of a battle.
//
// Invariant: 0 <= HP <= MaxHP; len(Moves) <= MaxMoves.
type Creature struct {
	Species    dex.SpeciesID
	Name       string
	Level      int
	Types      []dex.Type
	Ability    dex.Ability
	Item       dex.Item
	HP         int
	MaxHP      int
	Stats      Stats
	Moves      []dex.MoveID
	Status     Status
	SleepTurns int
	Gender     Gender
	Friendship int
	// LastMove is the move used most recently since switching in.
	LastMove dex.MoveID
	Volatile Volatile
}

// Fainted reports whether the creature has no HP left.
func (c *Creature) Fainted() bool { return c.HP == 0 }

// FullHP reports whether the creature is undamaged.
func (c *Creature) FullHP() bool { return c.HP == c.MaxHP }

// HasType reports whether t is one of the creature's current types.
func (c *Creature) HasType(t dex.Type) bool {
	for _, have := range c.Types {
		if have == t {
			return true
		}
	}
	return false
}

// KnowsMove reports whether id is in the moveset.
func (c *Creature) KnowsMove(id dex.MoveID) bool {
	for _, m := range c.Moves {
		if m == id {
			return true
		}
	}
	return false
}

// TakeDamage subtracts n HP, never going below zero.
//
// Postcondition: returns the HP actually removed.
func (c *Creature) TakeDamage(n int) int {
	if n <= 0 {
		return 0
	}
	if n > c.HP {
		n = c.HP
	}
	c.HP -= n
	return n
}

// Heal restores n HP, never exceeding MaxHP. Fainted creatures stay fainted.
//
// Postcondition: returns the HP actually restored.
func (c *Creature) Heal(n int) int {
	if n <= 0 || c.Fainted() {
		return 0
	}
	if c.HP+n > c.MaxHP {
		n = c.MaxHP - c.HP
	}
	c.HP += n
	return n
}

// Faint drops HP to zero.
func (c *Creature) Faint() { c.HP = 0 }

// Inflict sets a non-volatile status if the creature has none.
//
// Postcondition: returns true iff the status was applied.
func (c *Creature) Inflict(s Status) bool {
	if s == StatusNone || c.Status != StatusNone || c.Fainted() {
		return false
	}
	c.Status = s
	return true
}

// Cure clears the non-volatile status.
func (c *Creature) Cure() {
	c.Status = StatusNone
	c.SleepTurns = 0
}

// Clone returns a deep copy suitable for hypothetical calculations.
func (c *Creature) Clone() *Creature {
	out := *c
	out.Types = append([]dex.Type(nil), c.Types...)
	out.Moves = append([]dex.MoveID(nil), c.Moves...)
	out.Volatile = c.Volatile.Clone()
	return &out
}

// String renders a short "Name (hp/max)" label for logs.
func (c *Creature) String() string {
	return fmt.Sprintf("%s (%d/%d)", c.Name, c.HP, c.MaxHP)
}
