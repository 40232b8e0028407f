package team

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/monbattle/internal/game/creature"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// Defaults applied by Build.
const (
	DefaultLevel  = 100
	DefaultIV     = 31
	DefaultNature = dex.NatureID("hardy")
)

const shedinja = dex.SpeciesID("shedinja")

// HP computes maximum HP from a base stat, IV, EV and level.
func HP(base, iv, ev, level int) int {
	return (2*base+iv+ev/4)*level/100 + level + 10
}

// Stat computes a non-HP battle stat. natureMod is 11 for the raised stat,
// 9 for the lowered one and 10 otherwise.
func Stat(base, iv, ev, level, natureMod int) int {
	return ((2*base+iv+ev/4)*level/100 + 5) * natureMod / 10
}

// Build resolves s against d into a creature at full HP.
//
// Postcondition: returns a creature satisfying 0 < HP == MaxHP, or an error
// wrapping one of the package sentinels.
func Build(s *Set, d dex.Provider) (*creature.Creature, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	sp, ok := d.Species(dex.SpeciesID(dex.ToID(s.Species)))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpecies, s.Species)
	}

	natureID := DefaultNature
	if s.Nature != "" {
		natureID = dex.NatureID(dex.ToID(s.Nature))
	}
	up, down, ok := d.NatureDeltas(natureID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNature, s.Nature)
	}
	mod := func(st dex.Stat) int {
		switch {
		case up == down:
			return 10
		case st == up:
			return 11
		case st == down:
			return 9
		default:
			return 10
		}
	}

	moves := make([]dex.MoveID, 0, len(s.Moves))
	for _, name := range s.Moves {
		id := dex.MoveID(dex.ToID(name))
		if _, ok := d.Move(id); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMove, name)
		}
		moves = append(moves, id)
	}

	level := s.Level
	if level == 0 {
		level = DefaultLevel
	}
	iv := func(k string) int { return s.IVs.Get(k, DefaultIV) }
	ev := func(k string) int { return s.EVs.Get(k, 0) }
	b := sp.Base

	hp := HP(b.HP, iv(KeyHP), ev(KeyHP), level)
	if sp.ID == shedinja {
		hp = 1
	}
	stats := creature.Stats{
		Attack:         Stat(b.Attack, iv(KeyAttack), ev(KeyAttack), level, mod(dex.Attack)),
		Defense:        Stat(b.Defense, iv(KeyDefense), ev(KeyDefense), level, mod(dex.Defense)),
		SpecialAttack:  Stat(b.SpecialAttack, iv(KeySpecialAttack), ev(KeySpecialAttack), level, mod(dex.SpecialAttack)),
		SpecialDefense: Stat(b.SpecialDefense, iv(KeySpecialDefense), ev(KeySpecialDefense), level, mod(dex.SpecialDefense)),
		Speed:          Stat(b.Speed, iv(KeySpeed), ev(KeySpeed), level, mod(dex.Speed)),
	}

	ability := dex.Ability(dex.ToID(s.Ability))
	if ability == dex.AbilityNone && len(sp.Abilities) > 0 {
		ability = sp.Abilities[0]
	}
	friendship := DefaultFriendship
	if s.Friendship != nil {
		friendship = *s.Friendship
	}
	name := s.Name
	if name == "" {
		name = sp.Name
	}

	return &creature.Creature{
		Species:    sp.ID,
		Name:       name,
		Level:      level,
		Types:      append([]dex.Type(nil), sp.Types...),
		Ability:    ability,
		Item:       dex.Item(dex.ToID(s.Item)),
		HP:         hp,
		MaxHP:      hp,
		Stats:      stats,
		Moves:      moves,
		Gender:     parseGender(s.Gender),
		Friendship: friendship,
	}, nil
}

func parseGender(g string) creature.Gender {
	switch strings.ToUpper(g) {
	case "M":
		return creature.Male
	case "F":
		return creature.Female
	default:
		return creature.Genderless
	}
}
