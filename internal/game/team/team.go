// Package team turns team descriptions into battle-ready creatures. Teams
// are written either as Showdown export text or as YAML; both decode into
// the same Set records, which Build resolves against the reference data.
package team

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/creature"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// Sentinel errors for errors.Is checks.
var (
	ErrUnknownSpecies = errors.New("team: unknown species")
	ErrUnknownMove    = errors.New("team: unknown move")
	ErrUnknownNature  = errors.New("team: unknown nature")
	ErrUnknownItem    = errors.New("team: unknown bag item")
	ErrInvalidSet     = errors.New("team: invalid set")
	ErrSyntax         = errors.New("team: syntax error")
)

// Limits on a set.
const (
	MinLevel    = 1
	MaxLevel    = 100
	MaxIV       = 31
	MaxEV       = 252
	MaxEVTotal  = 510
	MaxTeamSize = 6
	// DefaultFriendship is the friendship of a set that does not name one.
	DefaultFriendship = 255
)

// Stat keys of a Spread, matching dex.BaseStats.
const (
	KeyHP             = "hp"
	KeyAttack         = "attack"
	KeyDefense        = "defense"
	KeySpecialAttack  = "special_attack"
	KeySpecialDefense = "special_defense"
	KeySpeed          = "speed"
)

var spreadKeys = []string{KeyHP, KeyAttack, KeyDefense, KeySpecialAttack, KeySpecialDefense, KeySpeed}

// Spread holds per-stat EVs or IVs keyed by KeyHP and friends. Missing keys
// take the default passed to Get.
type Spread map[string]int

// Get returns the value for key, or def when it is absent.
func (s Spread) Get(key string, def int) int {
	if v, ok := s[key]; ok {
		return v
	}
	return def
}

// Set is one roster member as written in a team file, before stats are
// computed.
type Set struct {
	Name       string   `yaml:"name"`
	Species    string   `yaml:"species"`
	Gender     string   `yaml:"gender"`
	Item       string   `yaml:"item"`
	Ability    string   `yaml:"ability"`
	Level      int      `yaml:"level"`
	Friendship *int     `yaml:"happiness"`
	Nature     string   `yaml:"nature"`
	EVs        Spread   `yaml:"evs"`
	IVs        Spread   `yaml:"ivs"`
	Moves      []string `yaml:"moves"`
}

// Team is a named roster plus the consumables it may use in battle.
type Team struct {
	Name    string         `yaml:"name"`
	Members []Set          `yaml:"members"`
	Bag     map[string]int `yaml:"bag"`
}

// Validate checks the structural limits that need no reference data.
func (s *Set) Validate() error {
	var problems []string
	if strings.TrimSpace(s.Species) == "" {
		problems = append(problems, "species is required")
	}
	if s.Level != 0 && (s.Level < MinLevel || s.Level > MaxLevel) {
		problems = append(problems, fmt.Sprintf("level %d outside [%d, %d]", s.Level, MinLevel, MaxLevel))
	}
	if len(s.Moves) == 0 || len(s.Moves) > creature.MaxMoves {
		problems = append(problems, fmt.Sprintf("needs 1 to %d moves, has %d", creature.MaxMoves, len(s.Moves)))
	}
	if s.Friendship != nil && (*s.Friendship < 0 || *s.Friendship > 255) {
		problems = append(problems, "happiness outside [0, 255]")
	}
	switch strings.ToUpper(s.Gender) {
	case "", "M", "F", "N":
	default:
		problems = append(problems, fmt.Sprintf("gender %q is not M, F or N", s.Gender))
	}
	total := 0
	for _, k := range sortedKeys(s.EVs) {
		if !validKey(k) {
			problems = append(problems, fmt.Sprintf("unknown EV stat %q", k))
			continue
		}
		v := s.EVs[k]
		if v < 0 || v > MaxEV {
			problems = append(problems, fmt.Sprintf("EV %s=%d outside [0, %d]", k, v, MaxEV))
		}
		total += v
	}
	if total > MaxEVTotal {
		problems = append(problems, fmt.Sprintf("EV total %d exceeds %d", total, MaxEVTotal))
	}
	for _, k := range sortedKeys(s.IVs) {
		if !validKey(k) {
			problems = append(problems, fmt.Sprintf("unknown IV stat %q", k))
			continue
		}
		if v := s.IVs[k]; v < 0 || v > MaxIV {
			problems = append(problems, fmt.Sprintf("IV %s=%d outside [0, %d]", k, v, MaxIV))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s: %s", ErrInvalidSet, s.label(), strings.Join(problems, "; "))
	}
	return nil
}

func (s *Set) label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Species
}

func validKey(k string) bool {
	for _, want := range spreadKeys {
		if k == want {
			return true
		}
	}
	return false
}

func sortedKeys(s Spread) []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Build resolves every member and the bag.
//
// Postcondition: returns 1 to MaxTeamSize creatures at full HP, or the
// first error found.
func (t *Team) Build(d dex.Provider) ([]*creature.Creature, battle.Bag, error) {
	if len(t.Members) == 0 || len(t.Members) > MaxTeamSize {
		return nil, nil, fmt.Errorf("%w: team %q has %d members, want 1 to %d", ErrInvalidSet, t.Name, len(t.Members), MaxTeamSize)
	}
	roster := make([]*creature.Creature, 0, len(t.Members))
	for i := range t.Members {
		c, err := Build(&t.Members[i], d)
		if err != nil {
			return nil, nil, fmt.Errorf("team %q member %d: %w", t.Name, i+1, err)
		}
		roster = append(roster, c)
	}
	bag, err := t.buildBag()
	if err != nil {
		return nil, nil, err
	}
	return roster, bag, nil
}

func (t *Team) buildBag() (battle.Bag, error) {
	if len(t.Bag) == 0 {
		return nil, nil
	}
	bag := make(battle.Bag, len(t.Bag))
	for name, n := range t.Bag {
		item := dex.Item(dex.ToID(name))
		if !item.IsBagItem() {
			return nil, fmt.Errorf("%w: %q in team %q", ErrUnknownItem, name, t.Name)
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: negative count for %q", ErrInvalidSet, name)
		}
		if n > 0 {
			bag[item] += n
		}
	}
	return bag, nil
}
