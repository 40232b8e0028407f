package dex

import (
	"fmt"
	"strings"
)

// BaseStats are a species' base values, HP included.
type BaseStats struct {
	HP             int `yaml:"hp"`
	Attack         int `yaml:"attack"`
	Defense        int `yaml:"defense"`
	SpecialAttack  int `yaml:"special_attack"`
	SpecialDefense int `yaml:"special_defense"`
	Speed          int `yaml:"speed"`
}

// Species is the static definition of a creature species.
type Species struct {
	ID        SpeciesID `yaml:"id"`
	Name      string    `yaml:"name"`
	Types     []Type    `yaml:"types"`
	Base      BaseStats `yaml:"base"`
	Abilities []Ability `yaml:"abilities"` // primary, secondary, hidden
	WeightKg  float64   `yaml:"weight_kg"`
}

// HasType reports whether t is one of the species' types.
func (s *Species) HasType(t Type) bool {
	for _, have := range s.Types {
		if have == t {
			return true
		}
	}
	return false
}

// HasAbility reports whether a is one of the species' legal abilities.
func (s *Species) HasAbility(a Ability) bool {
	for _, have := range s.Abilities {
		if have == a {
			return true
		}
	}
	return false
}

// Validate checks the record for internal consistency.
func (s *Species) Validate() error {
	var problems []string
	if s.ID == "" {
		problems = append(problems, "id is required")
	}
	if len(s.Types) < 1 || len(s.Types) > 2 {
		problems = append(problems, "must have one or two types")
	}
	if len(s.Abilities) > 3 {
		problems = append(problems, "at most three abilities")
	}
	b := s.Base
	for name, v := range map[string]int{
		"hp": b.HP, "attack": b.Attack, "defense": b.Defense,
		"special_attack": b.SpecialAttack, "special_defense": b.SpecialDefense, "speed": b.Speed,
	} {
		if v < 1 || v > 255 {
			problems = append(problems, fmt.Sprintf("base %s must be in [1, 255]", name))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: species %q: %s", ErrInvalidRecord, s.ID, strings.Join(problems, "; "))
	}
	return nil
}

// Nature raises one stat by 10% and lowers another by 10%. Neutral natures
// name the same stat twice.
type Nature struct {
	ID        NatureID `yaml:"id"`
	Name      string   `yaml:"name"`
	Increased Stat     `yaml:"increased"`
	Decreased Stat     `yaml:"decreased"`
}

// Neutral reports whether the nature leaves every stat unchanged.
func (n *Nature) Neutral() bool { return n.Increased == n.Decreased }

// Matchup is one row of the type chart: the percent multiplier applied when
// a move of type Attack hits a creature of type Defend.
type Matchup struct {
	Attack Type `yaml:"attack"`
	Defend Type `yaml:"defend"`
	Factor int  `yaml:"factor"`
}
