package dex

import (
	"fmt"
	"strings"
)

// Type is an elemental type. The zero value is the typeless type, which is
// neutral against everything.
type Type string

// The eighteen elemental types.
const (
	TypeNone     Type = ""
	TypeNormal   Type = "normal"
	TypeFire     Type = "fire"
	TypeWater    Type = "water"
	TypeElectric Type = "electric"
	TypeGrass    Type = "grass"
	TypeIce      Type = "ice"
	TypeFighting Type = "fighting"
	TypePoison   Type = "poison"
	TypeGround   Type = "ground"
	TypeFlying   Type = "flying"
	TypePsychic  Type = "psychic"
	TypeBug      Type = "bug"
	TypeRock     Type = "rock"
	TypeGhost    Type = "ghost"
	TypeDragon   Type = "dragon"
	TypeDark     Type = "dark"
	TypeSteel    Type = "steel"
	TypeFairy    Type = "fairy"
)

// AllTypes lists every elemental type in chart order.
var AllTypes = []Type{
	TypeNormal, TypeFire, TypeWater, TypeElectric, TypeGrass, TypeIce,
	TypeFighting, TypePoison, TypeGround, TypeFlying, TypePsychic, TypeBug,
	TypeRock, TypeGhost, TypeDragon, TypeDark, TypeSteel, TypeFairy,
}

// ParseType converts a case-insensitive type name into a Type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllTypes {
		if t == known {
			return t, nil
		}
	}
	return TypeNone, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// UnmarshalYAML validates type names while decoding.
func (t *Type) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Stat identifies one of the seven in-battle stats that carry a stage.
type Stat int

const (
	Attack Stat = iota
	Defense
	SpecialAttack
	SpecialDefense
	Speed
	Evasion
	Accuracy
)

// NumStages is the number of stats tracked by the stage array.
const NumStages = 7

var statNames = [NumStages]string{
	"attack", "defense", "special_attack", "special_defense", "speed", "evasion", "accuracy",
}

func (s Stat) String() string {
	if s < 0 || int(s) >= NumStages {
		return fmt.Sprintf("Stat(%d)", int(s))
	}
	return statNames[s]
}

// ParseStat converts a snake_case stat name into a Stat.
func ParseStat(s string) (Stat, error) {
	for i, n := range statNames {
		if n == s {
			return Stat(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStat, s)
}

// UnmarshalYAML validates stat names while decoding.
func (s *Stat) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := ParseStat(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Class is a move's damage class.
type Class int

const (
	Status Class = iota
	Physical
	Special
)

func (c Class) String() string {
	switch c {
	case Physical:
		return "physical"
	case Special:
		return "special"
	default:
		return "status"
	}
}

// UnmarshalYAML decodes "physical", "special" or "status".
func (c *Class) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	switch strings.ToLower(s) {
	case "physical":
		*c = Physical
	case "special":
		*c = Special
	case "status":
		*c = Status
	default:
		return fmt.Errorf("%w: %q", ErrUnknownClass, s)
	}
	return nil
}
