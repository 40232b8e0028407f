package dex

import (
	"fmt"
	"sort"
	"strings"
)

// Target describes who a move is aimed at.
type Target string

const (
	TargetNormal   Target = "normal"
	TargetSelf     Target = "self"
	TargetAllySide Target = "ally_side"
	TargetFoeSide  Target = "foe_side"
	TargetAll      Target = "all"
)

// UnmarshalYAML validates target names. An empty target means TargetNormal.
func (t *Target) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	switch Target(s) {
	case "":
		*t = TargetNormal
	case TargetNormal, TargetSelf, TargetAllySide, TargetFoeSide, TargetAll:
		*t = Target(s)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTarget, s)
	}
	return nil
}

// Flags are the named boolean properties a move can carry.
type Flags struct {
	Contact      bool
	Charge       bool
	Recharge     bool
	Protect      bool
	Reflectable  bool
	Snatch       bool
	Mirror       bool
	Punch        bool
	Sound        bool
	Gravity      bool
	Defrost      bool
	Distance     bool
	Heal         bool
	Authentic    bool
	Powder       bool
	Bite         bool
	Pulse        bool
	Ballistics   bool
	Mental       bool
	NonSkyBattle bool
	Dance        bool
}

func (f *Flags) fields() map[string]*bool {
	return map[string]*bool{
		"contact":        &f.Contact,
		"charge":         &f.Charge,
		"recharge":       &f.Recharge,
		"protect":        &f.Protect,
		"reflectable":    &f.Reflectable,
		"snatch":         &f.Snatch,
		"mirror":         &f.Mirror,
		"punch":          &f.Punch,
		"sound":          &f.Sound,
		"gravity":        &f.Gravity,
		"defrost":        &f.Defrost,
		"distance":       &f.Distance,
		"heal":           &f.Heal,
		"authentic":      &f.Authentic,
		"powder":         &f.Powder,
		"bite":           &f.Bite,
		"pulse":          &f.Pulse,
		"ballistics":     &f.Ballistics,
		"mental":         &f.Mental,
		"non_sky_battle": &f.NonSkyBattle,
		"dance":          &f.Dance,
	}
}

// ParseFlags builds Flags from a list of flag names.
func ParseFlags(names []string) (Flags, error) {
	var f Flags
	fields := f.fields()
	for _, n := range names {
		p, ok := fields[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return Flags{}, fmt.Errorf("%w: %q", ErrUnknownFlag, n)
		}
		*p = true
	}
	return f, nil
}

// Names lists the set flags in sorted order.
func (f Flags) Names() []string {
	var out []string
	for name, p := range f.fields() {
		if *p {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// UnmarshalYAML decodes a YAML sequence of flag names.
func (f *Flags) UnmarshalYAML(unmarshal func(any) error) error {
	var names []string
	if err := unmarshal(&names); err != nil {
		return err
	}
	parsed, err := ParseFlags(names)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Move is the static definition of a move.
type Move struct {
	ID       MoveID `yaml:"id"`
	Name     string `yaml:"name"`
	Type     Type   `yaml:"type"`
	Class    Class  `yaml:"class"`
	Power    int    `yaml:"power"`    // 0 for moves without base power
	Accuracy int    `yaml:"accuracy"` // 0 for moves that never miss
	Priority int    `yaml:"priority"`
	PP       int    `yaml:"pp"`
	Target   Target `yaml:"target"`
	Effect   Effect `yaml:"effect"`
	// EffectChance is the percent chance the effect triggers; 0 means always.
	EffectChance int   `yaml:"effect_chance"`
	Flags        Flags `yaml:"flags"`
}

// HasPower reports whether the move deals direct damage.
func (m *Move) HasPower() bool { return m.Class != Status && m.Power > 0 }

// Validate checks the record for internal consistency.
func (m *Move) Validate() error {
	var problems []string
	if m.ID == "" {
		problems = append(problems, "id is required")
	}
	if m.Power < 0 {
		problems = append(problems, "power must be >= 0")
	}
	if m.Accuracy < 0 || m.Accuracy > 100 {
		problems = append(problems, "accuracy must be in [0, 100]")
	}
	if m.EffectChance < 0 || m.EffectChance > 100 {
		problems = append(problems, "effect_chance must be in [0, 100]")
	}
	if m.Priority < -7 || m.Priority > 5 {
		problems = append(problems, "priority must be in [-7, 5]")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: move %q: %s", ErrInvalidRecord, m.ID, strings.Join(problems, "; "))
	}
	return nil
}
