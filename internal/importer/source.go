package importer

// DexData is the common intermediate format produced by all Source
// implementations. Its YAML tags match the dex table schemas exactly, so each
// table can be marshalled directly and validated by dex.Parse.
type DexData struct {
	Species []SpeciesSpec
	Moves   []MoveSpec
	Natures []NatureSpec
	Chart   []MatchupSpec
}

// BaseSpec holds a species' six base stats.
type BaseSpec struct {
	HP             int `yaml:"hp"`
	Attack         int `yaml:"attack"`
	Defense        int `yaml:"defense"`
	SpecialAttack  int `yaml:"special_attack"`
	SpecialDefense int `yaml:"special_defense"`
	Speed          int `yaml:"speed"`
}

// SpeciesSpec holds one species row.
type SpeciesSpec struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Types     []string `yaml:"types,flow"`
	Base      BaseSpec `yaml:"base,flow"`
	Abilities []string `yaml:"abilities,flow"`
	WeightKg  float64  `yaml:"weight_kg"`
}

// MoveSpec holds one move row.
type MoveSpec struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Type         string   `yaml:"type"`
	Class        string   `yaml:"class"`
	Power        int      `yaml:"power,omitempty"`
	Accuracy     int      `yaml:"accuracy,omitempty"`
	Priority     int      `yaml:"priority,omitempty"`
	PP           int      `yaml:"pp,omitempty"`
	Target       string   `yaml:"target,omitempty"`
	Effect       string   `yaml:"effect,omitempty"`
	EffectChance int      `yaml:"effect_chance,omitempty"`
	Flags        []string `yaml:"flags,flow,omitempty"`
}

// NatureSpec holds one nature row.
type NatureSpec struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Increased string `yaml:"increased"`
	Decreased string `yaml:"decreased"`
}

// MatchupSpec holds one non-neutral type chart cell.
type MatchupSpec struct {
	Attack string `yaml:"attack"`
	Defend string `yaml:"defend"`
	Factor int    `yaml:"factor"`
}

// Source loads reference data from a format-specific source directory.
//
// Precondition: sourceDir must exist and contain the expected layout for the format.
// Postcondition: returns a DexData with at least one species, or a non-nil error.
type Source interface {
	Load(sourceDir string) (*DexData, error)
}
