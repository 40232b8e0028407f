// Package veekun reads the veekun pokedex CSV export.
package veekun

import (
	"fmt"
	"os"
	"sort"

	"github.com/cory-johannsen/monbattle/internal/importer"
)

var _ importer.Source = (*Source)(nil)

// Source implements importer.Source for a veekun CSV directory:
//
//	sourceDir/
//	  pokemon.csv  pokemon_types.csv  pokemon_stats.csv  pokemon_abilities.csv
//	  abilities.csv  moves.csv  move_flag_map.csv  type_efficacy.csv  natures.csv
//	  move_names.csv, pokemon_species_names.csv   (optional display names)
//
// Rows whose type is outside the eighteen standard types, such as shadow
// moves, are skipped.
type Source struct{}

// NewSource constructs a Source.
func NewSource() *Source { return &Source{} }

// Load reads the CSV tables in sourceDir.
//
// Postcondition: returns species sorted by pokedex id, moves by move id, or
// an error naming the offending file and line.
func (s *Source) Load(sourceDir string) (*importer.DexData, error) {
	if _, err := os.Stat(sourceDir); err != nil {
		return nil, fmt.Errorf("source directory not accessible: %w", err)
	}
	species, err := loadSpecies(sourceDir)
	if err != nil {
		return nil, err
	}
	if len(species) == 0 {
		return nil, fmt.Errorf("no species found in %s", sourceDir)
	}
	moves, err := loadMoves(sourceDir)
	if err != nil {
		return nil, err
	}
	natures, err := loadNatures(sourceDir)
	if err != nil {
		return nil, err
	}
	chart, err := loadChart(sourceDir)
	if err != nil {
		return nil, err
	}
	return &importer.DexData{Species: species, Moves: moves, Natures: natures, Chart: chart}, nil
}

func loadSpecies(dir string) ([]importer.SpeciesSpec, error) {
	pokemon, err := readTable(dir, "pokemon.csv")
	if err != nil {
		return nil, err
	}
	if err := pokemon.require("id", "identifier", "species_id", "weight"); err != nil {
		return nil, err
	}

	names, err := englishNames(dir, "pokemon_species_names.csv", "pokemon_species_id")
	if err != nil {
		return nil, err
	}

	byID := make(map[int]*importer.SpeciesSpec, len(pokemon.rows))
	var order []int
	for row := range pokemon.rows {
		id, err := pokemon.int(row, "id")
		if err != nil {
			return nil, err
		}
		speciesID, err := pokemon.int(row, "species_id")
		if err != nil {
			return nil, err
		}
		weight, err := pokemon.int(row, "weight")
		if err != nil {
			return nil, err
		}
		identifier := pokemon.str(row, "identifier")
		name := importer.IdentifierToName(identifier)
		// Alternate forms keep their generated name; the species name
		// belongs to the default form.
		if n, ok := names[speciesID]; ok && importer.NameToID(n) == importer.NameToID(identifier) {
			name = n
		}
		byID[id] = &importer.SpeciesSpec{
			ID:       importer.NameToID(identifier),
			Name:     name,
			WeightKg: float64(weight) / 10,
		}
		order = append(order, id)
	}

	if err := applyTypes(dir, byID); err != nil {
		return nil, err
	}
	if err := applyStats(dir, byID); err != nil {
		return nil, err
	}
	if err := applyAbilities(dir, byID); err != nil {
		return nil, err
	}

	sort.Ints(order)
	out := make([]importer.SpeciesSpec, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out, nil
}

func applyTypes(dir string, byID map[int]*importer.SpeciesSpec) error {
	t, err := readTable(dir, "pokemon_types.csv")
	if err != nil {
		return err
	}
	if err := t.require("pokemon_id", "type_id", "slot"); err != nil {
		return err
	}
	slots := make(map[int][2]string)
	for row := range t.rows {
		pid, err := t.int(row, "pokemon_id")
		if err != nil {
			return err
		}
		typeID, err := t.int(row, "type_id")
		if err != nil {
			return err
		}
		slot, err := t.int(row, "slot")
		if err != nil {
			return err
		}
		name, ok := typeNames[typeID]
		if !ok || slot < 1 || slot > 2 {
			continue
		}
		s := slots[pid]
		s[slot-1] = name
		slots[pid] = s
	}
	for pid, s := range slots {
		sp, ok := byID[pid]
		if !ok {
			continue
		}
		for _, name := range s {
			if name != "" {
				sp.Types = append(sp.Types, name)
			}
		}
	}
	return nil
}

func applyStats(dir string, byID map[int]*importer.SpeciesSpec) error {
	t, err := readTable(dir, "pokemon_stats.csv")
	if err != nil {
		return err
	}
	if err := t.require("pokemon_id", "stat_id", "base_stat"); err != nil {
		return err
	}
	for row := range t.rows {
		pid, err := t.int(row, "pokemon_id")
		if err != nil {
			return err
		}
		statID, err := t.int(row, "stat_id")
		if err != nil {
			return err
		}
		base, err := t.int(row, "base_stat")
		if err != nil {
			return err
		}
		sp, ok := byID[pid]
		if !ok {
			continue
		}
		switch statID {
		case statHP:
			sp.Base.HP = base
		case statAttack:
			sp.Base.Attack = base
		case statDefense:
			sp.Base.Defense = base
		case statSpecialAttack:
			sp.Base.SpecialAttack = base
		case statSpecialDefense:
			sp.Base.SpecialDefense = base
		case statSpeed:
			sp.Base.Speed = base
		}
	}
	return nil
}

func applyAbilities(dir string, byID map[int]*importer.SpeciesSpec) error {
	abilities, err := readTable(dir, "abilities.csv")
	if err != nil {
		return err
	}
	if err := abilities.require("id", "identifier"); err != nil {
		return err
	}
	abilityIDs := make(map[int]string, len(abilities.rows))
	for row := range abilities.rows {
		id, err := abilities.int(row, "id")
		if err != nil {
			return err
		}
		abilityIDs[id] = importer.NameToID(abilities.str(row, "identifier"))
	}

	t, err := readTable(dir, "pokemon_abilities.csv")
	if err != nil {
		return err
	}
	if err := t.require("pokemon_id", "ability_id", "slot"); err != nil {
		return err
	}
	slots := make(map[int][3]string)
	for row := range t.rows {
		pid, err := t.int(row, "pokemon_id")
		if err != nil {
			return err
		}
		aid, err := t.int(row, "ability_id")
		if err != nil {
			return err
		}
		slot, err := t.int(row, "slot")
		if err != nil {
			return err
		}
		name, ok := abilityIDs[aid]
		if !ok {
			return fmt.Errorf("%s line %d: unknown ability id %d", t.path, row+2, aid)
		}
		if slot < 1 || slot > 3 {
			continue
		}
		s := slots[pid]
		s[slot-1] = name
		slots[pid] = s
	}
	for pid, s := range slots {
		sp, ok := byID[pid]
		if !ok {
			continue
		}
		for _, name := range s {
			if name != "" {
				sp.Abilities = append(sp.Abilities, name)
			}
		}
	}
	return nil
}

func loadMoves(dir string) ([]importer.MoveSpec, error) {
	t, err := readTable(dir, "moves.csv")
	if err != nil {
		return nil, err
	}
	if err := t.require("id", "identifier", "type_id", "power", "pp", "accuracy", "priority", "target_id", "damage_class_id"); err != nil {
		return nil, err
	}
	names, err := englishNames(dir, "move_names.csv", "move_id")
	if err != nil {
		return nil, err
	}
	flags, err := moveFlags(dir)
	if err != nil {
		return nil, err
	}

	type numbered struct {
		id   int
		spec importer.MoveSpec
	}
	var moves []numbered
	for row := range t.rows {
		var v [8]int
		for i, col := range []string{"id", "type_id", "power", "pp", "accuracy", "priority", "target_id", "damage_class_id"} {
			if v[i], err = t.int(row, col); err != nil {
				return nil, err
			}
		}
		id, typeID, power, pp, accuracy, priority, targetID, classID := v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7]
		typ, ok := typeNames[typeID]
		if !ok {
			continue
		}
		class, ok := classNames[classID]
		if !ok {
			return nil, fmt.Errorf("%s line %d: unknown damage class %d", t.path, row+2, classID)
		}
		identifier := t.str(row, "identifier")
		name := names[id]
		if name == "" {
			name = importer.IdentifierToName(identifier)
		}
		spec := importer.MoveSpec{
			ID:       importer.NameToID(identifier),
			Name:     name,
			Type:     typ,
			Class:    class,
			Power:    power,
			Accuracy: accuracy,
			Priority: priority,
			PP:       pp,
			Target:   targetNames[targetID],
			Flags:    flags[id],
		}
		moves = append(moves, numbered{id: id, spec: spec})
	}
	sort.Slice(moves, func(i, j int) bool { return moves[i].id < moves[j].id })
	out := make([]importer.MoveSpec, len(moves))
	for i, m := range moves {
		out[i] = m.spec
	}
	return out, nil
}

func moveFlags(dir string) (map[int][]string, error) {
	t, err := readOptional(dir, "move_flag_map.csv")
	if err != nil || t == nil {
		return nil, err
	}
	if err := t.require("move_id", "move_flag_id"); err != nil {
		return nil, err
	}
	out := make(map[int][]string)
	for row := range t.rows {
		mid, err := t.int(row, "move_id")
		if err != nil {
			return nil, err
		}
		fid, err := t.int(row, "move_flag_id")
		if err != nil {
			return nil, err
		}
		name, ok := flagNames[fid]
		if !ok {
			return nil, fmt.Errorf("%s line %d: unknown move flag %d", t.path, row+2, fid)
		}
		out[mid] = append(out[mid], name)
	}
	for _, names := range out {
		sort.Strings(names)
	}
	return out, nil
}

func loadNatures(dir string) ([]importer.NatureSpec, error) {
	t, err := readTable(dir, "natures.csv")
	if err != nil {
		return nil, err
	}
	if err := t.require("id", "identifier", "decreased_stat_id", "increased_stat_id"); err != nil {
		return nil, err
	}
	out := make([]importer.NatureSpec, 0, len(t.rows))
	for row := range t.rows {
		dec, err := t.int(row, "decreased_stat_id")
		if err != nil {
			return nil, err
		}
		inc, err := t.int(row, "increased_stat_id")
		if err != nil {
			return nil, err
		}
		decName, ok1 := natureStatNames[dec]
		incName, ok2 := natureStatNames[inc]
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%s line %d: nature stat ids %d/%d out of range", t.path, row+2, inc, dec)
		}
		identifier := t.str(row, "identifier")
		out = append(out, importer.NatureSpec{
			ID:        importer.NameToID(identifier),
			Name:      importer.IdentifierToName(identifier),
			Increased: incName,
			Decreased: decName,
		})
	}
	return out, nil
}

// loadChart keeps only the non-neutral cells, matching the shipped chart.
func loadChart(dir string) ([]importer.MatchupSpec, error) {
	t, err := readTable(dir, "type_efficacy.csv")
	if err != nil {
		return nil, err
	}
	if err := t.require("damage_type_id", "target_type_id", "damage_factor"); err != nil {
		return nil, err
	}
	var out []importer.MatchupSpec
	for row := range t.rows {
		var v [3]int
		for i, col := range []string{"damage_type_id", "target_type_id", "damage_factor"} {
			if v[i], err = t.int(row, col); err != nil {
				return nil, err
			}
		}
		atk, ok1 := typeNames[v[0]]
		def, ok2 := typeNames[v[1]]
		if !ok1 || !ok2 || v[2] == 100 {
			continue
		}
		out = append(out, importer.MatchupSpec{Attack: atk, Defend: def, Factor: v[2]})
	}
	return out, nil
}

// englishNames reads an optional *_names.csv table keyed by idCol.
func englishNames(dir, file, idCol string) (map[int]string, error) {
	t, err := readOptional(dir, file)
	if err != nil || t == nil {
		return nil, err
	}
	if err := t.require(idCol, "local_language_id", "name"); err != nil {
		return nil, err
	}
	out := make(map[int]string)
	for row := range t.rows {
		lang, err := t.int(row, "local_language_id")
		if err != nil {
			return nil, err
		}
		if lang != englishLanguageID {
			continue
		}
		id, err := t.int(row, idCol)
		if err != nil {
			return nil, err
		}
		out[id] = t.str(row, "name")
	}
	return out, nil
}
