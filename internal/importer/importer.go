// Package importer converts third-party reference data into the dex YAML
// tables.
package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// Importer orchestrates reference data import from a Source to an output
// directory.
type Importer struct {
	source Source
}

// New constructs an Importer backed by the given Source.
//
// Precondition: source must be non-nil.
// Postcondition: returns a non-nil Importer.
func New(source Source) *Importer {
	return &Importer{source: source}
}

// Run loads tables from sourceDir, validates them as a whole and writes the
// four dex files to outputDir. When overlayDir is non-empty, move effects
// and targets are carried over from the moves.yaml already there, since the
// source formats have no equivalent of the effect tags.
//
// Precondition: sourceDir must satisfy the source's layout requirements;
// outputDir must exist or be creatable.
// Postcondition: either all four files are written or none are.
func (imp *Importer) Run(sourceDir, outputDir, overlayDir string) error {
	overall := time.Now()

	t0 := time.Now()
	data, err := imp.source.Load(sourceDir)
	if err != nil {
		return fmt.Errorf("loading source: %w", err)
	}
	fmt.Printf("load    %d species, %d moves, %d natures in %s\n",
		len(data.Species), len(data.Moves), len(data.Natures), time.Since(t0).Round(time.Millisecond))

	if overlayDir != "" {
		n, err := OverlayEffects(data, filepath.Join(overlayDir, dex.MovesFile))
		if err != nil {
			return err
		}
		fmt.Printf("overlay %d move effects from %s\n", n, overlayDir)
	}

	files, err := Marshal(data)
	if err != nil {
		return err
	}
	// Validate output is loadable before writing anything.
	if _, err := dex.Parse(files); err != nil {
		return fmt.Errorf("imported tables failed validation: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}
	for _, name := range []string{dex.SpeciesFile, dex.MovesFile, dex.NaturesFile, dex.TypesFile} {
		outPath := filepath.Join(outputDir, name)
		if err := os.WriteFile(outPath, files[name], 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		fmt.Printf("wrote   %s  (%d bytes)\n", outPath, len(files[name]))
	}

	fmt.Printf("total   %s\n", time.Since(overall).Round(time.Millisecond))
	return nil
}

// Marshal renders data as the four dex files, keyed by file name.
func Marshal(data *DexData) (map[string][]byte, error) {
	tables := map[string]any{
		dex.SpeciesFile: data.Species,
		dex.MovesFile:   data.Moves,
		dex.NaturesFile: data.Natures,
		dex.TypesFile:   data.Chart,
	}
	out := make(map[string][]byte, len(tables))
	for name, table := range tables {
		b, err := yaml.Marshal(table)
		if err != nil {
			return nil, fmt.Errorf("serialising %s: %w", name, err)
		}
		out[name] = b
	}
	return out, nil
}

// OverlayEffects copies effect, effect chance and target from the moves in
// path onto the matching moves of data. It returns how many moves gained an
// effect.
func OverlayEffects(data *DexData, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading overlay %s: %w", path, err)
	}
	var existing []MoveSpec
	if err := yaml.Unmarshal(raw, &existing); err != nil {
		return 0, fmt.Errorf("parsing overlay %s: %w", path, err)
	}
	byID := make(map[string]MoveSpec, len(existing))
	for _, m := range existing {
		byID[m.ID] = m
	}
	n := 0
	for i := range data.Moves {
		old, ok := byID[data.Moves[i].ID]
		if !ok {
			continue
		}
		if old.Target != "" {
			data.Moves[i].Target = old.Target
		}
		if old.Effect != "" {
			data.Moves[i].Effect = old.Effect
			data.Moves[i].EffectChance = old.EffectChance
			n++
		}
	}
	return n, nil
}
