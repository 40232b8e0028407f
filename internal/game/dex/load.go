package dex

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File names LoadDirectory expects inside a data directory.
const (
	SpeciesFile = "species.yaml"
	MovesFile   = "moves.yaml"
	NaturesFile = "natures.yaml"
	TypesFile   = "types.yaml"
)

// LoadDirectory reads the four reference tables from dir and builds a Dex.
//
// Precondition: dir must be a readable directory containing species.yaml,
// moves.yaml, natures.yaml and types.yaml.
// Postcondition: Returns a non-nil Dex, or an error naming the failing file.
func LoadDirectory(dir string) (*Dex, error) {
	files := make(map[string][]byte, 4)
	for _, name := range []string{SpeciesFile, MovesFile, NaturesFile, TypesFile} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		files[name] = data
	}
	d, err := Parse(files)
	if err != nil {
		return nil, fmt.Errorf("loading dex from %q: %w", dir, err)
	}
	return d, nil
}

// Parse builds a Dex from the YAML text of the four tables, keyed by file
// name.
//
// Postcondition: Returns a non-nil Dex, or an error naming the failing table.
func Parse(files map[string][]byte) (*Dex, error) {
	var t Tables
	if err := decode(SpeciesFile, files[SpeciesFile], &t.Species); err != nil {
		return nil, err
	}
	if err := decode(MovesFile, files[MovesFile], &t.Moves); err != nil {
		return nil, err
	}
	if err := decode(NaturesFile, files[NaturesFile], &t.Natures); err != nil {
		return nil, err
	}
	if err := decode(TypesFile, files[TypesFile], &t.Chart); err != nil {
		return nil, err
	}
	return New(t)
}

func decode(name string, data []byte, out any) error {
	if len(data) == 0 {
		return fmt.Errorf("%s: %w", name, ErrInvalidRecord)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}
