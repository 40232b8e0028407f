package team

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML team. Unknown fields are rejected.
func ParseYAML(data []byte) (*Team, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var t Team
	if err := dec.Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadFile reads a team from path. Files ending in .yaml or .yml are YAML;
// anything else is Showdown export text. A team without a name is named
// after its file.
//
// Precondition: path must be a readable file.
// Postcondition: returns a parsed team or an error naming path.
func LoadFile(path string) (*Team, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var t *Team
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		t, err = ParseYAML(data)
	default:
		t, err = ParseShowdown(bytes.NewReader(data), base)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing team file %s: %w", path, err)
	}
	if t.Name == "" {
		t.Name = base
	}
	return t, nil
}

// LoadDirectory reads every .yaml, .yml and .txt file in dir, keyed by team
// name.
//
// Postcondition: returns an error on a duplicate team name.
func LoadDirectory(dir string) (map[string]*Team, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading team dir %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".txt":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	teams := make(map[string]*Team, len(paths))
	for _, p := range paths {
		t, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		if _, dup := teams[t.Name]; dup {
			return nil, fmt.Errorf("team %q defined twice (second in %s)", t.Name, p)
		}
		teams[t.Name] = t
	}
	return teams, nil
}
