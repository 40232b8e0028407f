package veekun

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// table is one CSV file with a header row.
type table struct {
	path string
	cols map[string]int
	rows [][]string
}

func readTable(dir, name string) (*table, error) {
	path := filepath.Join(dir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: missing header row", path)
	}
	t := &table{path: path, cols: make(map[string]int, len(records[0])), rows: records[1:]}
	for i, c := range records[0] {
		t.cols[strings.TrimSpace(c)] = i
	}
	return t, nil
}

// readOptional is readTable that returns nil for a missing file.
func readOptional(dir, name string) (*table, error) {
	if _, err := os.Stat(filepath.Join(dir, name)); os.IsNotExist(err) {
		return nil, nil
	}
	return readTable(dir, name)
}

// require fails unless every named column is present.
func (t *table) require(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if _, ok := t.cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: missing columns %s", t.path, strings.Join(missing, ", "))
	}
	return nil
}

func (t *table) str(row int, col string) string {
	return strings.TrimSpace(t.rows[row][t.cols[col]])
}

// int parses a cell. An empty cell is zero.
func (t *table) int(row int, col string) (int, error) {
	s := t.str(row, col)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		// +2: one for the header, one for 1-based lines.
		return 0, fmt.Errorf("%s line %d column %s: %w", t.path, row+2, col, err)
	}
	return v, nil
}
