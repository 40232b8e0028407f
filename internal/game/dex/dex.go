// Package dex holds the immutable reference data a battle reads: species,
// moves, natures and the type chart. A Dex is built once, before any battle
// starts, and is then shared read-only by every battle in the process.
package dex

import "fmt"

// Provider is the read-only view of reference data the simulator depends on.
type Provider interface {
	Species(id SpeciesID) (*Species, bool)
	Move(id MoveID) (*Move, bool)
	// Effectiveness returns the percent multiplier (0, 25, 50, 100, 200, 400)
	// of an attacking type against a single defending type.
	Effectiveness(attack, defend Type) int
	// NatureDeltas returns the raised and lowered stat of a nature. Neutral
	// natures return the same stat twice.
	NatureDeltas(id NatureID) (up, down Stat, ok bool)
}

// Dex is the in-memory Provider. It is safe for concurrent reads.
type Dex struct {
	species map[SpeciesID]*Species
	moves   map[MoveID]*Move
	natures map[NatureID]*Nature
	chart   map[Type]map[Type]int
}

// Tables is the raw content a Dex is assembled from.
type Tables struct {
	Species []*Species
	Moves   []*Move
	Natures []*Nature
	Chart   []Matchup
}

// New validates t and builds a Dex from it.
//
// Postcondition: Returns a Dex containing every record of t, or the first
// validation error found.
func New(t Tables) (*Dex, error) {
	d := &Dex{
		species: make(map[SpeciesID]*Species, len(t.Species)),
		moves:   make(map[MoveID]*Move, len(t.Moves)),
		natures: make(map[NatureID]*Nature, len(t.Natures)),
		chart:   make(map[Type]map[Type]int),
	}
	for _, s := range t.Species {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := d.species[s.ID]; dup {
			return nil, fmt.Errorf("%w: species %q", ErrDuplicateID, s.ID)
		}
		d.species[s.ID] = s
	}
	for _, m := range t.Moves {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if _, dup := d.moves[m.ID]; dup {
			return nil, fmt.Errorf("%w: move %q", ErrDuplicateID, m.ID)
		}
		if m.Target == "" {
			m.Target = TargetNormal
		}
		d.moves[m.ID] = m
	}
	for _, n := range t.Natures {
		if n.ID == "" {
			return nil, fmt.Errorf("%w: nature without id", ErrInvalidRecord)
		}
		if _, dup := d.natures[n.ID]; dup {
			return nil, fmt.Errorf("%w: nature %q", ErrDuplicateID, n.ID)
		}
		d.natures[n.ID] = n
	}
	for _, row := range t.Chart {
		switch row.Factor {
		case 0, 50, 100, 200:
		default:
			return nil, fmt.Errorf("%w: matchup %s->%s factor %d", ErrInvalidRecord, row.Attack, row.Defend, row.Factor)
		}
		if d.chart[row.Attack] == nil {
			d.chart[row.Attack] = make(map[Type]int)
		}
		d.chart[row.Attack][row.Defend] = row.Factor
	}
	return d, nil
}

// Species looks up a species by id.
func (d *Dex) Species(id SpeciesID) (*Species, bool) {
	s, ok := d.species[id]
	return s, ok
}

// Move looks up a move by id.
func (d *Dex) Move(id MoveID) (*Move, bool) {
	m, ok := d.moves[id]
	return m, ok
}

// Nature looks up a nature by id.
func (d *Dex) Nature(id NatureID) (*Nature, bool) {
	n, ok := d.natures[id]
	return n, ok
}

// NatureDeltas implements Provider.
func (d *Dex) NatureDeltas(id NatureID) (up, down Stat, ok bool) {
	n, ok := d.natures[id]
	if !ok {
		return 0, 0, false
	}
	return n.Increased, n.Decreased, true
}

// Effectiveness implements Provider. Pairs absent from the chart, and the
// typeless type, are neutral.
func (d *Dex) Effectiveness(attack, defend Type) int {
	if f, ok := d.chart[attack][defend]; ok {
		return f
	}
	return 100
}

// Counts reports how many species, moves and natures are loaded.
func (d *Dex) Counts() (species, moves, natures int) {
	return len(d.species), len(d.moves), len(d.natures)
}
