package testutil

import "sync"

// FixedSource is a dice.Source that always returns the same value, clamped
// into [0, n). FixedSource(0) always rolls the minimum and FixedSource(99)
// rolls the maximum of any draw up to 100 sides.
type FixedSource int

// Intn returns min(int(f), n-1).
func (f FixedSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	v := int(f)
	if v >= n {
		return n - 1
	}
	if v < 0 {
		return 0
	}
	return v
}

// SequenceSource replays a fixed list of values, each clamped into [0, n).
// Once the list is exhausted the last value repeats.
type SequenceSource struct {
	mu     sync.Mutex
	values []int
	pos    int
}

// NewSequenceSource returns a SequenceSource over values.
//
// Precondition: len(values) > 0.
func NewSequenceSource(values ...int) *SequenceSource {
	if len(values) == 0 {
		panic("testutil: NewSequenceSource requires at least one value")
	}
	return &SequenceSource{values: values}
}

// Intn returns the next value in the sequence.
func (s *SequenceSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.pos]
	if s.pos < len(s.values)-1 {
		s.pos++
	}
	return FixedSource(v).Intn(n)
}

