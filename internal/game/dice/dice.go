// Package dice provides the randomness abstraction used by the battle
// simulator: a pluggable Source, logged rolls, and small "NdS+M" duration
// expressions for effects whose length is random.
package dice

import "fmt"

// Source is the randomness provider for every random decision in a battle.
//
// A Source handed to a single battle is only used from that battle's
// goroutine. Sources shared between battles MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// RollResult holds the audit trail of a single expression roll.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string
	Dice       []int
	Modifier   int
}

// Total returns the sum of all die results plus the modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String renders the roll as "1d4+1 [3] +1 = 4".
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	return fmt.Sprintf("%s %v %+d = %d", r.Expression, r.Dice, r.Modifier, r.Total())
}
