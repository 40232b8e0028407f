package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Expression is a parsed "NdS+M" expression.
//
// Invariant: Count >= 1 and Sides >= 2 after a successful Parse.
type Expression struct {
	Raw      string
	Count    int
	Sides    int
	Modifier int
}

// Min is the smallest total the expression can roll.
func (e Expression) Min() int { return e.Count + e.Modifier }

// Max is the largest total the expression can roll.
func (e Expression) Max() int { return e.Count*e.Sides + e.Modifier }

var exprPattern = regexp.MustCompile(`^(\d*)d(\d+)(?:([+-])(\d+))?$`)

// Parse parses expressions of the form "d6", "2d6", "1d4+1" and "3d8-2".
//
// Postcondition: Returns a valid Expression or a descriptive error.
func Parse(expr string) (Expression, error) {
	if expr == "" {
		return Expression{}, fmt.Errorf("dice: empty expression")
	}
	m := exprPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(expr)))
	if m == nil {
		return Expression{}, fmt.Errorf("dice: malformed expression %q", expr)
	}

	count := 1
	if m[1] != "" {
		// The pattern guarantees digits; only overflow can fail.
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: %w", expr, err)
		}
		count = n
	}
	if count < 1 {
		return Expression{}, fmt.Errorf("dice: invalid die count in %q: must be >= 1", expr)
	}

	sides, err := strconv.Atoi(m[2])
	if err != nil {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: %w", expr, err)
	}
	if sides < 2 {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: must be >= 2", expr)
	}

	modifier := 0
	if m[4] != "" {
		modifier, err = strconv.Atoi(m[4])
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid modifier in %q: %w", expr, err)
		}
		if m[3] == "-" {
			modifier = -modifier
		}
	}

	return Expression{Raw: expr, Count: count, Sides: sides, Modifier: modifier}, nil
}

// MustParse parses expr and panics on error. Used for package-level durations.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic("dice: MustParse failed for expression " + expr + ": " + err.Error())
	}
	return e
}
