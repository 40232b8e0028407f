package dice_test

import (
	"testing"

	"github.com/cory-johannsen/monbattle/internal/game/dice"
	"github.com/cory-johannsen/monbattle/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"
)

func TestRollResult_Total(t *testing.T) {
	r := dice.RollResult{Expression: "2d6+3", Dice: []int{4, 5}, Modifier: 3}
	assert.Equal(t, 12, r.Total())
	assert.Equal(t, "2d6+3 [4 5] +3 = 12", r.String())
}

func TestRollResult_String_PanicsOnEmptyExpression(t *testing.T) {
	r := dice.RollResult{Dice: []int{4}}
	assert.Panics(t, func() { _ = r.String() })
}

func TestParse_Valid(t *testing.T) {
	cases := map[string]dice.Expression{
		"d6":    {Raw: "d6", Count: 1, Sides: 6},
		"2d6":   {Raw: "2d6", Count: 2, Sides: 6},
		"1d4+1": {Raw: "1d4+1", Count: 1, Sides: 4, Modifier: 1},
		"3D8-2": {Raw: "3D8-2", Count: 3, Sides: 8, Modifier: -2},
	}
	for in, want := range cases {
		got, err := dice.Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "6", "0d6", "2d1", "2d", "d6+", "2x6", "1d4+1+1"} {
		_, err := dice.Parse(in)
		assert.Error(t, err, in)
	}
}

func TestMustParse_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { dice.MustParse("bogus") })
}

func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestSources_PanicOnZero(t *testing.T) {
	assert.Panics(t, func() { dice.NewCryptoSource().Intn(0) })
	assert.Panics(t, func() { dice.NewSeededSource(1).Intn(0) })
}

func TestSeededSource_Deterministic(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestRoller_Chance_Bounds(t *testing.T) {
	r := dice.NewRoller(testutil.FixedSource(0), zap.NewNop())
	assert.True(t, r.Chance("x", 1, 16))
	assert.False(t, r.Chance("x", 0, 16))

	hi := dice.NewRoller(testutil.FixedSource(99), zap.NewNop())
	assert.False(t, hi.Chance("x", 1, 16))
	assert.True(t, hi.Chance("x", 100, 100))
}

func TestRoller_Between_Property(t *testing.T) {
	r := dice.NewRoller(dice.NewSeededSource(7), zap.NewNop())
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(-50, 50).Draw(rt, "lo")
		hi := lo + rapid.IntRange(0, 50).Draw(rt, "span")
		v := r.Between("test", lo, hi)
		assert.GreaterOrEqual(rt, v, lo)
		assert.LessOrEqual(rt, v, hi)
	})
}

func TestRoller_Roll_WithinExpressionBounds(t *testing.T) {
	r := dice.NewRoller(dice.NewSeededSource(3), zap.NewNop())
	rapid.Check(t, func(rt *rapid.T) {
		expr := dice.Expression{
			Raw:      "xdy",
			Count:    rapid.IntRange(1, 5).Draw(rt, "count"),
			Sides:    rapid.IntRange(2, 20).Draw(rt, "sides"),
			Modifier: rapid.IntRange(-5, 5).Draw(rt, "mod"),
		}
		res := r.Roll(expr)
		assert.Len(rt, res.Dice, expr.Count)
		assert.GreaterOrEqual(rt, res.Total(), expr.Min())
		assert.LessOrEqual(rt, res.Total(), expr.Max())
	})
}

func TestRoller_Coin_UsesSource(t *testing.T) {
	seq := testutil.NewSequenceSource(0, 1)
	r := dice.NewRoller(seq, zap.NewNop())
	assert.True(t, r.Coin("c"))
	assert.False(t, r.Coin("c"))
}
