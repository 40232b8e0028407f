package telnet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestColorize(t *testing.T) {
	assert.Equal(t, "\033[31mdanger\033[0m", Colorize(Red, "danger"))
	assert.Equal(t, "\033[32mhp: 42\033[0m", Colorf(Green, "hp: %d", 42))
}

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "red normal bold green",
		StripANSI("\033[31mred\033[0m normal \033[1m\033[32mbold green\033[0m"))
	assert.Equal(t, "plain", StripANSI("plain"))
	assert.Equal(t, "", StripANSI(""))
}

func TestPropertyStripANSIInversesColorize(t *testing.T) {
	colors := []string{Red, Green, Blue, Yellow, Cyan, Magenta, White, Bold, Dim, BrightCyan}
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-zA-Z0-9 ]{0,50}`).Draw(t, "text")
		color := rapid.SampledFrom(colors).Draw(t, "color")
		assert.Equal(t, text, StripANSI(Colorize(color, text)))
	})
}

func TestHPBar(t *testing.T) {
	assert.Equal(t, "[\033[32m==========\033[0m]", HPBar(100, 100, 10))
	assert.Equal(t, "[\033[33m=====     \033[0m]", HPBar(50, 100, 10))
	assert.Equal(t, "[\033[31m=         \033[0m]", HPBar(1, 100, 10), "a sliver of hp still shows")
	assert.Equal(t, "[\033[31m          \033[0m]", HPBar(0, 100, 10))
	assert.Equal(t, "", HPBar(5, 0, 10))
}

func TestPropertyHPBarWidth(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		max := rapid.IntRange(1, 999).Draw(t, "max")
		hp := rapid.IntRange(0, max).Draw(t, "hp")
		width := rapid.IntRange(1, 40).Draw(t, "width")
		plain := StripANSI(HPBar(hp, max, width))
		assert.Len(t, plain, width+2)
		filled := strings.Count(plain, "=")
		assert.Equal(t, hp > 0, filled > 0)
		assert.Equal(t, hp == max, filled == width)
	})
}
