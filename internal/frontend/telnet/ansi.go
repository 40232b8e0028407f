// Package telnet serves line-oriented telnet clients with ANSI colour.
package telnet

import (
	"fmt"
	"regexp"
)

// ANSI styles.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"

	BrightRed     = "\033[91m"
	BrightGreen   = "\033[92m"
	BrightYellow  = "\033[93m"
	BrightMagenta = "\033[95m"
	BrightCyan    = "\033[96m"
	BrightWhite   = "\033[97m"
)

// Colorize wraps text in color followed by Reset.
func Colorize(color, text string) string {
	return color + text + Reset
}

// Colorf formats then colorizes.
func Colorf(color, format string, args ...any) string {
	return color + fmt.Sprintf(format, args...) + Reset
}

var sgr = regexp.MustCompile("\033\\[[0-9;]*m")

// StripANSI removes SGR escape sequences, leaving the printable text.
func StripANSI(s string) string {
	return sgr.ReplaceAllString(s, "")
}

// HPBar renders hp/max as a bar of width cells, green above half, yellow
// above a fifth and red below.
func HPBar(hp, max, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	filled := hp * width / max
	if hp > 0 && filled == 0 {
		filled = 1
	}
	color := Green
	switch {
	case hp*5 <= max:
		color = Red
	case hp*2 <= max:
		color = Yellow
	}
	bar := make([]byte, width)
	for i := range bar {
		if i < filled {
			bar[i] = '='
		} else {
			bar[i] = ' '
		}
	}
	return "[" + Colorize(color, string(bar)) + "]"
}
