package termio

import (
	"fmt"
	"strings"
)

// TERM_BLACK represents black
const TERM_BLACK = uint(0)

// TERM_RED represents red
const TERM_RED = uint(1)

// TERM_GREEN represents green
const TERM_GREEN = uint(2)

// TERM_YELLOW represents yellow
const TERM_YELLOW = uint(3)

// TERM_BLUE represents blue
const TERM_BLUE = uint(4)

// TERM_MAGENTA represents magenta
const TERM_MAGENTA = uint(5)

// TERM_CYAN represents cyan
const TERM_CYAN = uint(6)

// TERM_WHITE represents white
const TERM_WHITE = uint(7)

// RESET is the escape which restores default formatting.
const RESET = "\033[0m"

// AnsiEscape accumulates the parameters of a Select Graphic Rendition escape
// code, such as "\033[1;31m" (bold red).
type AnsiEscape struct {
	params []uint
}

// NewAnsiEscape constructs an empty escape, which has no effect.
func NewAnsiEscape() AnsiEscape {
	return AnsiEscape{nil}
}

// Bold adds bold (increased intensity) to this escape.
func (p AnsiEscape) Bold() AnsiEscape {
	return p.with(1)
}

// Underline adds underlining to this escape.
func (p AnsiEscape) Underline() AnsiEscape {
	return p.with(4)
}

// FgColour sets the foreground colour
func (p AnsiEscape) FgColour(col uint) AnsiEscape {
	return p.with(30 + col)
}

// BgColour sets the background colour
func (p AnsiEscape) BgColour(col uint) AnsiEscape {
	return p.with(40 + col)
}

// Build constructs the final escape.  An empty escape builds to the empty
// string.
func (p AnsiEscape) Build() string {
	var builder strings.Builder
	//
	if len(p.params) == 0 {
		return ""
	}
	//
	builder.WriteString("\033[")
	//
	for i, param := range p.params {
		if i != 0 {
			builder.WriteString(";")
		}
		//
		fmt.Fprintf(&builder, "%d", param)
	}
	//
	builder.WriteString("m")
	//
	return builder.String()
}

// Apply wraps some text in this escape, restoring default formatting
// afterwards.  Text is returned unchanged by an empty escape.
func (p AnsiEscape) Apply(text string) string {
	if len(p.params) == 0 {
		return text
	}
	//
	return p.Build() + text + RESET
}

func (p AnsiEscape) with(param uint) AnsiEscape {
	// Copy so that escapes derived from a common prefix remain independent.
	params := make([]uint, len(p.params), len(p.params)+1)
	copy(params, p.params)
	//
	return AnsiEscape{append(params, param)}
}
