package termio

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal determines whether a given file (e.g. os.Stderr) is attached to
// an interactive terminal, and hence can usefully display escapes.
func IsTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}
