package console

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether w writes straight to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ColorEnabled reports whether raw colour codes may be written to w.
// NO_COLOR and CLICOLOR=0 turn colour off even on a terminal.
func ColorEnabled(w io.Writer) bool {
	return IsTerminal(w) && !termenv.EnvNoColor()
}
