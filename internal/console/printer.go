package console

import (
	"fmt"
	"io"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
)

var (
	addedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// Printer writes user-facing status lines. Styles are always rendered and
// the colorprofile writer downsamples them for the destination, stripping
// them entirely when it is not a terminal.
type Printer struct {
	w *colorprofile.Writer
}

// NewPrinter returns a Printer for w with the profile detected from w and
// the environment.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: colorprofile.NewWriter(w, os.Environ())}
}

// NewPrinterWithProfile returns a Printer that always uses profile.
func NewPrinterWithProfile(w io.Writer, profile colorprofile.Profile) *Printer {
	p := NewPrinter(w)
	p.w.Profile = profile
	return p
}

// Profile returns the colour profile output is rendered with.
func (p *Printer) Profile() colorprofile.Profile {
	return p.w.Profile
}

// Println formats and writes one line.
func (p *Printer) Println(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Added styles a line that was added.
func (p *Printer) Added(s string) string {
	return addedStyle.Render(s)
}

// Removed styles a line that was removed.
func (p *Printer) Removed(s string) string {
	return removedStyle.Render(s)
}

// Highlight styles a key or path mentioned in a status line.
func (p *Printer) Highlight(s string) string {
	return highlightStyle.Render(s)
}
