package env

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffOp is the kind of a DiffLine.
type DiffOp int

const (
	DiffEqual DiffOp = iota
	DiffRemoved
	DiffAdded
)

// DiffLine is one line of a line-level diff, without its terminator.
type DiffLine struct {
	Op   DiffOp
	Text string
}

// Diff returns the line-level difference between two versions of a file.
func Diff(before, after string) []DiffLine {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []DiffLine
	for _, d := range diffs {
		op := DiffEqual
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			op = DiffRemoved
		case diffmatchpatch.DiffInsert:
			op = DiffAdded
		}
		for _, line := range splitLines(d.Text) {
			out = append(out, DiffLine{Op: op, Text: line})
		}
	}
	return out
}

// Changes filters a diff down to the removed and added lines.
func Changes(diff []DiffLine) []DiffLine {
	var out []DiffLine
	for _, l := range diff {
		if l.Op != DiffEqual {
			out = append(out, l)
		}
	}
	return out
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
