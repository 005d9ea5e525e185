package cmd

import (
	"io"

	"patchenv/internal/version"

	"github.com/spf13/pflag"
)

// NewFlagSet defines the flags accepted before the positional arguments.
// Parsing stops at the first positional argument so values that start
// with a dash are passed through untouched.
func NewFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(version.CommandName, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SetInterspersed(false)
	fs.SortFlags = false

	// Modifiers
	fs.BoolP("help", "h", false, "Show this help")
	fs.BoolP("version", "V", false, "Show version")
	fs.BoolP("verbose", "v", false, "Verbose output")
	fs.BoolP("debug", "x", false, "Debug output")

	// Patch behaviour
	fs.BoolP("dry-run", "n", false, "Show the change without writing the file")
	fs.BoolP("diff", "d", false, "Print a line diff of the change")
	fs.BoolP("backup", "b", false, "Copy the original file to <env-file>.bak before writing")
	fs.BoolP("check", "c", false, "Warn if a dotenv loader would read a different value")

	// Configuration
	fs.String("config", "", "Read settings from this file instead of the default location")
	fs.String("log-file", "", "Also append log output to this file")

	return fs
}
