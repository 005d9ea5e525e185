package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
)

var ErrHelp = errors.New("help shown")

// ErrMissingArguments is returned when the positional arguments are not
// exactly <env-file> <key> <value>.
var ErrMissingArguments = errors.New("missing arguments")

// ParseError wraps argument parsing errors
type ParseError struct {
	Args    []string // The full argument list passed to Parse
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return "Error in command line: " + e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Invocation is one parsed command line.
type Invocation struct {
	File  string
	Key   string
	Value string

	Version bool
	Verbose bool
	Debug   bool
	DryRun  bool
	Diff    bool
	Backup  bool
	Check   bool

	ConfigPath string
	LogFile    string

	// Flags given explicitly; these override the config file
	changed map[string]bool
}

// Changed reports whether flag was given on the command line.
func (inv Invocation) Changed(flag string) bool {
	return inv.changed[flag]
}

// Parse parses the command line arguments (without the program name).
func Parse(args []string) (Invocation, error) {
	var inv Invocation

	fs := NewFlagSet()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return inv, ErrHelp
		}
		return inv, &ParseError{Args: args, Message: err.Error(), Err: err}
	}

	if help, _ := fs.GetBool("help"); help {
		return inv, ErrHelp
	}

	inv.changed = make(map[string]bool)
	fs.Visit(func(f *pflag.Flag) {
		inv.changed[f.Name] = true
	})

	inv.Version, _ = fs.GetBool("version")
	inv.Verbose, _ = fs.GetBool("verbose")
	inv.Debug, _ = fs.GetBool("debug")
	inv.DryRun, _ = fs.GetBool("dry-run")
	inv.Diff, _ = fs.GetBool("diff")
	inv.Backup, _ = fs.GetBool("backup")
	inv.Check, _ = fs.GetBool("check")
	inv.ConfigPath, _ = fs.GetString("config")
	inv.LogFile, _ = fs.GetString("log-file")

	if inv.Version {
		return inv, nil
	}

	positional := fs.Args()
	if len(positional) != 3 {
		return inv, &ParseError{
			Args:    args,
			Message: fmt.Sprintf("expected <env-file> <key> <value>, got %d argument(s)", len(positional)),
			Err:     ErrMissingArguments,
		}
	}
	inv.File, inv.Key, inv.Value = positional[0], positional[1], positional[2]

	return inv, nil
}
