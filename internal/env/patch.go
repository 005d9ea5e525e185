package env

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"unicode"

	"patchenv/internal/logger"
	"patchenv/internal/paths"
)

// Action tells what a patch did to the file.
type Action int

const (
	// Updated means an existing KEY= line had its value replaced.
	Updated Action = iota + 1
	// Added means KEY=VALUE was appended to the end of the file.
	Added
)

func (a Action) String() string {
	switch a {
	case Updated:
		return "updated"
	case Added:
		return "added"
	default:
		return "unknown"
	}
}

// Options controls the side effects of Patch.
type Options struct {
	DryRun bool // Compute the result but never write
	Backup bool // Copy the original content to <file>.bak before writing
}

// Result describes a completed patch.
type Result struct {
	Path       string // Absolute path of the env file
	Key        string
	Value      string
	Action     Action
	Before     string
	After      string
	Written    bool
	BackupPath string
}

// Changed reports whether the patch altered the file content.
func (r Result) Changed() bool {
	return r.Before != r.After
}

// linePattern matches the first assignment line for key.
// Groups: 1 leading whitespace, 2 "KEY =" prefix, 3 value up to the line terminator.
//
// Whitespace around the key is limited to spaces and tabs, so a match never
// spans lines. A key followed by any other whitespace, such as "FOO\v=1",
// does not match and the assignment is appended instead.
func linePattern(key string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^([ \t]*)(` + regexp.QuoteMeta(key) + `[ \t]*=)([^\r\n]*)`)
}

// PatchContent sets key to value in content and returns the new content.
//
// If a line assigning key exists, the text after its '=' is replaced with
// value and everything else, including the line terminator, is kept.
// Otherwise trailing whitespace is trimmed from content and
// "\nKEY=VALUE\n" is appended.
//
// The value is inserted verbatim; '$' sequences are not expanded.
func PatchContent(content, key, value string) (string, Action) {
	loc := linePattern(key).FindStringSubmatchIndex(content)
	if loc != nil {
		start, end := loc[6], loc[7]
		return content[:start] + value + content[end:], Updated
	}

	trimmed := strings.TrimRightFunc(content, unicode.IsSpace)
	return trimmed + "\n" + key + "=" + value + "\n", Added
}

// Patch sets key to value in the env file at path.
//
// The key is validated before the file is touched. The file must exist.
// The whole file is read, patched with PatchContent and written back over
// the original.
func Patch(ctx context.Context, path, key, value string, opts Options) (Result, error) {
	if err := ValidateKey(key); err != nil {
		return Result{}, err
	}

	abs, err := paths.ResolveFile(path)
	if err != nil {
		return Result{}, ioError(path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, fileNotFoundError(path, abs, err)
		}
		return Result{}, ioError(path, err)
	}

	logger.Debug(ctx, "Reading '%s'.", abs)
	data, err := os.ReadFile(abs)
	if err != nil {
		return Result{}, ioError(path, err)
	}

	before := string(data)
	after, action := PatchContent(before, key, value)
	res := Result{
		Path:   abs,
		Key:    key,
		Value:  value,
		Action: action,
		Before: before,
		After:  after,
	}
	logger.Info(ctx, "Variable '%s' %s in '%s'.", key, action, abs)

	if opts.DryRun {
		logger.Info(ctx, "Dry run, leaving '%s' untouched.", abs)
		return res, nil
	}

	if opts.Backup {
		bak := abs + ".bak"
		if err := os.WriteFile(bak, data, info.Mode().Perm()); err != nil {
			return res, ioError(path, err)
		}
		res.BackupPath = bak
		logger.Info(ctx, "Saved backup to '%s'.", bak)
	}

	if err := os.WriteFile(abs, []byte(after), info.Mode().Perm()); err != nil {
		return res, ioError(path, err)
	}
	res.Written = true
	logger.Debug(ctx, "Wrote %d bytes to '%s'.", len(after), abs)

	return res, nil
}
