package cmd

import (
	"context"
	"io"
	"log/slog"

	"patchenv/internal/config"
	"patchenv/internal/console"
	"patchenv/internal/env"
	"patchenv/internal/logger"
	"patchenv/internal/version"
)

// Execute runs one parsed invocation. Status lines go to stdout, logs to
// stderr. Errors are returned to the caller, which owns the exit code.
func Execute(ctx context.Context, inv Invocation, stdout, stderr io.Writer) error {
	conf, confErr := config.LoadAppConfig(inv.ConfigPath)

	configureLogging(ctx, inv, conf, stderr)
	if confErr != nil {
		logger.Warn(ctx, "Using default settings: %v", confErr)
	} else if conf.Source != "" {
		logger.Debug(ctx, "Loaded settings from '%s'.", conf.Source)
	}

	out := console.NewPrinter(stdout)

	if inv.Version {
		out.Println("%s", version.String())
		return nil
	}

	if err := env.ValidateKey(inv.Key); err != nil {
		return err
	}

	opts := env.Options{
		DryRun: inv.DryRun,
		Backup: pick(inv, "backup", inv.Backup, conf.Patch.Backup),
	}
	showDiff := inv.DryRun || pick(inv, "diff", inv.Diff, conf.Patch.Diff)
	check := pick(inv, "check", inv.Check, conf.Patch.Check)

	res, err := env.Patch(ctx, inv.File, inv.Key, inv.Value, opts)
	if err != nil {
		return err
	}

	key, file := out.Highlight(inv.Key), out.Highlight(inv.File)
	switch {
	case res.Action == env.Updated && inv.DryRun:
		out.Println("Would update %s in %s", key, file)
	case res.Action == env.Added && inv.DryRun:
		out.Println("Would add %s to %s", key, file)
	case res.Action == env.Updated:
		out.Println("Updated %s in %s", key, file)
	default:
		out.Println("Added %s to %s", key, file)
	}

	if showDiff {
		for _, line := range env.Changes(env.Diff(res.Before, res.After)) {
			if line.Op == env.DiffRemoved {
				out.Println("%s", out.Removed("-"+line.Text))
			} else {
				out.Println("%s", out.Added("+"+line.Text))
			}
		}
	}

	if check {
		checkEffectiveValue(ctx, res)
	}

	if res.Written {
		out.Println("Successfully updated %s: %s=%s", inv.File, inv.Key, inv.Value)
	}
	return nil
}

// pick returns the flag value when it was given, else the configured one.
func pick(inv Invocation, flag string, flagValue, configured bool) bool {
	if inv.Changed(flag) {
		return flagValue
	}
	return configured
}

func configureLogging(ctx context.Context, inv Invocation, conf config.AppConfig, stderr io.Writer) {
	level, levelErr := logger.ParseLevel(conf.Log.Level)
	switch {
	case inv.Debug:
		level = logger.LevelDebug
	case inv.Verbose:
		level = min(level, logger.LevelInfo)
	}
	logger.SetLevel(level)

	logFile := conf.Log.File
	if inv.LogFile != "" {
		logFile = inv.LogFile
	}
	slog.SetDefault(logger.NewLogger(stderr, logFile))

	if levelErr != nil {
		logger.Warn(ctx, "Ignoring log level from config: %v", levelErr)
	}
}

func checkEffectiveValue(ctx context.Context, res env.Result) {
	got, found, err := env.EffectiveValue(res.After, res.Key)
	switch {
	case err != nil:
		logger.Warn(ctx, "Could not read back '%s' as a dotenv file: %v", res.Path, err)
	case !found:
		logger.Warn(ctx, "A dotenv loader will not see '%s' in '%s'.", res.Key, res.Path)
	case got != res.Value:
		logger.Warn(ctx, "A dotenv loader will read '%s' as %q, not %q.", res.Key, got, res.Value)
	default:
		logger.Debug(ctx, "A dotenv loader reads '%s' back unchanged.", res.Key)
	}
}
