package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"patchenv/cmd"
	"patchenv/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is the only place that turns errors into an exit code.
func run(args []string, stdout, stderr io.Writer) int {
	slog.SetDefault(logger.NewLogger(stderr, ""))
	ctx := context.Background()
	defer logger.Cleanup()

	inv, err := cmd.Parse(args)
	if errors.Is(err, cmd.ErrHelp) {
		fmt.Fprint(stdout, cmd.GetUsage())
		return 0
	}
	if err != nil {
		logger.Error(ctx, "%v", err)
		fmt.Fprint(stderr, cmd.GetUsage())
		return 1
	}

	if err := cmd.Execute(ctx, inv, stdout, stderr); err != nil {
		logger.Error(ctx, "%v", err)
		return 1
	}
	return 0
}
