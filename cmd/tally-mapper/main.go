// Package main provides the CLI entrypoint for tally-mapper.
//
// tally-mapper works on the data entry of polling-station results:
//   - Prints the form sections an election definition produces
//   - Flattens a results record into the form values of one section
//   - Applies edited form values back onto a results record
//   - Routes validation findings to sections and fields
//   - Compares and resolves the two entries of a double entry
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"tally-mapper/internal/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		slog.Error("tally-mapper failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Parse(args, stderr)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	cmd, ok := commands[cfg.Command]
	if !ok {
		return fmt.Errorf("unknown command %q (want one of %s)", cfg.Command, commandNames())
	}

	a, err := newApp(cfg, stdout, logger)
	if err != nil {
		return err
	}

	logger.Debug("running command", "command", cfg.Command, "args", cfg.Args)

	return cmd(a, cfg.Args)
}
