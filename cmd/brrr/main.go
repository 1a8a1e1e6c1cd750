// Package main provides the brrr CLI entrypoint: schedule, work, read,
// and inspect, a thin operability surface over the engine package.
//
// Usage:
//
//	brrr <command> [options]
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/brrr/cli/cmd"
)

// commit is set via ldflags at build time.
var commit = "unknown"

func main() {
	app := &cli.App{
		Name:           "brrr",
		Usage:          "Durable recursive task-execution engine",
		ExitErrHandler: exitErrHandler,
		Commands: []*cli.Command{
			cmd.ScheduleCommand(),
			cmd.WorkCommand(),
			cmd.ReadCommand(),
			cmd.InspectCommand(),
			cmd.StatsCommand(),
			cmd.VersionCommand(commit),
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

// exitErrHandler preserves exit codes set via cli.Exit, falling back
// to 1 for unwrapped errors.
func exitErrHandler(_ *cli.Context, err error) {
	if err == nil {
		return
	}

	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		code := exitCoder.ExitCode()
		msg := exitCoder.Error()
		if msg != "" && msg != fmt.Sprintf("exit status %d", code) {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(code)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
