package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/brrr/engine"
	"github.com/justapithecus/brrr/types"
)

// ReadCommand looks up a completed task's cached result.
func ReadCommand() *cli.Command {
	return &cli.Command{
		Name:      "read",
		Usage:     "Read a task's cached result",
		ArgsUsage: "<task> <n>",
		Flags:     EngineFlags(),
		Action:    readAction,
	}
}

func readAction(c *cli.Context) error {
	if c.NArg() < 2 {
		return cli.Exit("usage: brrr read <task> <n>", 1)
	}
	taskName := c.Args().Get(0)
	n, err := strconv.ParseFloat(c.Args().Get(1), 64)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid argument %q: %v", c.Args().Get(1), err), 1)
	}

	_, cleanup, err := buildEngine(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer cleanup()

	switch taskName {
	case "triangular_sum":
		value, err := engine.Read(context.Background(), triangularSumTask, n)
		if errors.Is(err, types.ErrNotFound) {
			return cli.Exit("not ready", 2)
		}
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		fmt.Printf("%v\n", value)
		return nil
	default:
		return cli.Exit(fmt.Sprintf("unknown task %q", taskName), 1)
	}
}
