package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/brrr/cli/tui"
	"github.com/justapithecus/brrr/engine"
)

// InspectCommand reports a task call's current status.
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Inspect a task call's status",
		ArgsUsage: "<task> <n>",
		Flags: append(ReadOnlyFlags(), &cli.StringFlag{
			Name:  "root",
			Usage: "Root id returned by schedule, for spawn-count reporting",
		}),
		Action: inspectAction,
	}
}

func inspectAction(c *cli.Context) error {
	if c.NArg() < 2 {
		return cli.Exit("usage: brrr inspect <task> <n>", 1)
	}
	taskName := c.Args().Get(0)
	n, err := strconv.ParseFloat(c.Args().Get(1), 64)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid argument %q: %v", c.Args().Get(1), err), 1)
	}
	rootID := c.String("root")

	_, cleanup, err := buildEngine(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer cleanup()

	if taskName != "triangular_sum" {
		return cli.Exit(fmt.Sprintf("unknown task %q", taskName), 1)
	}

	status, err := engine.Inspect(context.Background(), triangularSumTask, n, rootID)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if c.Bool("tui") {
		return tui.Run("inspect", &tui.InspectViewData{RootID: rootID, Status: status})
	}

	fmt.Println(tui.RenderInspectStatic(rootID, status))
	return nil
}
