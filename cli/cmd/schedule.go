package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/brrr/engine"
)

// ScheduleCommand schedules a root execution of a known task.
func ScheduleCommand() *cli.Command {
	return &cli.Command{
		Name:      "schedule",
		Usage:     "Schedule a task for execution",
		ArgsUsage: "<task> <n>",
		Flags:     EngineFlags(),
		Action:    scheduleAction,
	}
}

func scheduleAction(c *cli.Context) error {
	if c.NArg() < 2 {
		return cli.Exit("usage: brrr schedule <task> <n>", 1)
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
		rootID, err := engine.Schedule(context.Background(), triangularSumTask, n)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		if rootID == "" {
			fmt.Println("already scheduled")
			return nil
		}
		fmt.Printf("root_id=%s\n", rootID)
		return nil
	default:
		return cli.Exit(fmt.Sprintf("unknown task %q", taskName), 1)
	}
}
