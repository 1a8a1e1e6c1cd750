package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/brrr/cli/tui"
	"github.com/justapithecus/brrr/metrics"
)

// StatsCommand reports engine-wide counters for the current process.
// Metrics are in-process and this command reads a freshly created
// metrics.Collector, so it always reports a zero snapshot; counters
// from another process (such as a running `brrr work`) are not shown.
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:   "stats",
		Usage:  "Report engine counters",
		Flags:  ReadOnlyFlags(),
		Action: statsAction,
	}
}

func statsAction(c *cli.Context) error {
	_, cleanup, err := buildEngine(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer cleanup()

	snapshot := metrics.NewCollector().Snapshot()

	if c.Bool("tui") {
		return tui.Run("stats", snapshot)
	}

	fmt.Println(tui.RenderStatsStatic(snapshot))
	return nil
}
