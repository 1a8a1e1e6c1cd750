package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/brrr/engine"
)

// WorkCommand runs the worker loop until the queue closes or the
// process receives an interrupt.
func WorkCommand() *cli.Command {
	return &cli.Command{
		Name:   "work",
		Usage:  "Run the worker loop",
		Flags:  EngineFlags(),
		Action: workAction,
	}
}

func workAction(c *cli.Context) error {
	b, cleanup, err := buildEngine(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer cleanup()

	w, err := engine.NewWorker(b)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer w.Release()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("worker started, press Ctrl+C to stop")
	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}
