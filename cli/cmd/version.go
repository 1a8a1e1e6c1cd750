package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/brrr/types"
)

// VersionCommand reports the engine's version.
func VersionCommand(commit string) *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(c *cli.Context) error {
			fmt.Printf("%s (commit: %s)\n", types.Version, commit)
			return nil
		},
	}
}
