// Package cmd provides CLI commands for the brrr binary.
package cmd

import "github.com/urfave/cli/v2"

// ConfigFlag points at a brrr.yaml config file. Empty uses in-memory
// store and queue backends with engine defaults.
var ConfigFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "Path to brrr.yaml",
}

// TUIFlag enables Bubble Tea interactive mode. Only valid for the
// read-only inspect and stats commands.
var TUIFlag = &cli.BoolFlag{
	Name:  "tui",
	Usage: "Enable interactive TUI mode (inspect, stats only)",
}

// EngineFlags returns the flags shared by every command that builds
// an engine instance.
func EngineFlags() []cli.Flag {
	return []cli.Flag{ConfigFlag}
}

// ReadOnlyFlags returns EngineFlags plus --tui, for inspect/stats.
func ReadOnlyFlags() []cli.Flag {
	return append(EngineFlags(), TUIFlag)
}
