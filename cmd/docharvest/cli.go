package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/docharvest"
	"github.com/fwojciec/docharvest/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Targets  []docharvest.Target
	Fetcher  docharvest.Fetcher
	Reporter docharvest.Reporter
	Ledger   *sqlite.RunService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Run RunCmd `cmd:"" help:"Harvest one or all configured targets"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Config      string        `short:"f" default:"targets.yaml" help:"Targets configuration file"`
	Target      string        `short:"t" help:"Named target to harvest"`
	All         bool          `help:"Harvest every configured target, sequentially"`
	Out         string        `short:"o" default:"." help:"Base output directory"`
	Clean       bool          `help:"Wipe raw and converted outputs before running"`
	Concurrency int           `short:"c" default:"3" help:"Fetch worker pool size (= batch size)"`
	Timeout     time.Duration `default:"10s" help:"Per-navigation timeout"`
	BatchDelay  time.Duration `default:"1s" help:"Pause between fetch batches"`
	SettleDelay time.Duration `default:"500ms" help:"Post-render settle delay"`
	NoBrowser   bool          `help:"Fetch with plain HTTP instead of a browser (static sites only)"`
	History     string        `help:"SQLite run-history database path"`
	Verbose     bool          `short:"v" help:"Log per-page progress"`
}
