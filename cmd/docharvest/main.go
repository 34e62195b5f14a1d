package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docharvest"
	dhhttp "github.com/fwojciec/docharvest/http"
	"github.com/fwojciec/docharvest/rod"
	dhslog "github.com/fwojciec/docharvest/slog"
	"github.com/fwojciec/docharvest/sqlite"
	"github.com/fwojciec/docharvest/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by the run-history ledger, when enabled.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docharvest"),
		kong.Description("Harvest a documentation site into an indexed local markdown mirror"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docharvest --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cmd == "run" {
		if cli.Run.Target == "" && !cli.Run.All {
			return fmt.Errorf("either --target or --all is required")
		}

		cfg, err := yaml.Load(cli.Run.Config)
		if err != nil {
			return err
		}
		deps.Targets, err = selectTargets(cfg, &cli.Run)
		if err != nil {
			return err
		}

		level := slog.LevelInfo
		if cli.Run.Verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
		deps.Reporter = dhslog.NewReporter(logger)

		fetcher, err := newFetcher(&cli.Run, logger)
		if err != nil {
			if !cli.Run.NoBrowser {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			}
			return fmt.Errorf("failed to start fetcher: %w", err)
		}
		defer fetcher.Close()
		deps.Fetcher = fetcher

		if cli.Run.History != "" {
			m.DB = sqlite.NewDB(cli.Run.History)
			if err := m.DB.Open(); err != nil {
				return fmt.Errorf("failed to open history database at %q: %w", cli.Run.History, err)
			}
			defer m.Close()
			deps.Ledger = sqlite.NewRunService(m.DB)
		}
	}

	return kongCtx.Run(deps)
}

// selectTargets resolves the --target / --all flags against the config.
func selectTargets(cfg *yaml.Config, cmd *RunCmd) ([]docharvest.Target, error) {
	if cmd.All {
		var targets []docharvest.Target
		for _, name := range cfg.Names() {
			target, err := cfg.Target(name)
			if err != nil {
				return nil, err
			}
			targets = append(targets, target)
		}
		return targets, nil
	}

	target, err := cfg.Target(cmd.Target)
	if err != nil {
		return nil, err
	}
	return []docharvest.Target{target}, nil
}

// newFetcher creates the rendered-page fetcher, or a plain HTTP one
// when --no-browser is set.
func newFetcher(cmd *RunCmd, logger *slog.Logger) (docharvest.Fetcher, error) {
	var fetcher docharvest.Fetcher
	if cmd.NoBrowser {
		fetcher = dhhttp.NewFetcher(dhhttp.WithTimeout(cmd.Timeout))
	} else {
		rodFetcher, err := rod.NewFetcher(
			rod.WithFetchTimeout(cmd.Timeout),
			rod.WithSettleDelay(cmd.SettleDelay),
		)
		if err != nil {
			return nil, err
		}
		fetcher = rodFetcher
	}

	if cmd.Verbose {
		fetcher = rod.NewLoggingFetcher(fetcher, logger)
	}
	return fetcher, nil
}
