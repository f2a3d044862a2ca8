package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/treecrumb"
	"github.com/fwojciec/treecrumb/fs"
	"github.com/fwojciec/treecrumb/goquery"
	"github.com/fwojciec/treecrumb/htmltomarkdown"
	"github.com/fwojciec/treecrumb/rod"
	tcslog "github.com/fwojciec/treecrumb/slog"
	"github.com/google/uuid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// NewExpander creates the browser collaborator. Tests replace it to
	// avoid launching Chrome.
	NewExpander func(opts ...rod.Option) (treecrumb.Expander, error)

	// Now returns the current time; it names the run directory.
	Now func() time.Time

	// NewRunID returns the identifier recorded in logs and the manifest.
	NewRunID func() string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		NewExpander: func(opts ...rod.Option) (treecrumb.Expander, error) {
			return rod.NewExpander(opts...)
		},
		Now:      time.Now,
		NewRunID: uuid.NewString,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("treecrumb"),
		kong.Description("Expand a collapsible tree page and export its links with breadcrumbs"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"expand_xpath": rod.DefaultExpandXPath},
		kong.Configuration(YAML, "./treecrumb.yaml"),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	// The filter must be complete before any browser work starts.
	spec, err := treecrumb.NewFilterSpec(cli.ID, cli.ClassName, cli.Element, cli.Attribute, cli.Value)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", treecrumb.ErrorMessage(err))
		return err
	}

	startedAt := m.Now()
	runID := m.NewRunID()

	store := fs.NewStore(cli.OutputDir, startedAt)
	if err := store.Init(); err != nil {
		return fmt.Errorf("failed to create run directory: %w", err)
	}
	logFile, err := store.OpenLog()
	if err != nil {
		return fmt.Errorf("failed to open run log: %w", err)
	}
	defer logFile.Close()

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(io.MultiWriter(stderr, logFile), &slog.HandlerOptions{Level: level})).
		With("run", runID)
	logger.Info("run started", "url", cli.URL, "filter", spec.String(), "dir", store.Dir())

	expander, err := m.NewExpander(
		rod.WithLoadTimeout(cli.Timeout),
		rod.WithClickInterval(cli.ClickInterval),
		rod.WithSettleDelay(cli.Settle),
		rod.WithMaxRounds(cli.MaxRounds),
		rod.WithExpandXPath(cli.ExpandXPath),
		rod.WithStealth(cli.Stealth),
		rod.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		logger.Error("failed to start browser", "err", err)
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer expander.Close()

	deps := &Dependencies{
		Ctx:       ctx,
		Stdout:    stdout,
		Stderr:    stderr,
		Logger:    logger,
		Now:       m.Now,
		Expander:  tcslog.NewLoggingExpander(expander, logger),
		Extractor: tcslog.NewLoggingExtractor(goquery.NewExtractor(goquery.WithLabelTag(cli.LabelTag)), logger),
		Store:     store,
	}
	if cli.Markdown {
		deps.Converter = htmltomarkdown.NewConverter()
	}

	cmd := &RunCmd{
		RunID:     runID,
		URL:       cli.URL,
		Filter:    spec,
		StartedAt: startedAt,
	}

	return cmd.Run(deps)
}
