package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/treecrumb"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL string `required:"" help:"URL of the page with the collapsible tree"`

	// Filter: --id, or --class-name with --element, or --attribute with
	// --value and --element. The first complete combination wins.
	ID        string `help:"ID of the element to extract links from"`
	ClassName string `name:"class-name" help:"Class name of the elements to extract links from (with --element)"`
	Attribute string `help:"Attribute name the elements must carry (with --value and --element)"`
	Value     string `help:"Exact attribute value for --attribute"`
	Element   string `help:"Element name for --class-name or --attribute (e.g. ul, div)"`

	OutputDir     string        `short:"o" default:"." help:"Directory in which the run directory is created"`
	Timeout       time.Duration `short:"t" default:"20s" help:"Page load timeout"`
	ClickInterval time.Duration `default:"1s" help:"Minimum delay between expansion clicks"`
	Settle        time.Duration `default:"5s" help:"Delay after expansion before capturing the page"`
	MaxRounds     int           `default:"100" help:"Maximum number of expansion passes"`
	ExpandXPath   string        `name:"expand-xpath" default:"${expand_xpath}" help:"XPath of the toggles of collapsed nodes"`
	LabelTag      string        `default:"span" help:"Element holding a list item's label"`
	Stealth       bool          `help:"Apply stealth evasions to the browser page"`
	Markdown      bool          `help:"Also write each filtered snapshot as Markdown"`
	Verbose       bool          `short:"v" help:"Enable debug logging"`

	Config kong.ConfigFlag `help:"Load flag values from a YAML file"`
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Now    func() time.Time

	Expander  treecrumb.Expander
	Extractor treecrumb.LinkExtractor
	Store     treecrumb.ArtifactStore

	// Converter is nil unless Markdown output is requested.
	Converter treecrumb.Converter
}

// RunCmd expands one page and writes its artifacts.
type RunCmd struct {
	RunID     string
	URL       string
	Filter    treecrumb.FilterSpec
	StartedAt time.Time
}
