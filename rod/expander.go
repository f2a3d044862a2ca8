// Package rod expands collapsible tree pages using Chrome browser automation.
package rod

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/treecrumb"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"golang.org/x/time/rate"
)

// Defaults for Expander options.
const (
	DefaultLoadTimeout   = 20 * time.Second
	DefaultClickInterval = time.Second
	DefaultSettleDelay   = 5 * time.Second
	DefaultMaxRounds     = 100

	// DefaultExpandXPath matches the expander toggles of collapsed tree items.
	DefaultExpandXPath = `//li[@aria-expanded="false"]//span[@class="tree-expander"]`
)

// Ensure Expander implements treecrumb.Expander at compile time.
var _ treecrumb.Expander = (*Expander)(nil)

// Expander loads a page in headless Chrome, clicks every collapsed tree node
// until none remain, and returns the rendered HTML.
type Expander struct {
	browser  *rod.Browser
	launcher *launcher.Launcher

	loadTimeout   time.Duration
	clickInterval time.Duration
	settleDelay   time.Duration
	maxRounds     int
	xpath         string
	stealth       bool
	headless      bool
	logger        *slog.Logger

	mu     sync.Mutex
	closed bool
}

// Option configures an Expander.
type Option func(*Expander)

// WithLoadTimeout bounds navigation and the wait for the page body.
func WithLoadTimeout(d time.Duration) Option {
	return func(e *Expander) {
		e.loadTimeout = d
	}
}

// WithClickInterval sets the minimum time between expansion clicks.
func WithClickInterval(d time.Duration) Option {
	return func(e *Expander) {
		e.clickInterval = d
	}
}

// WithSettleDelay sets how long to wait after the last expansion before
// capturing the markup.
func WithSettleDelay(d time.Duration) Option {
	return func(e *Expander) {
		e.settleDelay = d
	}
}

// WithMaxRounds caps the number of find-and-click passes. Trees whose
// toggles never change state would otherwise loop forever.
func WithMaxRounds(n int) Option {
	return func(e *Expander) {
		e.maxRounds = n
	}
}

// WithExpandXPath sets the XPath selecting toggles of collapsed nodes.
func WithExpandXPath(xpath string) Option {
	return func(e *Expander) {
		e.xpath = xpath
	}
}

// WithStealth opens pages with go-rod/stealth evasions applied.
func WithStealth(enabled bool) Option {
	return func(e *Expander) {
		e.stealth = enabled
	}
}

// WithHeadless controls whether Chrome runs without a window. Defaults to true.
func WithHeadless(enabled bool) Option {
	return func(e *Expander) {
		e.headless = enabled
	}
}

// WithLogger sets the logger for per-click failures and loop warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Expander) {
		e.logger = logger
	}
}

// NewExpander creates an Expander that launches a Chrome browser.
// Close must be called when the Expander is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewExpander(opts ...Option) (*Expander, error) {
	e := &Expander{
		loadTimeout:   DefaultLoadTimeout,
		clickInterval: DefaultClickInterval,
		settleDelay:   DefaultSettleDelay,
		maxRounds:     DefaultMaxRounds,
		xpath:         DefaultExpandXPath,
		headless:      true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.launchBrowser(); err != nil {
		return nil, err
	}
	return e, nil
}

// launchBrowser starts a browser instance with stability flags.
func (e *Expander) launchBrowser() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(e.headless)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return fmt.Errorf("connecting to browser: %w", err)
	}

	e.browser = browser
	e.launcher = l
	return nil
}

// Expand navigates to the URL, expands every collapsed node, and returns
// the rendered HTML.
func (e *Expander) Expand(ctx context.Context, url string) (string, error) {
	e.mu.Lock()
	closed := e.closed
	e.mu.Unlock()
	if closed {
		return "", treecrumb.Errorf(treecrumb.EINVALID, "expander closed")
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := e.newPage()
	if err != nil {
		return "", fmt.Errorf("creating page: %w", err)
	}
	defer page.Close()

	if err := e.load(ctx, page, url); err != nil {
		return "", err
	}

	page = page.Context(ctx)

	rounds, clicks, err := e.expandAll(ctx, page)
	if err != nil {
		return "", err
	}
	e.logger.Debug("expansion finished", "url", url, "rounds", rounds, "clicks", clicks)

	// Let lazy-loaded children finish rendering.
	if e.settleDelay > 0 {
		t := time.NewTimer(e.settleDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			return "", ctx.Err()
		case <-t.C:
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("capturing HTML: %w", err)
	}
	return html, nil
}

func (e *Expander) newPage() (*rod.Page, error) {
	if e.stealth {
		return stealth.Page(e.browser)
	}
	return e.browser.Page(proto.TargetCreateTarget{})
}

// load navigates and waits for the body element within the load timeout.
func (e *Expander) load(ctx context.Context, page *rod.Page, url string) error {
	loadCtx, cancel := context.WithTimeout(ctx, e.loadTimeout)
	defer cancel()

	p := page.Context(loadCtx)
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("waiting for %s to load: %w", url, err)
	}
	if _, err := p.Element("body"); err != nil {
		return fmt.Errorf("waiting for body of %s: %w", url, err)
	}
	return nil
}

// expandAll clicks collapsed toggles until a pass finds none or maxRounds
// is reached. A click that fails is logged and skipped.
func (e *Expander) expandAll(ctx context.Context, page *rod.Page) (rounds, clicks int, err error) {
	limiter := rate.NewLimiter(rate.Every(e.clickInterval), 1)
	if e.clickInterval <= 0 {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}

	for ; rounds < e.maxRounds; rounds++ {
		toggles, err := page.ElementsX(e.xpath)
		if err != nil {
			return rounds, clicks, fmt.Errorf("finding collapsed nodes: %w", err)
		}
		if len(toggles) == 0 {
			return rounds, clicks, nil
		}

		for _, el := range toggles {
			if err := limiter.Wait(ctx); err != nil {
				return rounds, clicks, err
			}
			if _, err := el.Eval(`() => this.click()`); err != nil {
				e.logger.Warn("expand click failed", "round", rounds, "err", err)
				continue
			}
			clicks++
		}
	}

	e.logger.Warn("collapsed nodes remain after max rounds", "rounds", rounds, "clicks", clicks)
	return rounds, clicks, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (e *Expander) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true

	var err error
	if e.browser != nil {
		err = e.browser.Close()
		e.browser = nil
	}
	if e.launcher != nil {
		e.launcher.Kill()
		e.launcher = nil
	}
	return err
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (e *Expander) LauncherPID() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.launcher == nil {
		return 0
	}
	return e.launcher.PID()
}
