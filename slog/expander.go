// Package slog provides log/slog decorators for treecrumb services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/treecrumb"
)

// Ensure LoggingExpander implements treecrumb.Expander.
var _ treecrumb.Expander = (*LoggingExpander)(nil)

// LoggingExpander wraps an Expander with logging.
type LoggingExpander struct {
	next   treecrumb.Expander
	logger *slog.Logger
}

// NewLoggingExpander creates a new LoggingExpander.
func NewLoggingExpander(next treecrumb.Expander, logger *slog.Logger) *LoggingExpander {
	return &LoggingExpander{next: next, logger: logger}
}

// Expand logs the URL, markup size and duration, and delegates to the wrapped expander.
func (e *LoggingExpander) Expand(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelError
		}
		e.logger.Log(ctx, level, "expand",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Expand(ctx, url)
}

// Close delegates to the wrapped expander.
func (e *LoggingExpander) Close() error {
	return e.next.Close()
}
