package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/treecrumb"
)

// Ensure LoggingExtractor implements treecrumb.LinkExtractor.
var _ treecrumb.LinkExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a LinkExtractor with logging. A filter that
// matches nothing is logged at Info; callers decide whether it warrants
// a warning.
type LoggingExtractor struct {
	next   treecrumb.LinkExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next treecrumb.LinkExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract logs match and link counts and delegates to the wrapped extractor.
func (e *LoggingExtractor) Extract(html string, spec treecrumb.FilterSpec) (result *treecrumb.Extraction, err error) {
	defer func(begin time.Time) {
		switch {
		case err != nil:
			e.logger.Error("extract", "filter", spec.String(), "duration", time.Since(begin), "err", err)
		case result == nil || len(result.Subtrees) == 0:
			e.logger.Info("extract: no element matches filter", "filter", spec.String(), "duration", time.Since(begin))
		default:
			e.logger.Info("extract",
				"filter", spec.String(),
				"matches", len(result.Subtrees),
				"links", len(result.Links),
				"duration", time.Since(begin),
			)
		}
	}(time.Now())
	return e.next.Extract(html, spec)
}
