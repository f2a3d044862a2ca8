package mock

import (
	"github.com/fwojciec/treecrumb"
)

var (
	_ treecrumb.LinkSink      = (*LinkSink)(nil)
	_ treecrumb.LinkExtractor = (*LinkExtractor)(nil)
)

// LinkSink is a mock implementation of treecrumb.LinkSink.
type LinkSink struct {
	WriteLinkFn func(rec treecrumb.LinkRecord) error
	FlushFn     func() error
}

func (s *LinkSink) WriteLink(rec treecrumb.LinkRecord) error {
	return s.WriteLinkFn(rec)
}

func (s *LinkSink) Flush() error {
	return s.FlushFn()
}

// LinkExtractor is a mock implementation of treecrumb.LinkExtractor.
type LinkExtractor struct {
	ExtractFn func(html string, spec treecrumb.FilterSpec) (*treecrumb.Extraction, error)
}

func (e *LinkExtractor) Extract(html string, spec treecrumb.FilterSpec) (*treecrumb.Extraction, error) {
	return e.ExtractFn(html, spec)
}
