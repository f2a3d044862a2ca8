package goquery

import (
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/treecrumb"
	"golang.org/x/net/html"
)

// Ensure Extractor implements treecrumb.LinkExtractor at compile time.
var _ treecrumb.LinkExtractor = (*Extractor)(nil)

// Default tree vocabulary.
var (
	DefaultListTags = []string{"ul", "ol"}
	DefaultItemTag  = "li"
	DefaultLabelTag = "span"
)

// Extractor builds link records with breadcrumbs from nested lists.
//
// A breadcrumb is assembled by walking up from each link through the
// nearest list or list-item ancestor, one step at a time. Every list item
// passed on the way contributes the text of its first direct label child,
// if that text is not blank.
type Extractor struct {
	listTags []string
	itemTag  string
	labelTag string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithListTags sets the element names treated as lists.
func WithListTags(tags ...string) Option {
	return func(e *Extractor) {
		e.listTags = lowerAll(tags)
	}
}

// WithLabelTag sets the element name holding a list item's label.
func WithLabelTag(tag string) Option {
	return func(e *Extractor) {
		e.labelTag = strings.ToLower(tag)
	}
}

// NewExtractor creates an Extractor for ul/ol lists with span labels.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		listTags: DefaultListTags,
		itemTag:  DefaultItemTag,
		labelTag: DefaultLabelTag,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses html, applies spec, and extracts links from the first match.
func (e *Extractor) Extract(rawHTML string, spec treecrumb.FilterSpec) (*treecrumb.Extraction, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, treecrumb.Errorf(treecrumb.EINVALID, "failed to parse HTML: %v", err)
	}

	matches := Filter(doc, spec)
	result := &treecrumb.Extraction{}
	if matches.Length() == 0 {
		return result, nil
	}

	for i := range matches.Nodes {
		outer, err := goquery.OuterHtml(matches.Eq(i))
		if err != nil {
			return nil, err
		}
		result.Subtrees = append(result.Subtrees, outer)
	}

	var sink sliceSink
	if err := e.WriteLinks(matches.First(), &sink); err != nil {
		return nil, err
	}
	result.Links = sink.links
	return result, nil
}

// WriteLinks sends a record for every a[href] below root to sink, in
// document order, then flushes the sink.
//
// The ancestor walk is not bounded by root: a subtree that is still attached
// to its document picks up labels from list items above it.
func (e *Extractor) WriteLinks(root *goquery.Selection, sink treecrumb.LinkSink) error {
	var err error
	root.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		err = sink.WriteLink(treecrumb.LinkRecord{
			Title:      strings.TrimSpace(a.Text()),
			Href:       href,
			Breadcrumb: e.Breadcrumb(a.Nodes[0]),
		})
		return err == nil
	})
	if err != nil {
		return err
	}
	return sink.Flush()
}

// Breadcrumb returns the labels of the list items enclosing n, root-most first.
// It returns nil when n has no labelled list-item ancestors.
func (e *Extractor) Breadcrumb(n *html.Node) []string {
	var parts []string
	for cur := closest(n, e.isContainer); cur != nil; cur = closest(cur, e.isContainer) {
		if cur.Data != e.itemTag {
			continue
		}
		// TODO: optionally accept labels nested deeper than a direct child
		// (e.g. li > div > span) for trees that wrap their labels.
		label := firstChild(cur, func(c *html.Node) bool { return c.Data == e.labelTag })
		if label == nil {
			continue
		}
		if text := strings.TrimSpace(goquery.NewDocumentFromNode(label).Text()); text != "" {
			parts = append(parts, text)
		}
	}
	// Collected leaf-first.
	slices.Reverse(parts)
	return parts
}

func (e *Extractor) isContainer(n *html.Node) bool {
	return n.Data == e.itemTag || slices.Contains(e.listTags, n.Data)
}

// closest returns the nearest element ancestor of n (excluding n) that
// satisfies match, or nil.
func closest(n *html.Node, match func(*html.Node) bool) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && match(p) {
			return p
		}
	}
	return nil
}

// firstChild returns the first direct element child of n satisfying match.
func firstChild(n *html.Node, match func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && match(c) {
			return c
		}
	}
	return nil
}

func lowerAll(tags []string) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = strings.ToLower(t)
	}
	return out
}

// sliceSink collects records in memory.
type sliceSink struct {
	links []treecrumb.LinkRecord
}

func (s *sliceSink) WriteLink(rec treecrumb.LinkRecord) error {
	s.links = append(s.links, rec)
	return nil
}

func (s *sliceSink) Flush() error { return nil }
