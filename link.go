package treecrumb

import "strings"

// BreadcrumbSeparator joins breadcrumb segments in output.
const BreadcrumbSeparator = " > "

// LinkRecord is one hyperlink found in a page together with its position
// in the surrounding tree.
type LinkRecord struct {
	// Title is the trimmed visible text of the link.
	Title string

	// Href is the link target exactly as written in the markup.
	Href string

	// Breadcrumb holds the list-item labels above the link, root-most first.
	// Segments are never empty.
	Breadcrumb []string
}

// BreadcrumbString joins the breadcrumb segments with BreadcrumbSeparator.
// A link outside any list yields an empty string.
func (r LinkRecord) BreadcrumbString() string {
	return strings.Join(r.Breadcrumb, BreadcrumbSeparator)
}

// LinkSink receives link records in document order.
type LinkSink interface {
	// WriteLink records a single link.
	WriteLink(rec LinkRecord) error

	// Flush finalizes output. It must be called once after the last record,
	// even when no records were written.
	Flush() error
}

// Extraction is the result of filtering a page and extracting its links.
type Extraction struct {
	// Subtrees holds the outer HTML of every filter match in document order.
	Subtrees []string

	// Links holds the records of the primary (first) subtree.
	Links []LinkRecord
}

// Primary returns the subtree designated for link extraction.
// ok is false when the filter matched nothing.
func (e *Extraction) Primary() (html string, ok bool) {
	if e == nil || len(e.Subtrees) == 0 {
		return "", false
	}
	return e.Subtrees[0], true
}

// LinkExtractor narrows a page to the subtrees selected by a filter and
// extracts links with breadcrumbs from the primary one.
type LinkExtractor interface {
	// Extract parses html, applies spec, and extracts links from the first
	// match. A filter that matches nothing is not an error: the returned
	// Extraction simply has no subtrees and no links.
	Extract(html string, spec FilterSpec) (*Extraction, error)
}
