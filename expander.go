package treecrumb

import "context"

// Expander renders a page in a browser, expands every collapsed tree node,
// and returns the final markup.
type Expander interface {
	// Expand navigates to the URL, repeatedly expands collapsed nodes until
	// none remain, and returns the rendered HTML.
	// The context controls timeout and cancellation.
	Expand(ctx context.Context, url string) (html string, err error)

	// Close releases browser resources.
	// Must be called when the Expander is no longer needed.
	Close() error
}
