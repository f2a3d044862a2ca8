package mock

import (
	"context"

	"github.com/fwojciec/treecrumb"
)

var _ treecrumb.Expander = (*Expander)(nil)

// Expander is a mock implementation of treecrumb.Expander.
type Expander struct {
	ExpandFn func(ctx context.Context, url string) (string, error)
	CloseFn  func() error
}

func (e *Expander) Expand(ctx context.Context, url string) (string, error) {
	return e.ExpandFn(ctx, url)
}

func (e *Expander) Close() error {
	return e.CloseFn()
}
