package mock

import "github.com/fwojciec/treecrumb"

var _ treecrumb.Converter = (*Converter)(nil)

// Converter is a mock implementation of treecrumb.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
