// Package htmltomarkdown renders filtered snapshots as Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/treecrumb"
)

// DefaultStripSelectors match the expand/collapse toggles of a rendered
// tree. They carry glyphs like "+" or "▸" that would otherwise prefix
// every label in the outline.
var DefaultStripSelectors = []string{".tree-expander"}

// Ensure Converter implements treecrumb.Converter at compile time.
var _ treecrumb.Converter = (*Converter)(nil)

// Converter renders an expanded tree as a Markdown outline. Nested lists
// keep their indentation and links stay intact.
type Converter struct {
	conv  *converter.Converter
	strip []string
}

// Option configures a Converter.
type Option func(*Converter)

// WithoutElements sets the CSS selectors of elements removed before
// conversion, replacing DefaultStripSelectors.
func WithoutElements(selectors ...string) Option {
	return func(c *Converter) {
		c.strip = selectors
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
		strip: DefaultStripSelectors,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms a tree snapshot into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", treecrumb.Errorf(treecrumb.EINVALID, "empty HTML input")
	}

	if len(c.strip) > 0 {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			return "", treecrumb.Errorf(treecrumb.EINVALID, "failed to parse HTML: %v", err)
		}
		for _, sel := range c.strip {
			doc.Find(sel).Remove()
		}
		if html, err = doc.Find("body").Html(); err != nil {
			return "", err
		}
	}

	return c.conv.ConvertString(html)
}
