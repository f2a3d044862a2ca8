// Package goquery implements subtree filtering and breadcrumb extraction
// over documents parsed with goquery.
package goquery

import (
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/treecrumb"
	"golang.org/x/net/html"
)

// Filter returns the subtree roots in doc matching spec, in document order.
// FilterByID yields at most one node. An empty selection means no match.
// The spec is assumed valid.
func Filter(doc *goquery.Document, spec treecrumb.FilterSpec) *goquery.Selection {
	all := doc.Find("*")

	switch spec.Mode {
	case treecrumb.FilterByID:
		return all.FilterFunction(func(_ int, sel *goquery.Selection) bool {
			id, ok := sel.Attr("id")
			return ok && id == spec.ID
		}).First()

	case treecrumb.FilterByClass:
		want := strings.Fields(spec.Class)
		return all.FilterFunction(func(_ int, sel *goquery.Selection) bool {
			if !isTag(sel.Nodes[0], spec.Tag) {
				return false
			}
			class, _ := sel.Attr("class")
			have := strings.Fields(class)
			for _, c := range want {
				if !slices.Contains(have, c) {
					return false
				}
			}
			return true
		})

	case treecrumb.FilterByAttribute:
		return all.FilterFunction(func(_ int, sel *goquery.Selection) bool {
			if !isTag(sel.Nodes[0], spec.Tag) {
				return false
			}
			v, ok := sel.Attr(spec.Attribute)
			return ok && v == spec.Value
		})
	}

	return all.Slice(0, 0)
}

// isTag reports whether n is an element with the given name.
// The HTML parser lowercases element names.
func isTag(n *html.Node, name string) bool {
	return n.Type == html.ElementNode && n.Data == strings.ToLower(name)
}
