package main

import (
	"fmt"

	"github.com/fwojciec/treecrumb"
	"github.com/fwojciec/treecrumb/csv"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	manifest := &treecrumb.Manifest{
		RunID:     c.RunID,
		URL:       c.URL,
		Filter:    c.Filter,
		StartedAt: c.StartedAt,
	}

	html, err := deps.Expander.Expand(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to load %s: %v\n", c.URL, err)
		return err
	}

	path, err := deps.Store.SaveFullSnapshot(html)
	if err != nil {
		return fmt.Errorf("saving full snapshot: %w", err)
	}
	fmt.Fprintf(deps.Stdout, "Full page HTML saved to %s\n", path)

	result, err := deps.Extractor.Extract(html, c.Filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", treecrumb.ErrorMessage(err))
		return err
	}
	manifest.Matches = len(result.Subtrees)

	if err := c.saveSubtrees(deps, result.Subtrees); err != nil {
		return err
	}

	if _, ok := result.Primary(); !ok {
		deps.Logger.Warn("no primary subtree, skipping CSV generation", "filter", c.Filter.String())
		fmt.Fprintf(deps.Stdout, "No elements match %s; skipping CSV generation\n", c.Filter)
		return c.finish(deps, manifest)
	}

	path, err = c.writeLinks(deps, result.Links)
	if err != nil {
		return fmt.Errorf("writing links: %w", err)
	}
	manifest.Links = len(result.Links)
	deps.Logger.Info("links written", "path", path, "links", len(result.Links))
	fmt.Fprintf(deps.Stdout, "Saved %d links to %s\n", len(result.Links), path)

	return c.finish(deps, manifest)
}

// saveSubtrees writes every match, plus its Markdown rendition when a
// Converter is configured. A failed conversion is logged and skipped.
func (c *RunCmd) saveSubtrees(deps *Dependencies, subtrees []string) error {
	for i, sub := range subtrees {
		path, err := deps.Store.SaveSubtree(c.Filter, i, len(subtrees), sub, "html")
		if err != nil {
			return fmt.Errorf("saving filtered snapshot: %w", err)
		}
		deps.Logger.Info("filtered snapshot saved", "path", path, "index", i+1, "of", len(subtrees))
		fmt.Fprintf(deps.Stdout, "Filtered HTML saved to %s\n", path)

		if deps.Converter == nil {
			continue
		}
		md, err := deps.Converter.Convert(sub)
		if err != nil {
			deps.Logger.Warn("markdown conversion failed", "index", i+1, "err", err)
			continue
		}
		if _, err := deps.Store.SaveSubtree(c.Filter, i, len(subtrees), md, "md"); err != nil {
			return fmt.Errorf("saving markdown snapshot: %w", err)
		}
	}
	return nil
}

func (c *RunCmd) writeLinks(deps *Dependencies, links []treecrumb.LinkRecord) (path string, err error) {
	f, path, err := deps.Store.CreateLinks()
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	for _, rec := range links {
		if err := w.WriteLink(rec); err != nil {
			return "", err
		}
	}
	return path, w.Flush()
}

func (c *RunCmd) finish(deps *Dependencies, manifest *treecrumb.Manifest) error {
	manifest.FinishedAt = deps.Now()
	path, err := deps.Store.WriteManifest(manifest)
	if err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	deps.Logger.Info("run finished", "manifest", path, "matches", manifest.Matches, "links", manifest.Links)
	return nil
}
