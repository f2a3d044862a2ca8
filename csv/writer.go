// Package csv writes link records as CSV.
package csv

import (
	stdcsv "encoding/csv"
	"io"

	"github.com/fwojciec/treecrumb"
)

// Header is the first row of every links file.
var Header = []string{"Title", "Href", "Breadcrumb"}

// Ensure Writer implements treecrumb.LinkSink at compile time.
var _ treecrumb.LinkSink = (*Writer)(nil)

// Writer writes link records as CSV rows of title, href and breadcrumb.
// The header row is written once, before the first record or on Flush.
type Writer struct {
	w             *stdcsv.Writer
	headerWritten bool
	count         int
}

// NewWriter creates a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: stdcsv.NewWriter(w)}
}

// WriteLink writes one record.
func (w *Writer) WriteLink(rec treecrumb.LinkRecord) error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	if err := w.w.Write([]string{rec.Title, rec.Href, rec.BreadcrumbString()}); err != nil {
		return err
	}
	w.count++
	return nil
}

// Flush writes the header if nothing was written yet and flushes buffered rows.
func (w *Writer) Flush() error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	w.w.Flush()
	return w.w.Error()
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	return w.count
}

func (w *Writer) writeHeader() error {
	if w.headerWritten {
		return nil
	}
	w.headerWritten = true
	return w.w.Write(Header)
}
