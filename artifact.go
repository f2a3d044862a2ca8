package treecrumb

import (
	"io"
	"time"
)

// Artifact describes one file written during a run.
type Artifact struct {
	Name  string `yaml:"name"`
	Bytes int64  `yaml:"bytes"`
	Hash  string `yaml:"hash"` // hex xxhash64 of the content
}

// Manifest summarizes a run and the artifacts it produced.
type Manifest struct {
	RunID      string     `yaml:"run_id"`
	URL        string     `yaml:"url"`
	Filter     FilterSpec `yaml:"filter"`
	StartedAt  time.Time  `yaml:"started_at"`
	FinishedAt time.Time  `yaml:"finished_at"`
	Matches    int        `yaml:"matches"`
	Links      int        `yaml:"links"`
	Artifacts  []Artifact `yaml:"artifacts"`
}

// ArtifactStore persists the outputs of a single run.
type ArtifactStore interface {
	// SaveFullSnapshot writes the complete captured markup verbatim.
	SaveFullSnapshot(html string) (path string, err error)

	// SaveSubtree writes one filter match. index is zero-based and total is
	// the number of matches; ext is the file extension without the dot.
	SaveSubtree(spec FilterSpec, index, total int, content, ext string) (path string, err error)

	// CreateLinks opens the CSV output for writing.
	CreateLinks() (w io.WriteCloser, path string, err error)

	// WriteManifest records the run summary along with every artifact
	// written so far.
	WriteManifest(m *Manifest) (path string, err error)
}
