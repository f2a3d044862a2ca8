// Package fs provides file-based storage for run artifacts.
package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/treecrumb"
	"gopkg.in/yaml.v3"
)

// Artifact file names within a run directory.
const (
	FullSnapshotName = "fully_expanded_content.html"
	LinksName        = "parsed_links_and_breadcrumbs.csv"
	LogName          = "run.log"
	ManifestName     = "manifest.yaml"
)

// Ensure Store implements treecrumb.ArtifactStore at compile time.
var _ treecrumb.ArtifactStore = (*Store)(nil)

// Store writes the artifacts of one run into a timestamped directory.
type Store struct {
	dir string

	mu        sync.Mutex
	artifacts []treecrumb.Artifact
}

// RunDirName returns the directory name for a run started at t.
func RunDirName(t time.Time) string {
	return "run-" + t.Format("20060102-150405")
}

// NewStore creates a Store rooted at baseDir/run-YYYYMMDD-HHMMSS.
// Init must be called before writing.
func NewStore(baseDir string, startedAt time.Time) *Store {
	return &Store{dir: filepath.Join(baseDir, RunDirName(startedAt))}
}

// Dir returns the run directory.
func (s *Store) Dir() string {
	return s.dir
}

// Init creates the run directory.
func (s *Store) Init() error {
	return os.MkdirAll(s.dir, 0755)
}

// OpenLog opens the run log for appending.
func (s *Store) OpenLog() (*os.File, error) {
	return os.OpenFile(filepath.Join(s.dir, LogName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// SaveFullSnapshot writes the captured markup verbatim.
func (s *Store) SaveFullSnapshot(html string) (string, error) {
	return s.write(FullSnapshotName, []byte(html))
}

// SubtreeName returns the file name of a filter match.
// A lone match is named after the filter; multiple matches get a
// 1-based suffix.
func SubtreeName(spec treecrumb.FilterSpec, index, total int, ext string) string {
	name := "filtered_content_" + spec.Label()
	if total > 1 {
		name += "_" + strconv.Itoa(index+1)
	}
	return name + "." + ext
}

// SaveSubtree writes one filter match.
func (s *Store) SaveSubtree(spec treecrumb.FilterSpec, index, total int, content, ext string) (string, error) {
	if index < 0 || index >= total {
		return "", treecrumb.Errorf(treecrumb.EINVALID, "subtree index %d out of range [0,%d)", index, total)
	}
	return s.write(SubtreeName(spec, index, total, ext), []byte(content))
}

// CreateLinks opens the CSV output. The artifact is recorded when the
// returned writer is closed.
func (s *Store) CreateLinks() (io.WriteCloser, string, error) {
	path := filepath.Join(s.dir, LinksName)
	f, err := os.Create(path)
	if err != nil {
		return nil, "", err
	}
	return &hashingFile{f: f, name: LinksName, h: xxhash.New(), store: s}, path, nil
}

// WriteManifest fills in the recorded artifacts and writes m as YAML.
func (s *Store) WriteManifest(m *treecrumb.Manifest) (string, error) {
	s.mu.Lock()
	m.Artifacts = append([]treecrumb.Artifact(nil), s.artifacts...)
	s.mu.Unlock()

	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encoding manifest: %w", err)
	}
	path := filepath.Join(s.dir, ManifestName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// Artifacts returns the artifacts recorded so far.
func (s *Store) Artifacts() []treecrumb.Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]treecrumb.Artifact(nil), s.artifacts...)
}

func (s *Store) write(name string, data []byte) (string, error) {
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	s.record(treecrumb.Artifact{
		Name:  name,
		Bytes: int64(len(data)),
		Hash:  formatHash(xxhash.Sum64(data)),
	})
	return path, nil
}

func (s *Store) record(a treecrumb.Artifact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts = append(s.artifacts, a)
}

func formatHash(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}

// hashingFile hashes everything written to it and records the artifact on Close.
type hashingFile struct {
	f     *os.File
	name  string
	h     *xxhash.Digest
	n     int64
	store *Store
}

func (w *hashingFile) Write(p []byte) (int, error) {
	n, err := w.f.Write(p)
	_, _ = w.h.Write(p[:n])
	w.n += int64(n)
	return n, err
}

func (w *hashingFile) Close() error {
	if err := w.f.Close(); err != nil {
		return err
	}
	w.store.record(treecrumb.Artifact{
		Name:  w.name,
		Bytes: w.n,
		Hash:  formatHash(w.h.Sum64()),
	})
	return nil
}
