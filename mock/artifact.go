package mock

import (
	"io"

	"github.com/fwojciec/treecrumb"
)

var _ treecrumb.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore is a mock implementation of treecrumb.ArtifactStore.
type ArtifactStore struct {
	SaveFullSnapshotFn func(html string) (string, error)
	SaveSubtreeFn      func(spec treecrumb.FilterSpec, index, total int, content, ext string) (string, error)
	CreateLinksFn      func() (io.WriteCloser, string, error)
	WriteManifestFn    func(m *treecrumb.Manifest) (string, error)
}

func (s *ArtifactStore) SaveFullSnapshot(html string) (string, error) {
	return s.SaveFullSnapshotFn(html)
}

func (s *ArtifactStore) SaveSubtree(spec treecrumb.FilterSpec, index, total int, content, ext string) (string, error) {
	return s.SaveSubtreeFn(spec, index, total, content, ext)
}

func (s *ArtifactStore) CreateLinks() (io.WriteCloser, string, error) {
	return s.CreateLinksFn()
}

func (s *ArtifactStore) WriteManifest(m *treecrumb.Manifest) (string, error) {
	return s.WriteManifestFn(m)
}
