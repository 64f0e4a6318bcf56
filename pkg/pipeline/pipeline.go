// Package pipeline holds the core control flow: document ingestion and
// graph rebuilds. Everything else in the repository is an adapter it
// orchestrates.
package pipeline

import (
	"net/http"
	"os"

	"github.com/duynguyendang/doc2kg/pkg/embed"
	"github.com/duynguyendang/doc2kg/pkg/extract"
	"github.com/duynguyendang/doc2kg/pkg/graph"
	"github.com/duynguyendang/doc2kg/pkg/storage"
)

// Pipeline orchestrates the object store, the graph store, the
// embedding service and the extraction capability for one request at a
// time. It carries no mutable state of its own, so a single instance
// serves concurrent requests.
type Pipeline struct {
	objects   storage.ObjectStore
	graph     graph.Store
	embedder  embed.Service
	extractor extract.Extractor
	client    *http.Client
	tmpDir    string
}

// New creates a Pipeline. tmpDir is the parent directory for
// per-document scratch space; empty means the system temp directory.
func New(objects storage.ObjectStore, g graph.Store, e embed.Service, x extract.Extractor, tmpDir string) *Pipeline {
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	return &Pipeline{
		objects:   objects,
		graph:     g,
		embedder:  e,
		extractor: x,
		client:    &http.Client{},
		tmpDir:    tmpDir,
	}
}
