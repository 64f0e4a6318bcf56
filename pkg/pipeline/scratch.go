package pipeline

import (
	"log"
	"os"
	"path/filepath"
)

// scratchDir is the per-document temporary workspace used for the
// extraction subprocesses. The directory name is derived from the
// document id, so concurrent ingestions of different documents never
// collide.
type scratchDir struct {
	dir      string
	released bool
}

func (p *Pipeline) makeScratch(docID string) (*scratchDir, error) {
	dir := filepath.Join(p.tmpDir, docID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &scratchDir{dir: dir}, nil
}

// Release removes the scratch directory recursively. It is idempotent
// so it can run both at the natural end of the image step and from a
// defer covering every earlier exit path.
func (s *scratchDir) Release() {
	if s.released {
		return
	}
	s.released = true
	if err := os.RemoveAll(s.dir); err != nil {
		log.Printf("scratch cleanup failed for %s: %v", s.dir, err)
	}
}
