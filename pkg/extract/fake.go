package extract

import (
	"context"
	"os"
	"path/filepath"
)

// Fake is an in-memory Extractor returning canned results for tests.
type Fake struct {
	Text   string
	Pages  int64
	Images []string

	TextErr   error
	ImagesErr error

	TextCalls   int
	ImagesCalls int
}

func (f *Fake) ExtractText(_ context.Context, _ string, _ RangeSet) (TextResult, error) {
	f.TextCalls++
	if f.TextErr != nil {
		return TextResult{}, f.TextErr
	}
	return TextResult{Text: f.Text, Pages: f.Pages}, nil
}

// ExtractImages writes a small placeholder file per configured image
// name so the pipeline can read them back like real renders.
func (f *Fake) ExtractImages(_ context.Context, _ string, outDir, _ string) ([]string, error) {
	f.ImagesCalls++
	if f.ImagesErr != nil {
		return nil, f.ImagesErr
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}
	for _, name := range f.Images {
		if err := os.WriteFile(filepath.Join(outDir, name), []byte("png:"+name), 0o644); err != nil {
			return nil, err
		}
	}
	return append([]string(nil), f.Images...), nil
}
