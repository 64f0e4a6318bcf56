// Package extract is the boundary to the external text/image
// extraction capability. The production implementation shells out to
// the python helper scripts; tests use the in-memory Fake.
package extract

import "context"

// Rect is a normalized [left, top, right, bottom] region of a page,
// each value a ratio of the visible page dimensions in [0,1].
type Rect [4]float64

// RangeSet maps 1-based page numbers, as string keys, to the ordered
// regions of that page used for text extraction.
type RangeSet map[string][]Rect

// DefaultRanges seeds a new document with a single near-full-page
// region on page 1.
func DefaultRanges() RangeSet {
	return RangeSet{"1": {{0.05, 0.05, 0.90, 0.90}}}
}

// TextResult is the outcome of a successful text extraction.
type TextResult struct {
	Text  string
	Pages int64
}

// Extractor is the port to the extraction capability.
type Extractor interface {
	// ExtractText extracts the text covered by ranges from the PDF at
	// pdfPath and reports the total page count.
	ExtractText(ctx context.Context, pdfPath string, ranges RangeSet) (TextResult, error)
	// ExtractImages renders one PNG per page into outDir and returns
	// the file names, each of the form "<docID>.<page>.png".
	ExtractImages(ctx context.Context, pdfPath, outDir, docID string) ([]string, error)
}
