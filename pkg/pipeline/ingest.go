package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/duynguyendang/doc2kg/pkg/common/errors"
	"github.com/duynguyendang/doc2kg/pkg/docid"
	"github.com/duynguyendang/doc2kg/pkg/extract"
	"github.com/duynguyendang/doc2kg/pkg/graph"
	"github.com/duynguyendang/doc2kg/pkg/storage"
)

const pdfSignature = "%PDF-"

// IngestRequest carries the input of one ingestion: either the raw PDF
// bytes of an upload, or a URL to fetch them from. Data wins when both
// are set.
type IngestRequest struct {
	Data      []byte
	SourceURL string
}

// Ingest runs the full ingestion pipeline for a new document and
// returns its content-derived id.
//
// The steps run strictly in order, each a potential exit point:
// acquisition, PDF validation, addressing and dedup, scratch space,
// text extraction, artifact storage, image extraction (non-fatal),
// embedding and graph-node creation. Artifacts written before a later
// failure are not rolled back.
func (p *Pipeline) Ingest(ctx context.Context, req IngestRequest) (string, error) {
	pdf := req.Data
	if len(pdf) == 0 && req.SourceURL != "" {
		fetched, err := p.fetch(ctx, req.SourceURL)
		if err != nil {
			return "", fmt.Errorf("%w: fetch %s: %v", errors.ErrInvalidInput, req.SourceURL, err)
		}
		pdf = fetched
	}

	// Validation comes before hashing and before any external call.
	if len(pdf) < len(pdfSignature) || string(pdf[:len(pdfSignature)]) != pdfSignature {
		return "", fmt.Errorf("%w: missing %s signature", errors.ErrInvalidInput, pdfSignature)
	}

	id := docid.FromBytes(pdf)

	exists, err := p.graph.DocumentExists(ctx, id)
	if err != nil {
		return "", fmt.Errorf("%w: check for existing document: %v", errors.ErrStorage, err)
	}
	if exists {
		return "", fmt.Errorf("%w: document %s", errors.ErrConflict, id)
	}

	scratch, err := p.makeScratch(id)
	if err != nil {
		return "", fmt.Errorf("%w: create scratch dir: %v", errors.ErrStorage, err)
	}
	defer scratch.Release()

	pdfPath := filepath.Join(scratch.dir, "source.pdf")
	if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
		return "", fmt.Errorf("%w: write scratch pdf: %v", errors.ErrStorage, err)
	}

	ranges := extract.DefaultRanges()
	text, err := p.extractor.ExtractText(ctx, pdfPath, ranges)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrExtraction, err)
	}

	if err := p.objects.EnsureBucket(ctx); err != nil {
		return "", fmt.Errorf("%w: ensure bucket: %v", errors.ErrStorage, err)
	}
	if err := p.putBytes(ctx, storage.PDFKey(id), pdf, "application/pdf"); err != nil {
		return "", fmt.Errorf("%w: store pdf: %v", errors.ErrStorage, err)
	}
	if err := p.putBytes(ctx, storage.TextKey(id), []byte(text.Text), "text/plain"); err != nil {
		return "", fmt.Errorf("%w: store plain text: %v", errors.ErrStorage, err)
	}
	rangesJSON, err := json.Marshal(ranges)
	if err != nil {
		return "", fmt.Errorf("%w: marshal ranges: %v", errors.ErrStorage, err)
	}
	if err := p.putBytes(ctx, storage.RangesKey(id), rangesJSON, "application/json"); err != nil {
		return "", fmt.Errorf("%w: store ranges: %v", errors.ErrStorage, err)
	}

	// Page images are a best-effort artifact; a failure is logged and
	// ingestion continues without them. The scratch dir has no further
	// consumers after this step.
	p.storePageImages(ctx, id, pdfPath, scratch.dir)
	scratch.Release()

	vector, err := p.embedder.Embed(ctx, text.Text)
	if err != nil {
		return "", fmt.Errorf("%w: embed document text: %v", errors.ErrUpstream, err)
	}

	doc := graph.Document{
		DocID:     id,
		Text:      text.Text,
		Embedding: vector,
		SourceURL: req.SourceURL,
		Pages:     text.Pages,
	}
	if err := p.graph.CreateDocument(ctx, doc); err != nil {
		return "", fmt.Errorf("%w: create document node: %v", errors.ErrStorage, err)
	}

	return id, nil
}

func (p *Pipeline) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, stderrors.New("unexpected status " + resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (p *Pipeline) putBytes(ctx context.Context, key string, data []byte, contentType string) error {
	return p.objects.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
}

// storePageImages extracts per-page PNGs into the scratch dir and
// uploads each one, stopping at the first failure.
func (p *Pipeline) storePageImages(ctx context.Context, docID, pdfPath, scratchPath string) {
	imagesDir := filepath.Join(scratchPath, "images")
	names, err := p.extractor.ExtractImages(ctx, pdfPath, imagesDir, docID)
	if err != nil {
		log.Printf("image extraction failed for %s: %v", docID, err)
		return
	}
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(imagesDir, name))
		if err != nil {
			log.Printf("read page image %s: %v", name, err)
			return
		}
		if err := p.putBytes(ctx, name, data, "image/png"); err != nil {
			log.Printf("store page image %s: %v", name, err)
			return
		}
	}
}
