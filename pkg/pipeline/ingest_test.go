package pipeline

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynguyendang/doc2kg/pkg/common/errors"
	"github.com/duynguyendang/doc2kg/pkg/docid"
	"github.com/duynguyendang/doc2kg/pkg/extract"
	"github.com/duynguyendang/doc2kg/pkg/graph"
	"github.com/duynguyendang/doc2kg/pkg/storage"
)

// stubEmbedder records inputs and returns a fixed vector. failOn makes
// the n-th call (1-based) fail.
type stubEmbedder struct {
	vector []float64
	failOn int
	calls  []string
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	s.calls = append(s.calls, text)
	if s.failOn > 0 && len(s.calls) == s.failOn {
		return nil, stderrors.New("embed backend down")
	}
	return s.vector, nil
}

type testEnv struct {
	pipeline  *Pipeline
	objects   *storage.MemoryStore
	graph     *graph.MemoryStore
	extractor *extract.Fake
	embedder  *stubEmbedder
	tmpDir    string
}

func newTestEnv(t *testing.T) *testEnv {
	env := &testEnv{
		objects:   storage.NewMemoryStore(),
		graph:     graph.NewMemoryStore(),
		extractor: &extract.Fake{Text: "Extracted text.", Pages: 2},
		embedder:  &stubEmbedder{vector: []float64{0.1, 0.2, 0.3}},
		tmpDir:    t.TempDir(),
	}
	env.pipeline = New(env.objects, env.graph, env.embedder, env.extractor, env.tmpDir)
	return env
}

func (e *testEnv) assertScratchGone(t *testing.T, docID string) {
	t.Helper()
	_, err := os.Stat(filepath.Join(e.tmpDir, docID))
	assert.True(t, os.IsNotExist(err), "scratch dir must be removed")
}

var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF")

func TestIngestSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.extractor.Images = []string{"img.1.png", "img.2.png"}

	id, err := env.pipeline.Ingest(context.Background(), IngestRequest{Data: samplePDF})
	require.NoError(t, err)
	assert.Equal(t, docid.FromBytes(samplePDF), id)

	// Artifacts under docId-derived keys.
	assert.Equal(t, samplePDF, env.objects.Object(storage.PDFKey(id)))
	assert.Equal(t, []byte("Extracted text."), env.objects.Object(storage.TextKey(id)))
	assert.JSONEq(t, `{"1":[[0.05,0.05,0.9,0.9]]}`, string(env.objects.Object(storage.RangesKey(id))))
	assert.NotNil(t, env.objects.Object("img.1.png"))
	assert.NotNil(t, env.objects.Object("img.2.png"))

	doc, err := env.graph.GetDocument(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Extracted text.", doc.Text)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, doc.Embedding)
	assert.Equal(t, int64(2), doc.Pages)
	assert.Empty(t, doc.SourceURL)

	env.assertScratchGone(t, id)
}

func TestIngestFromURL(t *testing.T) {
	env := newTestEnv(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write(samplePDF)
	}))
	defer ts.Close()

	id, err := env.pipeline.Ingest(context.Background(), IngestRequest{SourceURL: ts.URL})
	require.NoError(t, err)

	doc, err := env.graph.GetDocument(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, ts.URL, doc.SourceURL)
}

func TestIngestFetchFailure(t *testing.T) {
	env := newTestEnv(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	_, err := env.pipeline.Ingest(context.Background(), IngestRequest{SourceURL: ts.URL})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestIngestRejectsNonPDF(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.pipeline.Ingest(context.Background(), IngestRequest{Data: []byte("plain text, no signature")})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	// Validation precedes hashing: nothing downstream may have run.
	assert.Zero(t, env.graph.ExistsCalls())
	assert.Zero(t, env.extractor.TextCalls)
	assert.Zero(t, env.objects.Len())
}

func TestIngestEmptyRequest(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.pipeline.Ingest(context.Background(), IngestRequest{})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestIngestDuplicate(t *testing.T) {
	env := newTestEnv(t)

	id, err := env.pipeline.Ingest(context.Background(), IngestRequest{Data: samplePDF})
	require.NoError(t, err)
	objectsBefore := env.objects.Len()

	_, err = env.pipeline.Ingest(context.Background(), IngestRequest{Data: samplePDF})
	assert.ErrorIs(t, err, errors.ErrConflict)
	assert.Equal(t, objectsBefore, env.objects.Len(), "duplicate must not write anything")
	assert.Equal(t, 1, env.graph.Len())
	env.assertScratchGone(t, id)
}

func TestIngestExtractionFailure(t *testing.T) {
	env := newTestEnv(t)
	env.extractor.TextErr = stderrors.New("pdfplumber crashed")

	_, err := env.pipeline.Ingest(context.Background(), IngestRequest{Data: samplePDF})
	assert.ErrorIs(t, err, errors.ErrExtraction)

	assert.Zero(t, env.objects.Len(), "no artifacts on extraction failure")
	assert.Zero(t, env.graph.Len())
	env.assertScratchGone(t, docid.FromBytes(samplePDF))
}

func TestIngestStorageFailureKeepsEarlierArtifacts(t *testing.T) {
	env := newTestEnv(t)
	id := docid.FromBytes(samplePDF)
	env.objects.FailPut(storage.TextKey(id), stderrors.New("disk full"))

	_, err := env.pipeline.Ingest(context.Background(), IngestRequest{Data: samplePDF})
	assert.ErrorIs(t, err, errors.ErrStorage)

	// No compensating deletes: the PDF written before the failure stays.
	assert.Equal(t, samplePDF, env.objects.Object(storage.PDFKey(id)))
	assert.Zero(t, env.graph.Len())
	env.assertScratchGone(t, id)
}

func TestIngestImageFailureIsNonFatal(t *testing.T) {
	env := newTestEnv(t)
	env.extractor.ImagesErr = stderrors.New("render failed")

	id, err := env.pipeline.Ingest(context.Background(), IngestRequest{Data: samplePDF})
	require.NoError(t, err)

	assert.Equal(t, 3, env.objects.Len(), "pdf, text and ranges only")
	assert.Equal(t, 1, env.graph.Len())
	env.assertScratchGone(t, id)
}

func TestIngestEmbedFailure(t *testing.T) {
	env := newTestEnv(t)
	env.embedder.failOn = 1

	_, err := env.pipeline.Ingest(context.Background(), IngestRequest{Data: samplePDF})
	assert.ErrorIs(t, err, errors.ErrUpstream)

	// Artifacts persist, but the Document node was never created.
	id := docid.FromBytes(samplePDF)
	assert.NotNil(t, env.objects.Object(storage.PDFKey(id)))
	assert.Zero(t, env.graph.Len())
	env.assertScratchGone(t, id)
}
