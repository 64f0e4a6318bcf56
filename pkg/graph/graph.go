// Package graph provides the property-graph port and its adapters.
//
// The graph schema is small and fixed: Document nodes keyed by doc_id,
// Information nodes holding one text block each, and HAS relationships
// from a Document to its Information children.
package graph

import "context"

// Document is the graph node created once at ingestion. Text and
// Embedding are the only fields mutated afterwards, by graph rebuilds.
type Document struct {
	DocID     string    `json:"doc_id"`
	Text      string    `json:"text"`
	Embedding []float64 `json:"embedding"`
	SourceURL string    `json:"sourceUrl,omitempty"`
	Pages     int64     `json:"pages"`
}

// Information is a derived text block linked from its Document by a
// HAS relationship. The whole set is deleted and recreated on every
// rebuild.
type Information struct {
	Text      string    `json:"text"`
	Embedding []float64 `json:"embedding"`
}

// DocumentSummary is the listing shape returned by ListDocuments.
type DocumentSummary struct {
	DocID string `json:"doc_id"`
	URL   string `json:"url"`
	Text  string `json:"text"`
	Pages int64  `json:"pages"`
}

// Store is the port to the property-graph database.
//
// GetDocument must signal a missing document with an error satisfying
// errors.Is(err, errors.ErrNotFound) from pkg/common/errors.
type Store interface {
	GetDocument(ctx context.Context, docID string) (Document, error)
	DocumentExists(ctx context.Context, docID string) (bool, error)
	CreateDocument(ctx context.Context, doc Document) error
	// SetDocumentText overwrites the text and embedding of an existing
	// Document node.
	SetDocumentText(ctx context.Context, docID, text string, embedding []float64) error
	// DeleteInformation removes every node reachable from the Document
	// via one or more HAS hops, together with the relationships, in a
	// single call.
	DeleteInformation(ctx context.Context, docID string) error
	// CreateInformation attaches one Information node directly to the
	// Document with a HAS relationship.
	CreateInformation(ctx context.Context, docID string, info Information) error
	ListDocuments(ctx context.Context) ([]DocumentSummary, error)
}
