package graph

import (
	"context"
	"fmt"
	"sync"

	"github.com/duynguyendang/doc2kg/pkg/common/errors"
)

// MemoryStore is an in-memory Store implementation for testing.
type MemoryStore struct {
	mu    sync.RWMutex
	docs  map[string]*memoryDocument
	order []string

	existsCalls int
	failCreate  error
	failInfo    error
}

type memoryDocument struct {
	doc   Document
	infos []Information
}

// NewMemoryStore creates a new in-memory graph store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*memoryDocument)}
}

func (m *MemoryStore) GetDocument(_ context.Context, docID string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.docs[docID]
	if !ok {
		return Document{}, fmt.Errorf("%w: document %s", errors.ErrNotFound, docID)
	}
	return entry.doc, nil
}

func (m *MemoryStore) DocumentExists(_ context.Context, docID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.existsCalls++
	_, ok := m.docs[docID]
	return ok, nil
}

func (m *MemoryStore) CreateDocument(_ context.Context, doc Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failCreate != nil {
		return m.failCreate
	}
	if _, ok := m.docs[doc.DocID]; !ok {
		m.order = append(m.order, doc.DocID)
	}
	m.docs[doc.DocID] = &memoryDocument{doc: doc}
	return nil
}

func (m *MemoryStore) SetDocumentText(_ context.Context, docID, text string, embedding []float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.docs[docID]
	if !ok {
		return fmt.Errorf("%w: document %s", errors.ErrNotFound, docID)
	}
	entry.doc.Text = text
	entry.doc.Embedding = embedding
	return nil
}

func (m *MemoryStore) DeleteInformation(_ context.Context, docID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.docs[docID]; ok {
		entry.infos = nil
	}
	return nil
}

func (m *MemoryStore) CreateInformation(_ context.Context, docID string, info Information) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failInfo != nil {
		return m.failInfo
	}
	entry, ok := m.docs[docID]
	if !ok {
		return fmt.Errorf("%w: document %s", errors.ErrNotFound, docID)
	}
	entry.infos = append(entry.infos, info)
	return nil
}

func (m *MemoryStore) ListDocuments(_ context.Context) ([]DocumentSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	summaries := make([]DocumentSummary, 0, len(m.order))
	for _, id := range m.order {
		doc := m.docs[id].doc
		summaries = append(summaries, DocumentSummary{
			DocID: doc.DocID,
			URL:   doc.SourceURL,
			Text:  doc.Text,
			Pages: doc.Pages,
		})
	}
	return summaries, nil
}

// Information returns the Information nodes currently attached to a
// document, in creation order.
func (m *MemoryStore) Information(docID string) []Information {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if entry, ok := m.docs[docID]; ok {
		return append([]Information(nil), entry.infos...)
	}
	return nil
}

// ExistsCalls reports how many times DocumentExists was invoked.
func (m *MemoryStore) ExistsCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.existsCalls
}

// Len reports the number of stored documents.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

// FailCreateDocument makes CreateDocument fail with err.
func (m *MemoryStore) FailCreateDocument(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failCreate = err
}

// FailCreateInformation makes CreateInformation fail with err.
func (m *MemoryStore) FailCreateInformation(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failInfo = err
}
