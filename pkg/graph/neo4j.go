package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/duynguyendang/doc2kg/pkg/common/errors"
	"github.com/duynguyendang/doc2kg/pkg/config"
)

// Neo4jStore implements Store on a Neo4j server using parameterized
// Cypher. One driver instance carries the connection pool; sessions are
// request-scoped inside ExecuteQuery.
type Neo4jStore struct {
	driver neo4j.DriverWithContext
}

// NewNeo4jStore connects to the configured Neo4j instance and verifies
// reachability before returning.
func NewNeo4jStore(ctx context.Context, cfg config.Config) (*Neo4jStore, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURI, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("neo4j unreachable at %s: %w", cfg.Neo4jURI, err)
	}
	return &Neo4jStore{driver: driver}, nil
}

// Close releases the underlying connection pool.
func (s *Neo4jStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func (s *Neo4jStore) GetDocument(ctx context.Context, docID string) (Document, error) {
	result, err := neo4j.ExecuteQuery(ctx, s.driver,
		`MATCH (d:Document { doc_id: $docId }) RETURN d`,
		map[string]any{"docId": docID},
		neo4j.EagerResultTransformer)
	if err != nil {
		return Document{}, fmt.Errorf("match document: %w", err)
	}
	if len(result.Records) == 0 {
		return Document{}, fmt.Errorf("%w: document %s", errors.ErrNotFound, docID)
	}

	value, _ := result.Records[0].Get("d")
	node, ok := value.(neo4j.Node)
	if !ok {
		return Document{}, fmt.Errorf("unexpected result shape for document %s", docID)
	}
	return documentFromProps(node.Props), nil
}

func (s *Neo4jStore) DocumentExists(ctx context.Context, docID string) (bool, error) {
	result, err := neo4j.ExecuteQuery(ctx, s.driver,
		`MATCH (d:Document { doc_id: $docId }) RETURN d`,
		map[string]any{"docId": docID},
		neo4j.EagerResultTransformer)
	if err != nil {
		return false, fmt.Errorf("match document: %w", err)
	}
	return len(result.Records) > 0, nil
}

func (s *Neo4jStore) CreateDocument(ctx context.Context, doc Document) error {
	_, err := neo4j.ExecuteQuery(ctx, s.driver,
		`CREATE (d:Document {
			doc_id: $docId,
			text: $text,
			embedding: $embedding,
			sourceUrl: $sourceUrl,
			pages: $pages
		})`,
		map[string]any{
			"docId":     doc.DocID,
			"text":      doc.Text,
			"embedding": doc.Embedding,
			"sourceUrl": nullable(doc.SourceURL),
			"pages":     doc.Pages,
		},
		neo4j.EagerResultTransformer)
	if err != nil {
		return fmt.Errorf("create document node: %w", err)
	}
	return nil
}

func (s *Neo4jStore) SetDocumentText(ctx context.Context, docID, text string, embedding []float64) error {
	_, err := neo4j.ExecuteQuery(ctx, s.driver,
		`MATCH (d:Document { doc_id: $docId }) SET d.text = $text, d.embedding = $embedding`,
		map[string]any{"docId": docID, "text": text, "embedding": embedding},
		neo4j.EagerResultTransformer)
	if err != nil {
		return fmt.Errorf("update document node: %w", err)
	}
	return nil
}

func (s *Neo4jStore) DeleteInformation(ctx context.Context, docID string) error {
	_, err := neo4j.ExecuteQuery(ctx, s.driver,
		`MATCH (d:Document { doc_id: $docId })-[r:HAS*]->(n) DELETE r, n`,
		map[string]any{"docId": docID},
		neo4j.EagerResultTransformer)
	if err != nil {
		return fmt.Errorf("delete information nodes: %w", err)
	}
	return nil
}

func (s *Neo4jStore) CreateInformation(ctx context.Context, docID string, info Information) error {
	_, err := neo4j.ExecuteQuery(ctx, s.driver,
		`MATCH (d:Document { doc_id: $docId })
		 CREATE (d)-[:HAS]->(i:Information { text: $text, embedding: $embedding })`,
		map[string]any{"docId": docID, "text": info.Text, "embedding": info.Embedding},
		neo4j.EagerResultTransformer)
	if err != nil {
		return fmt.Errorf("create information node: %w", err)
	}
	return nil
}

func (s *Neo4jStore) ListDocuments(ctx context.Context) ([]DocumentSummary, error) {
	result, err := neo4j.ExecuteQuery(ctx, s.driver,
		`MATCH (d:Document) RETURN d.doc_id AS doc_id, d.sourceUrl AS url, d.text AS text, d.pages AS pages`,
		nil,
		neo4j.EagerResultTransformer)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	summaries := make([]DocumentSummary, 0, len(result.Records))
	for _, record := range result.Records {
		summaries = append(summaries, DocumentSummary{
			DocID: stringValue(record, "doc_id"),
			URL:   stringValue(record, "url"),
			Text:  stringValue(record, "text"),
			Pages: intValue(record, "pages"),
		})
	}
	return summaries, nil
}

func documentFromProps(props map[string]any) Document {
	doc := Document{}
	if v, ok := props["doc_id"].(string); ok {
		doc.DocID = v
	}
	if v, ok := props["text"].(string); ok {
		doc.Text = v
	}
	if v, ok := props["sourceUrl"].(string); ok {
		doc.SourceURL = v
	}
	if v, ok := props["pages"].(int64); ok {
		doc.Pages = v
	}
	if raw, ok := props["embedding"].([]any); ok {
		doc.Embedding = make([]float64, 0, len(raw))
		for _, f := range raw {
			if x, ok := f.(float64); ok {
				doc.Embedding = append(doc.Embedding, x)
			}
		}
	}
	return doc
}

func stringValue(record *neo4j.Record, key string) string {
	if v, ok := record.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func intValue(record *neo4j.Record, key string) int64 {
	if v, ok := record.Get(key); ok {
		if n, ok := v.(int64); ok {
			return n
		}
	}
	return 0
}

// nullable maps the empty string to a graph null so optional properties
// are stored as absent rather than "".
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
