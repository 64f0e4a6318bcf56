package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/duynguyendang/doc2kg/pkg/common/errors"
	"github.com/duynguyendang/doc2kg/pkg/graph"
	"github.com/duynguyendang/doc2kg/pkg/storage"
)

// RebuildGraph re-derives the graph subgraph of an already-ingested
// document from its current stored plain text.
//
// The text is segmented into paragraph blocks. With zero blocks the
// operation is a no-op; any existing subgraph stays untouched.
// Otherwise the existing Information closure is deleted, the Document
// node takes the first block as its text and embedding, and every
// remaining block becomes one Information child, in order. Embedding
// calls run sequentially; the first failure aborts the rebuild and
// leaves the graph partially rewritten.
func (p *Pipeline) RebuildGraph(ctx context.Context, docID string) error {
	exists, err := p.graph.DocumentExists(ctx, docID)
	if err != nil {
		return fmt.Errorf("%w: look up document: %v", errors.ErrStorage, err)
	}
	if !exists {
		return fmt.Errorf("%w: document %s", errors.ErrNotFound, docID)
	}

	text, err := p.readPlainText(ctx, docID)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return fmt.Errorf("%w: plain text for document %s", errors.ErrNotFound, docID)
		}
		return fmt.Errorf("%w: read plain text: %v", errors.ErrStorage, err)
	}

	blocks := SplitBlocks(text)
	if len(blocks) == 0 {
		return nil
	}

	if err := p.graph.DeleteInformation(ctx, docID); err != nil {
		return fmt.Errorf("%w: clear information nodes: %v", errors.ErrStorage, err)
	}

	first, err := p.embedder.Embed(ctx, blocks[0])
	if err != nil {
		return fmt.Errorf("%w: embed block: %v", errors.ErrUpstream, err)
	}
	if err := p.graph.SetDocumentText(ctx, docID, blocks[0], first); err != nil {
		return fmt.Errorf("%w: update document node: %v", errors.ErrStorage, err)
	}

	for _, block := range blocks[1:] {
		vector, err := p.embedder.Embed(ctx, block)
		if err != nil {
			return fmt.Errorf("%w: embed block: %v", errors.ErrUpstream, err)
		}
		info := graph.Information{Text: block, Embedding: vector}
		if err := p.graph.CreateInformation(ctx, docID, info); err != nil {
			return fmt.Errorf("%w: create information node: %v", errors.ErrStorage, err)
		}
	}

	return nil
}

func (p *Pipeline) readPlainText(ctx context.Context, docID string) (string, error) {
	rc, _, err := p.objects.Get(ctx, storage.TextKey(docID))
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
