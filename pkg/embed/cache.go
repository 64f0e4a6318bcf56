package embed

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cached decorates a Service with an LRU cache keyed by the input text.
// Embeddings are deterministic per input, so rebuilds of a document
// whose paragraphs mostly did not change skip the upstream calls.
type Cached struct {
	inner Service
	cache *lru.Cache[string, []float64]
}

// NewCached wraps inner with a cache of the given size.
func NewCached(inner Service, size int) (*Cached, error) {
	cache, err := lru.New[string, []float64](size)
	if err != nil {
		return nil, err
	}
	return &Cached{inner: inner, cache: cache}, nil
}

func (c *Cached) Embed(ctx context.Context, text string) ([]float64, error) {
	if vector, ok := c.cache.Get(text); ok {
		return vector, nil
	}
	vector, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Add(text, vector)
	return vector, nil
}
