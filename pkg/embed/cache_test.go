package embed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingService struct {
	calls int
	err   error
}

func (c *countingService) Embed(_ context.Context, text string) ([]float64, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return []float64{float64(len(text))}, nil
}

func TestCachedEmbedHitsCache(t *testing.T) {
	inner := &countingService{}
	cached, err := NewCached(inner, 8)
	require.NoError(t, err)

	ctx := context.Background()
	first, err := cached.Embed(ctx, "same text")
	require.NoError(t, err)
	second, err := cached.Embed(ctx, "same text")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)

	_, err = cached.Embed(ctx, "other text")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedEmbedDoesNotCacheErrors(t *testing.T) {
	inner := &countingService{err: errors.New("down")}
	cached, err := NewCached(inner, 8)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = cached.Embed(ctx, "text")
	assert.Error(t, err)

	inner.err = nil
	vector, err := cached.Embed(ctx, "text")
	require.NoError(t, err)
	assert.NotEmpty(t, vector)
	assert.Equal(t, 2, inner.calls)
}
