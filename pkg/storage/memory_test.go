package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynguyendang/doc2kg/pkg/common/errors"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.EnsureBucket(ctx))
	require.NoError(t, store.Put(ctx, "doc.txt", strings.NewReader("hello"), 5, "text/plain"))

	rc, size, err := store.Get(ctx, "doc.txt")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.Equal(t, int64(5), size)
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore()

	_, _, err := store.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestArtifactKeys(t *testing.T) {
	assert.Equal(t, "abc.pdf", PDFKey("abc"))
	assert.Equal(t, "abc.txt", TextKey("abc"))
	assert.Equal(t, "abc.json", RangesKey("abc"))
	assert.Equal(t, "abc.2.png", PageKey("abc", "2"))
}
