// Package storage provides the object-store port and its adapters. All
// document artifacts live in a single bucket under docId-derived keys.
package storage

import (
	"context"
	"io"
)

// ObjectStore is the port to an S3-compatible blob store.
//
// Get must signal a missing object with an error satisfying
// errors.Is(err, errors.ErrNotFound) from pkg/common/errors, distinctly
// from other failures.
type ObjectStore interface {
	// EnsureBucket creates the target bucket if it does not exist yet.
	EnsureBucket(ctx context.Context) error
	// Put writes an object. size may be -1 for streaming writes of
	// unknown length.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Get opens an object for reading and reports its size.
	Get(ctx context.Context, key string) (io.ReadCloser, int64, error)
}

// Artifact key scheme, all derived from the document id.

func PDFKey(docID string) string { return docID + ".pdf" }

func TextKey(docID string) string { return docID + ".txt" }

func RangesKey(docID string) string { return docID + ".json" }

// PageKey returns the key of a per-page PNG image. page is the 1-based
// page number as it appears in the request path.
func PageKey(docID, page string) string { return docID + "." + page + ".png" }
