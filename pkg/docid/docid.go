// Package docid derives the content-addressed identifier of a document.
//
// The id is the sole key linking a Document's graph node and all of its
// storage artifacts, so it must only ever be derived from the document
// bytes, never generated randomly.
package docid

import (
	"crypto/sha256"
	"encoding/base64"
)

// FromBytes returns the document id for the given raw PDF bytes: the
// SHA-256 digest, base64-encoded, with all non-alphanumeric characters
// stripped so the result is safe as a storage key and as a graph
// property value. Identical bytes always yield the identical id.
func FromBytes(b []byte) string {
	sum := sha256.Sum256(b)
	enc := base64.StdEncoding.EncodeToString(sum[:])
	id := make([]byte, 0, len(enc))
	for i := 0; i < len(enc); i++ {
		c := enc[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			id = append(id, c)
		}
	}
	return string(id)
}
