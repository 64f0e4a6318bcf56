// Package embed maps text to fixed-width numeric vectors through an
// external embedding service.
package embed

import "context"

// Service is the port to an embedding provider. An empty vector is a
// valid result; callers must not treat it as an error.
type Service interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}
