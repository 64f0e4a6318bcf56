package embed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynguyendang/doc2kg/pkg/config"
)

func ollamaConfig(url string) config.Config {
	return config.Config{OllamaEmbedURL: url, OllamaEmbedModel: "nomic-embed-text"}
}

func TestOllamaEmbed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaEmbedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req.Model)
		assert.Equal(t, "some text", req.Input)
		assert.False(t, req.Stream)

		json.NewEncoder(w).Encode(ollamaEmbedResponse{Embeddings: [][]float64{{1, 2, 3}}})
	}))
	defer ts.Close()

	svc := NewOllamaService(ollamaConfig(ts.URL))
	vector, err := svc.Embed(context.Background(), "some text")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, vector)
}

func TestOllamaEmbedEmptyResult(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(ollamaEmbedResponse{})
	}))
	defer ts.Close()

	svc := NewOllamaService(ollamaConfig(ts.URL))
	vector, err := svc.Embed(context.Background(), "anything")

	// An empty vector is a valid result, not an error.
	require.NoError(t, err)
	assert.Empty(t, vector)
}

func TestOllamaEmbedServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	svc := NewOllamaService(ollamaConfig(ts.URL))
	_, err := svc.Embed(context.Background(), "anything")
	assert.Error(t, err)
}
