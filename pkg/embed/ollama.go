package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/duynguyendang/doc2kg/pkg/config"
)

// OllamaService embeds text via the Ollama embed endpoint.
type OllamaService struct {
	url    string
	model  string
	client *http.Client
}

// NewOllamaService creates an Ollama-backed embedding service.
func NewOllamaService(cfg config.Config) *OllamaService {
	return &OllamaService{
		url:    cfg.OllamaEmbedURL,
		model:  cfg.OllamaEmbedModel,
		client: &http.Client{},
	}
}

type ollamaEmbedRequest struct {
	Model  string `json:"model"`
	Input  string `json:"input"`
	Stream bool   `json:"stream"`
}

type ollamaEmbedResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
}

func (s *OllamaService) Embed(ctx context.Context, text string) ([]float64, error) {
	body, err := json.Marshal(ollamaEmbedRequest{Model: s.model, Input: text})
	if err != nil {
		return nil, fmt.Errorf("marshal embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embed endpoint returned %s", resp.Status)
	}

	var out ollamaEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode embed response: %w", err)
	}
	if len(out.Embeddings) == 0 {
		// The upstream may legitimately return no vectors.
		return []float64{}, nil
	}
	return out.Embeddings[0], nil
}
