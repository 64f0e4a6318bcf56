package embed

import (
	"context"
	"fmt"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/duynguyendang/doc2kg/pkg/config"
)

// GeminiService embeds text via the Google Gemini embedding models.
type GeminiService struct {
	client *genai.Client
	model  *genai.EmbeddingModel
}

// NewGeminiService creates a Gemini-backed embedding service.
func NewGeminiService(ctx context.Context, cfg config.Config) (*GeminiService, error) {
	apiKey := cfg.GeminiAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not found")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiService{
		client: client,
		model:  client.EmbeddingModel(cfg.GeminiEmbedModel),
	}, nil
}

func (s *GeminiService) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := s.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embed failed: %w", err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return []float64{}, nil
	}

	vector := make([]float64, len(resp.Embedding.Values))
	for i, v := range resp.Embedding.Values {
		vector[i] = float64(v)
	}
	return vector, nil
}

// Close releases the underlying API client.
func (s *GeminiService) Close() error {
	return s.client.Close()
}
