package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/josinaldojr/finwise-advisor/internal/advisor"
	"github.com/josinaldojr/finwise-advisor/internal/document"
	"github.com/josinaldojr/finwise-advisor/internal/rag"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const embedDim = 768

// Generation settings shared by every Gemini call.
const (
	temperature     = 0.7
	topK            = 40
	topP            = 0.95
	maxOutputTokens = 1024
)

var ErrMissingAPIKey = errors.New("missing GEMINI_API_KEY or GOOGLE_API_KEY")

type GeminiClient struct {
	client         *genai.Client
	embeddingModel string
	log            *zap.Logger
}

func NewGeminiClient(ctx context.Context, apiKey, embeddingModel string, log *zap.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiClient{client: c, embeddingModel: embeddingModel, log: log.Named("gemini")}, nil
}

func (g *GeminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	clean := normalizeWhitespace(text)
	if clean == "" {
		return nil, fmt.Errorf("empty text for embedding")
	}

	resp, err := g.client.Models.EmbedContent(
		ctx,
		g.embeddingModel,
		genai.Text(clean),
		&genai.EmbedContentConfig{
			OutputDimensionality: genai.Ptr(int32(embedDim)),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini embed error: %w", err)
	}

	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	values := resp.Embeddings[0].Values
	if len(values) != embedDim {
		return nil, fmt.Errorf("unexpected embedding size %d (expected %d)", len(values), embedDim)
	}

	out := make([]float32, embedDim)
	copy(out, values)
	return out, nil
}

// Complete sends one user turn with an optional system instruction.
func (g *GeminiClient) Complete(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	cfg := generationConfig()
	if s := strings.TrimSpace(systemPrompt); s != "" {
		cfg.SystemInstruction = genai.NewContentFromText(s, genai.RoleUser)
	}

	g.log.Debug("generate", zap.String("model", model), zap.Int("promptLen", len(userPrompt)))
	return g.generate(ctx, model, genai.Text(userPrompt), cfg)
}

// CompleteJSON asks for a JSON reply. When data is non-empty it is sent inline
// next to the prompt with the given MIME type.
func (g *GeminiClient) CompleteJSON(ctx context.Context, model, prompt string, data []byte, mimeType string) (string, error) {
	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	if len(data) > 0 {
		parts = append(parts, genai.NewPartFromBytes(data, mimeType))
	}

	cfg := generationConfig()
	cfg.ResponseMIMEType = "application/json"

	g.log.Debug("generate json", zap.String("model", model), zap.Int("inlineBytes", len(data)))
	return g.generate(ctx, model, []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, cfg)
}

func (g *GeminiClient) generate(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generateContent error: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("empty response from gemini")
	}

	txt := strings.TrimSpace(resp.Text())
	if txt == "" {
		return "", fmt.Errorf("model returned empty text")
	}

	return txt, nil
}

func generationConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](temperature),
		TopK:            genai.Ptr[float32](topK),
		TopP:            genai.Ptr[float32](topP),
		MaxOutputTokens: maxOutputTokens,
	}
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var (
	_ rag.EmbeddingsClient = (*GeminiClient)(nil)
	_ rag.LLMClient        = (*GeminiClient)(nil)
	_ advisor.Completer    = (*GeminiClient)(nil)
	_ document.Model       = (*GeminiClient)(nil)
)
