package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/josinaldojr/finwise-advisor/internal/advisor"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const groqMaxTokens = 2048

// GroqClient talks to Groq through its OpenAI-compatible endpoint.
type GroqClient struct {
	llm llms.Model
	log *zap.Logger
}

func NewGroqClient(baseURL, token, model string, log *zap.Logger) (*GroqClient, error) {
	if token == "" {
		return nil, fmt.Errorf("missing GROQ_API_KEY")
	}

	llm, err := openai.New(
		openai.WithToken(token),
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create groq client: %w", err)
	}
	return &GroqClient{llm: llm, log: log.Named("groq")}, nil
}

func (g *GroqClient) Complete(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	var messages []llms.MessageContent
	if systemPrompt != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, userPrompt))

	opts := []llms.CallOption{
		llms.WithTemperature(temperature),
		llms.WithMaxTokens(groqMaxTokens),
	}
	if model != "" {
		opts = append(opts, llms.WithModel(model))
	}

	g.log.Debug("chat completion", zap.String("model", model), zap.Int("promptLen", len(userPrompt)))
	resp, err := g.llm.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", fmt.Errorf("groq chat completion error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from groq")
	}

	txt := strings.TrimSpace(resp.Choices[0].Content)
	if txt == "" {
		return "", fmt.Errorf("groq returned empty text")
	}
	return txt, nil
}

var _ advisor.Completer = (*GroqClient)(nil)
