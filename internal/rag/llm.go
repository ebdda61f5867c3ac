package rag

import "context"

type EmbeddingsClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type LLMClient interface {
	Complete(ctx context.Context, model, systemPrompt, userPrompt string) (string, error)
}
