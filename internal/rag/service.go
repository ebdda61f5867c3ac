package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultTopK   = 3
	chunkMaxChars = 2000
	emptyAnswer   = "I apologize, but I cannot provide a response at the moment. Please try again."
)

const answerPrompt = `
You are a financial advisor AI assistant. Use the following context from similar investment scenarios to provide personalized financial advice.

CONTEXT FROM SIMILAR CASES:
%s

PREVIOUS CONVERSATION:
%s

USER QUERY: %s

INSTRUCTIONS:
1. Analyze the user's query and match it with similar scenarios from the context
2. Provide specific, actionable financial advice
3. Mention specific investment instruments (mutual funds, stocks, bonds, etc.)
4. Consider the user's age, goals, and risk tolerance if mentioned
5. Keep the response practical and personalized
6. If the context doesn't fully match, use your general financial knowledge
7. Always include risk disclaimers when appropriate

Please provide a detailed financial recommendation:`

type Service struct {
	repo       Repository
	embeddings EmbeddingsClient
	llm        LLMClient
	model      string
	topK       int
	log        *zap.Logger
}

type Option func(*Service)

// WithModel sets the generation model used by Answer.
func WithModel(model string) Option {
	return func(s *Service) { s.model = model }
}

func WithTopK(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.topK = k
		}
	}
}

func NewService(repo Repository, embeddings EmbeddingsClient, llm LLMClient, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		embeddings: embeddings,
		llm:        llm,
		model:      "gemini-2.5-flash",
		topK:       defaultTopK,
		log:        log.Named("rag"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize seeds the store with the built-in scenarios and returns how many
// documents were indexed. A store that already holds documents is left as is.
func (s *Service) Initialize(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	if n > 0 {
		s.log.Info("retrieval store already seeded", zap.Int("documents", n))
		return 0, nil
	}

	docs, err := SeedDocuments()
	if err != nil {
		return 0, err
	}

	indexed := 0
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return indexed, err
		}

		vec, err := s.embeddings.Embed(ctx, doc.Content)
		if err != nil {
			s.log.Warn("embedding failed, skipping document", zap.String("id", doc.ID), zap.Error(err))
			continue
		}
		if err := s.repo.Insert(ctx, doc, vec); err != nil {
			return indexed, fmt.Errorf("insert %s: %w", doc.ID, err)
		}
		indexed++
	}

	s.log.Info("retrieval store initialized", zap.Int("documents", indexed), zap.Int("seed", len(docs)))
	return indexed, nil
}

// Retrieve returns the k documents most similar to the query. An embedding
// failure yields no documents rather than an error.
func (s *Service) Retrieve(ctx context.Context, query string, k int) ([]ScoredDocument, error) {
	if k <= 0 {
		k = s.topK
	}

	vec, err := s.embeddings.Embed(ctx, query)
	if err != nil {
		s.log.Warn("query embedding failed", zap.Error(err))
		return nil, nil
	}

	docs, err := s.repo.SearchSimilar(ctx, vec, k)
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}
	return docs, nil
}

// Answer generates advice grounded on the retrieved scenarios. previous is
// the conversation context and may be empty.
func (s *Service) Answer(ctx context.Context, query, previous string) (string, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return "", errors.New("query is required")
	}

	docs, err := s.Retrieve(ctx, q, s.topK)
	if err != nil {
		return "", err
	}

	contents := make([]string, 0, len(docs))
	for _, d := range docs {
		contents = append(contents, d.Content)
	}

	prompt := fmt.Sprintf(answerPrompt, strings.Join(contents, "\n\n---\n\n"), previous, q)

	answer, err := s.llm.Complete(ctx, s.model, "", prompt)
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	if strings.TrimSpace(answer) == "" {
		return emptyAnswer, nil
	}
	return answer, nil
}

// Ingest splits an imported document into chunks, embeds and stores each one.
// It returns the number of chunks stored.
func (s *Service) Ingest(ctx context.Context, doc Document) (int, error) {
	content := SanitizeUTF8(doc.Content)
	chunks := SplitIntoChunks(content, chunkMaxChars)
	if len(chunks) == 0 {
		return 0, errors.New("document has no content")
	}

	base := doc.ID
	if base == "" {
		base = uuid.NewString()
	}

	stored := 0
	for i, text := range chunks {
		vec, err := s.embeddings.Embed(ctx, text)
		if err != nil {
			return stored, fmt.Errorf("embed chunk %d: %w", i, err)
		}

		chunk := doc
		chunk.ID = fmt.Sprintf("%s#%d", base, i)
		chunk.Content = text
		chunk.Title = SanitizeUTF8(doc.Title)
		if len(chunks) > 1 {
			chunk.Title = fmt.Sprintf("%s (part %d)", chunk.Title, i+1)
		}

		if err := s.repo.Insert(ctx, chunk, vec); err != nil {
			return stored, fmt.Errorf("insert chunk %d: %w", i, err)
		}
		stored++
	}

	s.log.Debug("document ingested", zap.String("id", base), zap.Int("chunks", stored))
	return stored, nil
}
