package rag

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryEntry struct {
	doc       Document
	embedding []float32
}

// MemoryRepository keeps documents in process and ranks them with a linear
// cosine scan. It is the default store when no database is configured.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries []memoryEntry
	index   map[string]int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{index: make(map[string]int)}
}

func (r *MemoryRepository) Insert(_ context.Context, doc Document, embedding []float32) error {
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry := memoryEntry{doc: doc, embedding: append([]float32(nil), embedding...)}
	if i, ok := r.index[doc.ID]; ok {
		r.entries[i] = entry
		return nil
	}
	r.index[doc.ID] = len(r.entries)
	r.entries = append(r.entries, entry)
	return nil
}

func (r *MemoryRepository) Count(context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries), nil
}

func (r *MemoryRepository) SearchSimilar(_ context.Context, embedding []float32, limit int) ([]ScoredDocument, error) {
	if limit <= 0 {
		limit = defaultTopK
	}

	r.mu.RLock()
	scored := make([]ScoredDocument, 0, len(r.entries))
	for _, e := range r.entries {
		if e.embedding == nil {
			continue
		}
		scored = append(scored, ScoredDocument{
			Document: e.doc,
			Score:    CosineSimilarity(embedding, e.embedding),
		})
	}
	r.mu.RUnlock()

	// Stable keeps insertion order between equal scores.
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

var _ Repository = (*MemoryRepository)(nil)
