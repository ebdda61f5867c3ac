package rag

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

type Repository interface {
	Insert(ctx context.Context, doc Document, embedding []float32) error
	Count(ctx context.Context) (int, error)
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]ScoredDocument, error)
}

type PgRepository struct {
	db *pgxpool.Pool
}

func NewPgRepository(db *pgxpool.Pool) *PgRepository {
	return &PgRepository{db: db}
}

func (r *PgRepository) Insert(ctx context.Context, doc Document, embedding []float32) error {
	meta, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO finance_document (id, title, content, source_url, metadata)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title,
		    content = EXCLUDED.content,
		    source_url = EXCLUDED.source_url,
		    metadata = EXCLUDED.metadata
	`,
		doc.ID,
		doc.Title,
		doc.Content,
		doc.SourceURL,
		meta,
	)
	if err != nil {
		return err
	}

	if embedding != nil {
		_, err = tx.Exec(ctx, `
			INSERT INTO finance_document_embedding (document_id, embedding)
			VALUES ($1, $2)
			ON CONFLICT (document_id) DO UPDATE SET embedding = EXCLUDED.embedding
		`, doc.ID, pgvector.NewVector(embedding))
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PgRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM finance_document`).Scan(&n)
	return n, err
}

// SearchSimilar ranks by pgvector cosine distance; the returned score is the
// cosine similarity (1 - distance).
func (r *PgRepository) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]ScoredDocument, error) {
	if limit <= 0 {
		limit = defaultTopK
	}

	rows, err := r.db.Query(ctx, `
		SELECT
			d.id, d.title, d.content, d.source_url, d.metadata, d.created_at,
			1 - (e.embedding <=> $1) AS score
		FROM finance_document d
		JOIN finance_document_embedding e ON d.id = e.document_id
		ORDER BY e.embedding <=> $1
		LIMIT $2
	`, pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []ScoredDocument
	for rows.Next() {
		var (
			d    ScoredDocument
			meta []byte
		)
		if err := rows.Scan(
			&d.ID,
			&d.Title,
			&d.Content,
			&d.SourceURL,
			&meta,
			&d.CreatedAt,
			&d.Score,
		); err != nil {
			return nil, err
		}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &d.Metadata); err != nil {
				return nil, fmt.Errorf("decode metadata for %s: %w", d.ID, err)
			}
		}
		docs = append(docs, d)
	}

	return docs, rows.Err()
}

var _ Repository = (*PgRepository)(nil)
