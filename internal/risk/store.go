package risk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("risk assessment not found")

// Record is one saved assessment. The latest record per user wins.
type Record struct {
	UserID    string    `json:"userId"`
	RiskLevel Level     `json:"riskLevel"`
	Score     int       `json:"score"`
	FormData  Form      `json:"formData"`
	Timestamp time.Time `json:"timestamp"`
}

type Store interface {
	Save(ctx context.Context, rec Record) error
	Latest(ctx context.Context, userID string) (Record, error)
}

type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.UserID] = rec
	return nil
}

func (s *MemoryStore) Latest(_ context.Context, userID string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[userID]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

type PgStore struct {
	db *pgxpool.Pool
}

func NewPgStore(db *pgxpool.Pool) *PgStore {
	return &PgStore{db: db}
}

func (s *PgStore) Save(ctx context.Context, rec Record) error {
	form, err := json.Marshal(rec.FormData)
	if err != nil {
		return fmt.Errorf("encode form data: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO risk_assessment (user_id, risk_level, score, form_data, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, rec.UserID, string(rec.RiskLevel), rec.Score, form, rec.Timestamp)
	return err
}

func (s *PgStore) Latest(ctx context.Context, userID string) (Record, error) {
	var (
		rec   Record
		level string
		form  []byte
	)
	err := s.db.QueryRow(ctx, `
		SELECT user_id, risk_level, score, form_data, created_at
		FROM risk_assessment
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, userID).Scan(&rec.UserID, &level, &rec.Score, &form, &rec.Timestamp)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}

	rec.RiskLevel = Level(level)
	if err := json.Unmarshal(form, &rec.FormData); err != nil {
		return Record{}, fmt.Errorf("decode form data: %w", err)
	}
	return rec, nil
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*PgStore)(nil)
)
