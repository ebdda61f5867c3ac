package rag

import "time"

// Metadata describes the investor profile a scenario document was written for.
type Metadata struct {
	Age      int    `json:"age,omitempty" yaml:"age"`
	Gender   string `json:"gender,omitempty" yaml:"gender"`
	Avenue   string `json:"avenue,omitempty" yaml:"avenue"`
	Purpose  string `json:"purpose,omitempty" yaml:"purpose"`
	Duration string `json:"duration,omitempty" yaml:"duration"`
}

// Document is one retrievable piece of advisory text.
type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	SourceURL string    `json:"sourceUrl,omitempty"`
	Metadata  Metadata  `json:"metadata"`
	CreatedAt time.Time `json:"createdAt"`
}

// ScoredDocument is a search hit with its cosine similarity to the query.
type ScoredDocument struct {
	Document
	Score float64 `json:"score"`
}
