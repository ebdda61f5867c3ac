package rag

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed corpus.yaml
var corpusYAML []byte

type scenario struct {
	Metadata `yaml:",inline"`
	Advice   string `yaml:"advice"`
}

// SeedDocuments returns the built-in investment scenarios as documents.
func SeedDocuments() ([]Document, error) {
	var scenarios []scenario
	if err := yaml.Unmarshal(corpusYAML, &scenarios); err != nil {
		return nil, fmt.Errorf("parse seed corpus: %w", err)
	}

	docs := make([]Document, 0, len(scenarios))
	for i, s := range scenarios {
		docs = append(docs, Document{
			ID:       fmt.Sprintf("doc_%d", i),
			Title:    fmt.Sprintf("%s via %s", s.Purpose, s.Avenue),
			Content:  scenarioContent(s),
			Metadata: s.Metadata,
		})
	}
	return docs, nil
}

func scenarioContent(s scenario) string {
	return fmt.Sprintf(
		"Investment Profile: %d-year-old %s seeking %s through %s over %s.\n\n"+
			"Recommendation: %s\n\n"+
			"Key factors: Age-appropriate risk tolerance, investment horizon of %s, specific goal of %s.",
		s.Age, s.Gender, s.Purpose, s.Avenue, s.Duration,
		s.Advice,
		s.Duration, s.Purpose,
	)
}
