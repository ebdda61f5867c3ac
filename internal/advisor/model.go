package advisor

import (
	"errors"
	"fmt"
	"strings"
)

type ModelTag string

const (
	ModelGeminiPro   ModelTag = "gemini-pro"
	ModelGeminiFlash ModelTag = "gemini-flash"
	ModelLlama       ModelTag = "llama-3-70b"
	ModelRAG         ModelTag = "rag-mode"
	ModelGeneral     ModelTag = "general-mode"
	ModelAuto        ModelTag = "auto"
)

var ErrUnknownModel = errors.New("unknown model")

var modelTags = []ModelTag{ModelGeminiPro, ModelGeminiFlash, ModelLlama, ModelRAG, ModelGeneral, ModelAuto}

// ParseModelTag validates a client supplied tag. The empty string means auto.
func ParseModelTag(s string) (ModelTag, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return ModelAuto, nil
	}
	for _, t := range modelTags {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownModel, s)
}

// ModelTags lists every accepted tag.
func ModelTags() []ModelTag {
	return append([]ModelTag(nil), modelTags...)
}
