package rag

import (
	"strings"
	"unicode/utf8"
)

// SplitIntoChunks cuts text on paragraph boundaries into pieces of at most
// maxChars bytes. A single paragraph longer than maxChars is split hard.
func SplitIntoChunks(text string, maxChars int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if maxChars <= 0 || len(text) <= maxChars {
		return []string{text}
	}

	var (
		chunks  []string
		current strings.Builder
	)
	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			chunks = append(chunks, s)
		}
		current.Reset()
	}

	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if current.Len()+len(p)+2 > maxChars {
			flush()
		}
		for len(p) > maxChars {
			cut := runeBoundary(p, maxChars)
			chunks = append(chunks, strings.TrimSpace(p[:cut]))
			p = p[cut:]
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(p)
	}
	flush()

	return chunks
}

// SanitizeUTF8 drops invalid byte sequences and NUL bytes, neither of which
// Postgres accepts in text columns.
func SanitizeUTF8(s string) string {
	s = strings.ToValidUTF8(s, "")
	return strings.ReplaceAll(s, "\x00", "")
}

func runeBoundary(s string, n int) int {
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	if n == 0 {
		_, size := utf8.DecodeRuneInString(s)
		return size
	}
	return n
}
