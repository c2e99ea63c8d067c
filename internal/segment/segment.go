// Package segment partitions prose into slide-sized chunks without rewriting it.
//
// Text is split into paragraphs on newlines and into sentence-like tokens on the
// ". " delimiter. The delimiter is a heuristic: text without periods is never
// split and abbreviations such as "e.g. " are split as if they ended a sentence.
package segment

import (
	"strings"
	"unicode/utf8"

	"github.com/phrazzld/deckforge/internal/domain"
)

// DefaultMaxChars is the target slide length used when no positive limit is given.
const DefaultMaxChars = 300

// SentenceDelimiter separates sentence-like tokens.
const SentenceDelimiter = ". "

// Segment splits content into ordered slide units titled domain.SegmentTitle.
//
// maxChars is a soft limit measured in characters: a chunk never exceeds it
// unless it consists of a single token that is longer on its own. Chunks never
// span paragraphs. Empty or whitespace-only content yields an empty slice.
func Segment(content string, maxChars int) []domain.SlideUnit {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	units := make([]domain.SlideUnit, 0)
	for _, paragraph := range Paragraphs(content) {
		for _, chunk := range chunkParagraph(paragraph, maxChars) {
			units = append(units, domain.SlideUnit{Title: domain.SegmentTitle, Body: chunk})
		}
	}
	return units
}

// Paragraphs splits content on newlines and drops blank paragraphs.
func Paragraphs(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var paragraphs []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		paragraphs = append(paragraphs, line)
	}
	return paragraphs
}

// Sentences splits a paragraph on SentenceDelimiter. The period consumed by the
// delimiter is restored on every token, so "A. B. C." yields "A.", "B.", "C.".
func Sentences(paragraph string) []string {
	parts := strings.Split(paragraph, SentenceDelimiter)

	tokens := make([]string, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if i < len(parts)-1 {
			part += "."
		}
		if part == "" || part == "." {
			continue
		}
		tokens = append(tokens, part)
	}
	return tokens
}

func chunkParagraph(paragraph string, maxChars int) []string {
	var (
		chunks []string
		acc    strings.Builder
		accLen int
	)

	flush := func() {
		if accLen > 0 {
			chunks = append(chunks, acc.String())
		}
		acc.Reset()
		accLen = 0
	}

	for _, token := range Sentences(paragraph) {
		tokenLen := utf8.RuneCountInString(token)

		if accLen > 0 && accLen+1+tokenLen > maxChars {
			flush()
		}

		if accLen > 0 {
			acc.WriteByte(' ')
			accLen++
		}
		acc.WriteString(token)
		accLen += tokenLen
	}
	flush()

	return chunks
}
