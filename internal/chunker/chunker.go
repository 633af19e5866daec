// Package chunker provides adaptive, boundary-aware text chunking.
package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/parecer-labs/parecer-cli/internal/core/domain"
)

// DefaultMaxChunkSize is the default maximum characters per chunk.
const DefaultMaxChunkSize = domain.DefaultChunkSizeUnknown

// Boundary preference thresholds, as a fraction of the maximum chunk
// size. A candidate cut is only accepted when it falls past the
// threshold, so chunks stay reasonably full.
const (
	paragraphThreshold = 0.8
	newlineThreshold   = 0.8
	sentenceThreshold  = 0.7
	clauseThreshold    = 0.8
)

// Splitter cuts text into bounded-size chunks, preferring semantic
// boundaries (paragraph, line, sentence, clause, word) over hard cuts.
type Splitter struct {
	maxChunkSize int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithMaxChunkSize sets the maximum chunk size in characters.
func WithMaxChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.maxChunkSize = size
		}
	}
}

// New creates a new splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		maxChunkSize: DefaultMaxChunkSize,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// MaxChunkSize returns the configured maximum chunk size.
func (s *Splitter) MaxChunkSize() int {
	return s.maxChunkSize
}

// Split cuts text into ordered chunks for the given document.
//
// Empty input yields a single chunk containing the empty string; the
// caller is expected to have rejected empty documents upstream. No
// other chunk is ever empty. Every chunk is at most MaxChunkSize long;
// the only exception is never longer, since a hard cut at exactly
// MaxChunkSize is the last resort.
func (s *Splitter) Split(documentID, text string) []domain.TextChunk {
	if len(text) <= s.maxChunkSize {
		return []domain.TextChunk{{
			Index:            0,
			Text:             strings.TrimSpace(text),
			SourceDocumentID: documentID,
		}}
	}

	var chunks []domain.TextChunk
	remaining := text

	for len(remaining) > s.maxChunkSize {
		cut := s.findCut(remaining)

		piece := strings.TrimSpace(remaining[:cut])
		if piece != "" {
			chunks = append(chunks, domain.TextChunk{
				Index:            len(chunks),
				Text:             piece,
				SourceDocumentID: documentID,
			})
		}
		remaining = remaining[cut:]
	}

	if piece := strings.TrimSpace(remaining); piece != "" {
		chunks = append(chunks, domain.TextChunk{
			Index:            len(chunks),
			Text:             piece,
			SourceDocumentID: documentID,
		})
	}

	return chunks
}

// findCut locates the best cut position within the first maxChunkSize
// bytes of text. The returned offset includes the matched delimiter, so
// the next chunk starts directly after it.
func (s *Splitter) findCut(text string) int {
	window := text[:s.maxChunkSize]

	type candidate struct {
		delim     string
		threshold float64
	}
	candidates := []candidate{
		{"\n\n", paragraphThreshold},
		{"\n", newlineThreshold},
		{". ", sentenceThreshold},
		{", ", clauseThreshold},
	}

	for _, c := range candidates {
		if i := strings.LastIndex(window, c.delim); i > int(float64(s.maxChunkSize)*c.threshold) {
			return i + len(c.delim)
		}
	}

	// Word boundary at any position.
	if i := strings.LastIndex(window, " "); i > 0 {
		return i + 1
	}

	// Hard cut, backed up to a rune boundary so no multi-byte
	// character is split.
	cut := s.maxChunkSize
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	if cut == 0 {
		cut = s.maxChunkSize
	}
	return cut
}
