// Package scan provides content heuristics shared by the normalisers:
// control-byte stripping, binary-artifact detection, and a readability
// check for extracted text.
package scan

import (
	"strings"
	"unicode"
)

// Heuristic tuning constants.
const (
	// MinReadableLength is the minimum text length, after whitespace
	// normalisation, for content to be considered readable.
	MinReadableLength = 50

	// readabilitySampleSize is how much of the text the readability
	// heuristic inspects.
	readabilitySampleSize = 5000

	// maxControlRatio is the control-character ratio above which a
	// sample is considered unreadable.
	maxControlRatio = 0.4

	// minFunctionWords is how many distinct common function words the
	// sample must contain to be considered prose.
	minFunctionWords = 5

	// binaryScanWindow is how much content the binary-artifact check
	// inspects.
	binaryScanWindow = 2000

	// maxBinaryControlChars is the control-character count within the
	// scan window above which content is flagged as a binary artifact.
	maxBinaryControlChars = 30
)

// functionWords are common short Portuguese function words. Prose in
// the documents this tool targets contains several of them; extraction
// garbage does not.
var functionWords = []string{
	"de", "a", "o", "que", "e", "do", "da", "em", "um", "para",
	"com", "nao", "não", "uma", "os", "no", "se", "na", "por", "as",
	"dos", "como", "mas", "ao", "das", "ou", "ser", "sua", "seu", "foi",
}

// pdfKeywords are structural markers of an undecoded PDF body.
var pdfKeywords = []string{"endobj", "xref", "startxref", "/Type/Page", "stream"}

// isControl reports whether r is a non-printable control character.
// Tabs, newlines, and carriage returns are ordinary whitespace.
func isControl(r rune) bool {
	if r == '\n' || r == '\r' || r == '\t' {
		return false
	}
	return unicode.IsControl(r) || r == unicode.ReplacementChar
}

// StripControl removes non-printable control characters, preserving
// ordinary whitespace.
func StripControl(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if !isControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormaliseWhitespace collapses whitespace runs into single spaces.
func NormaliseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// IsBinaryArtifact reports whether content looks like undecoded binary
// structure rather than extracted prose: a known magic header, PDF
// structural keywords, or too many control characters near the start.
func IsBinaryArtifact(content string) bool {
	if strings.HasPrefix(content, "%PDF") || strings.HasPrefix(content, "PK\x03\x04") {
		return true
	}

	window := content
	if len(window) > binaryScanWindow {
		window = window[:binaryScanWindow]
	}

	for _, kw := range pdfKeywords {
		if strings.Contains(window, kw) {
			return true
		}
	}

	controls := 0
	for _, r := range window {
		if isControl(r) {
			controls++
			if controls > maxBinaryControlChars {
				return true
			}
		}
	}
	return false
}

// IsReadable applies the readability heuristic to extracted text.
//
// The first ~5000 characters are sampled: the sample fails when its
// control-character ratio exceeds 0.4, or when it contains fewer than
// five distinct common function words. Text shorter than
// MinReadableLength after whitespace normalisation also fails.
func IsReadable(text string) bool {
	if len(NormaliseWhitespace(text)) < MinReadableLength {
		return false
	}

	sample := text
	if len(sample) > readabilitySampleSize {
		sample = sample[:readabilitySampleSize]
	}

	controls := 0
	total := 0
	for _, r := range sample {
		total++
		if isControl(r) {
			controls++
		}
	}
	if total > 0 && float64(controls)/float64(total) > maxControlRatio {
		return false
	}

	return countFunctionWords(sample) >= minFunctionWords
}

// countFunctionWords counts how many distinct function words appear in
// the sample.
func countFunctionWords(sample string) int {
	words := strings.Fields(strings.ToLower(sample))
	present := make(map[string]bool)
	for _, w := range words {
		w = strings.Trim(w, ".,;:!?()[]\"'")
		for _, fw := range functionWords {
			if w == fw {
				present[fw] = true
			}
		}
	}
	return len(present)
}
