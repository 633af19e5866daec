package services

import (
	"regexp"
	"strings"

	"github.com/parecer-labs/parecer-cli/internal/core/domain"
)

// Sentinel values substituted when extraction yields nothing, so
// consumers never observe empty required fields.
const (
	// SentinelSummary replaces a missing summary.
	SentinelSummary = "Não foi possível gerar um resumo detalhado deste documento."

	// SentinelKeyPointTitle titles the placeholder key point.
	SentinelKeyPointTitle = "Análise insuficiente"

	// SentinelKeyPointDescription describes the placeholder key point.
	SentinelKeyPointDescription = "Não foi possível extrair pontos-chave do documento."

	// SentinelDescription replaces a missing key point description.
	SentinelDescription = "Sem descrição adicional."

	// SentinelConclusion replaces a missing conclusion.
	SentinelConclusion = "Sem conclusão adicional."
)

// Section headings produced by the analysis prompts. Both the exact
// bolded form (**RESUMO:**) and looser variants are tolerated.
// The bolded form (**RESUMO:**) may carry the body on the same line;
// the loose form must stand alone on its line so ordinary prose that
// merely starts with a heading word is not mistaken for a section.
var (
	summaryHeading    = regexp.MustCompile(`(?im)^[ \t]*(?:\*\*[ \t]*RESUMO[ \t]*:?[ \t]*\*\*:?[ \t]*|RESUMO[ \t]*:?[ \t]*$)`)
	keyPointsHeading  = regexp.MustCompile(`(?im)^[ \t]*(?:\*\*[ \t]*PONTOS[- ]CHAVE[ \t]*:?[ \t]*\*\*:?[ \t]*|PONTOS[- ]CHAVE[ \t]*:?[ \t]*$)`)
	conclusionHeading = regexp.MustCompile(`(?im)^[ \t]*(?:\*\*[ \t]*(?:CONCLUS[ÃA]O(?:[ \t]*/[ \t]*PARECER)?|PARECER)[ \t]*:?[ \t]*\*\*:?[ \t]*|(?:CONCLUS[ÃA]O(?:[ \t]*/[ \t]*PARECER)?|PARECER)[ \t]*:?[ \t]*$)`)

	bulletItem   = regexp.MustCompile(`(?m)^[ \t]*[-•*][ \t]+`)
	numberedItem = regexp.MustCompile(`(?m)^[ \t]*\d+[.)][ \t]+`)
	listMarker   = regexp.MustCompile(`(?m)^[ \t]*(?:[-•*]|\d+[.)])[ \t]+`)
)

// ParseAnalysisResult extracts the labeled RESUMO / PONTOS-CHAVE /
// CONCLUSÃO-PARECER sections from free-form model output. When no
// labeled section is found it falls back to a paragraph split. Every
// output field is guaranteed non-empty; sentinels substitute for
// anything that could not be extracted.
func ParseAnalysisResult(raw string) domain.ParsedAnalysis {
	raw = strings.TrimSpace(raw)

	parsed := domain.ParsedAnalysis{}
	if raw != "" {
		headings := locateHeadings(raw)
		if len(headings) > 0 {
			parsed = parseLabeledSections(raw, headings)
		} else {
			parsed = parseUnlabeled(raw)
		}
	}

	return applySentinels(parsed)
}

// headingMatch is one located section heading.
type headingMatch struct {
	section    string // "summary", "keypoints", "highlights", "conclusion"
	start, end int
}

// locateHeadings finds all section headings, ordered by position.
func locateHeadings(raw string) []headingMatch {
	var matches []headingMatch

	add := func(section string, loc []int) {
		if loc != nil {
			matches = append(matches, headingMatch{section: section, start: loc[0], end: loc[1]})
		}
	}
	add("summary", summaryHeading.FindStringIndex(raw))
	add("keypoints", keyPointsHeading.FindStringIndex(raw))
	add("highlights", highlightsHeading.FindStringIndex(raw))
	add("conclusion", conclusionHeading.FindStringIndex(raw))

	// Insertion order above is not positional order; sort by start.
	for i := 0; i < len(matches); i++ {
		for j := i + 1; j < len(matches); j++ {
			if matches[j].start < matches[i].start {
				matches[i], matches[j] = matches[j], matches[i]
			}
		}
	}
	return matches
}

// parseLabeledSections slices the text between located headings.
func parseLabeledSections(raw string, headings []headingMatch) domain.ParsedAnalysis {
	var parsed domain.ParsedAnalysis

	for i, h := range headings {
		end := len(raw)
		if i+1 < len(headings) {
			end = headings[i+1].start
		}
		body := strings.TrimSpace(raw[h.end:end])

		switch h.section {
		case "summary":
			parsed.Summary = body
		case "keypoints":
			parsed.KeyPoints = parseKeyPoints(body)
		case "conclusion":
			parsed.Conclusion = body
		case "highlights":
			// Parsed separately by parseHighlights; only a boundary here.
		}
	}
	return parsed
}

// parseUnlabeled handles output with no recognisable headings: first
// paragraph becomes the summary, marker-bearing (or middle) paragraphs
// feed the key points, and the last paragraph becomes the conclusion.
func parseUnlabeled(raw string) domain.ParsedAnalysis {
	paragraphs := splitParagraphs(raw)
	if len(paragraphs) == 0 {
		return domain.ParsedAnalysis{}
	}

	parsed := domain.ParsedAnalysis{Summary: paragraphs[0]}

	var keyPointSource []string
	for _, p := range paragraphs {
		if listMarker.MatchString(p) {
			keyPointSource = append(keyPointSource, p)
		}
	}
	if len(keyPointSource) == 0 && len(paragraphs) > 2 {
		keyPointSource = paragraphs[1 : len(paragraphs)-1]
	}
	for _, p := range keyPointSource {
		parsed.KeyPoints = append(parsed.KeyPoints, parseKeyPoints(p)...)
	}

	if len(paragraphs) > 1 {
		parsed.Conclusion = paragraphs[len(paragraphs)-1]
	}
	return parsed
}

// parseKeyPoints splits a key-points section body into items: bullet
// markers first, then numbered-list markers, then blank-line-separated
// paragraphs. The first strategy yielding more than one item wins.
func parseKeyPoints(body string) []domain.KeyPoint {
	if strings.TrimSpace(body) == "" {
		return nil
	}

	items := splitListItems(body, bulletItem)
	if len(items) <= 1 {
		if numbered := splitListItems(body, numberedItem); len(numbered) > 1 {
			items = numbered
		}
	}
	if len(items) <= 1 {
		if paragraphs := splitParagraphs(body); len(paragraphs) > 1 {
			items = paragraphs
		}
	}
	if len(items) == 0 {
		items = []string{strings.TrimSpace(body)}
	}

	points := make([]domain.KeyPoint, 0, len(items))
	for _, item := range items {
		if item == "" {
			continue
		}
		points = append(points, parseKeyPointItem(item))
	}
	return points
}

// splitListItems splits body on a list-marker pattern, dropping any
// preamble before the first marker.
func splitListItems(body string, marker *regexp.Regexp) []string {
	locs := marker.FindAllStringIndex(body, -1)
	if len(locs) == 0 {
		return nil
	}

	var items []string
	for i, loc := range locs {
		end := len(body)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		if item := strings.TrimSpace(body[loc[1]:end]); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// splitParagraphs splits text on blank lines.
func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// parseKeyPointItem decomposes one item into title and description:
// a "Title: description" colon split is preferred, then the first
// sentence as title, then the whole text as title with a sentinel body.
func parseKeyPointItem(item string) domain.KeyPoint {
	item = strings.TrimSpace(item)

	if colon := strings.Index(item, ":"); colon > 0 && colon < len(item)-1 {
		title := strings.TrimSpace(item[:colon])
		desc := strings.TrimSpace(item[colon+1:])
		if title != "" && desc != "" {
			return domain.KeyPoint{Title: title, Description: desc}
		}
	}

	if dot := strings.Index(item, ". "); dot > 0 {
		return domain.KeyPoint{
			Title:       strings.TrimSpace(item[:dot+1]),
			Description: strings.TrimSpace(item[dot+2:]),
		}
	}

	return domain.KeyPoint{Title: item, Description: SentinelDescription}
}

// applySentinels guarantees every field of the result is populated.
func applySentinels(parsed domain.ParsedAnalysis) domain.ParsedAnalysis {
	if parsed.Summary == "" {
		parsed.Summary = SentinelSummary
	}
	if len(parsed.KeyPoints) == 0 {
		parsed.KeyPoints = []domain.KeyPoint{{
			Title:       SentinelKeyPointTitle,
			Description: SentinelKeyPointDescription,
		}}
	}
	if parsed.Conclusion == "" {
		parsed.Conclusion = SentinelConclusion
	}
	return parsed
}
