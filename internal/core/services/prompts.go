package services

import (
	"regexp"
	"strings"

	"github.com/parecer-labs/parecer-cli/internal/core/domain"
)

// analysisPrompt asks the model for the structured sections the parser
// understands, in Portuguese. The optional TRECHOS RELEVANTES section
// carries literal excerpts with an importance marker.
const analysisPrompt = `Você é um assistente jurídico. Analise o trecho de documento abaixo e responda em português, usando exatamente esta estrutura:

RESUMO:
[resumo objetivo do trecho em até três parágrafos]

PONTOS-CHAVE:
- [título do ponto]: [descrição breve]
- [título do ponto]: [descrição breve]

TRECHOS RELEVANTES:
- [alta] [citação literal curta do documento]
- [média] [citação literal curta do documento]

CONCLUSÃO:
[avaliação final do trecho]

Documento:
%s`

// consolidationPrompt merges partial summaries into one coherent text.
const consolidationPrompt = `Você é um assistente jurídico. Os textos abaixo são resumos parciais de um mesmo documento, já analisado em partes. Consolide-os em um único resumo coerente, em português, sem repetir informações e sem mencionar a divisão em partes.

%s`

var (
	highlightsHeading = regexp.MustCompile(`(?im)^\s*(?:\*\*)?trechos\s+relevantes\s*:?(?:\*\*)?\s*$`)
	highlightItem     = regexp.MustCompile(`^\s*[-*•]\s*(?:\[(alta|m[eé]dia|baixa)\]\s*)?(.+)$`)
)

// parseHighlights extracts the TRECHOS RELEVANTES section from a raw
// model response. The section is optional; a response without it yields
// no highlights.
func parseHighlights(raw string) []domain.Highlight {
	loc := highlightsHeading.FindStringIndex(raw)
	if loc == nil {
		return nil
	}

	section := raw[loc[1]:]
	if next := anyHeading(section); next >= 0 {
		section = section[:next]
	}

	var highlights []domain.Highlight
	for _, line := range strings.Split(section, "\n") {
		m := highlightItem.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		text := strings.TrimSpace(m[2])
		if text == "" {
			continue
		}
		highlights = append(highlights, domain.Highlight{
			Text:       text,
			Importance: importanceFromMarker(m[1]),
		})
	}
	return highlights
}

// anyHeading returns the offset of the first recognised section heading
// in text, or -1.
func anyHeading(text string) int {
	first := -1
	for _, re := range []*regexp.Regexp{summaryHeading, keyPointsHeading, conclusionHeading} {
		if loc := re.FindStringIndex(text); loc != nil && (first < 0 || loc[0] < first) {
			first = loc[0]
		}
	}
	return first
}

func importanceFromMarker(marker string) domain.Importance {
	switch strings.ToLower(marker) {
	case "alta":
		return domain.ImportanceHigh
	case "baixa":
		return domain.ImportanceLow
	default:
		return domain.ImportanceMedium
	}
}
