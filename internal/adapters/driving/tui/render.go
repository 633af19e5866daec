package tui

import (
	"fmt"
	"strings"

	"github.com/parecer-labs/parecer-cli/internal/core/domain"
)

// RenderDocument formats an analysed document for terminal output.
func RenderDocument(doc *domain.AnalyzedDocument) string {
	if doc == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(doc.Name))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(metaLine(doc)))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Resumo"))
	b.WriteString("\n")
	b.WriteString(doc.Summary)
	b.WriteString("\n")

	if len(doc.KeyPoints) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Pontos-chave"))
		b.WriteString("\n")
		for i, kp := range doc.KeyPoints {
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, titleStyle.Render(kp.Title)))
			if kp.Description != "" {
				b.WriteString(fmt.Sprintf("     %s\n", kp.Description))
			}
		}
	}

	if len(doc.Highlights) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Trechos relevantes"))
		b.WriteString("\n")
		for _, h := range doc.Highlights {
			b.WriteString(fmt.Sprintf("  %s %s", renderImportance(h.Importance), h.Text))
			if h.Page > 0 {
				b.WriteString(mutedStyle.Render(fmt.Sprintf(" (p. %d)", h.Page)))
			}
			b.WriteString("\n")
		}
	}

	if doc.Conclusion != "" {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Conclusão"))
		b.WriteString("\n")
		b.WriteString(doc.Conclusion)
		b.WriteString("\n")
	}

	return b.String()
}

func metaLine(doc *domain.AnalyzedDocument) string {
	line := fmt.Sprintf("%s · %s", doc.SourceFormat, formatByteSize(doc.ByteSize))
	if !doc.AnalyzedAt.IsZero() {
		line += " · analisado em " + doc.AnalyzedAt.Format("02/01/2006 15:04")
	}
	return line
}

func renderImportance(imp domain.Importance) string {
	switch imp {
	case domain.ImportanceHigh:
		return importanceHighStyle.Render("[alta]")
	case domain.ImportanceLow:
		return importanceLowStyle.Render("[baixa]")
	default:
		return importanceMediumStyle.Render("[média]")
	}
}

func formatByteSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
