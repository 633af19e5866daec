package cli

import (
	"context"
	"time"

	"github.com/parecer-labs/parecer-cli/internal/adapters/driven/storage/memory"
	"github.com/parecer-labs/parecer-cli/internal/core/domain"
	"github.com/parecer-labs/parecer-cli/internal/core/services"
)

// setupTestServices installs in-memory services seeded with one
// analysed document. The returned cleanup restores the nil defaults.
func setupTestServices() func() {
	store := memory.NewDocumentStore()
	_ = store.Save(context.Background(), &domain.AnalyzedDocument{
		ID:           "doc-1",
		Name:         "peticao-inicial.pdf",
		SourceFormat: domain.FormatPaginatedBinary,
		ByteSize:     2048,
		UploadedAt:   time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Processed:    true,
		Summary:      "O documento trata de uma ação de cobrança.",
		KeyPoints: []domain.KeyPoint{
			{Title: "Competência", Description: "Foro da comarca de São Paulo."},
		},
		Highlights: []domain.Highlight{
			{Text: "Cláusula quinta do contrato.", Importance: domain.ImportanceHigh},
		},
		Content:    "Texto integral do documento de teste.",
		Conclusion: "Recomenda-se a contestação no prazo legal.",
		AnalyzedAt: time.Date(2025, 6, 1, 10, 1, 0, 0, time.UTC),
	})

	docStore = store
	documentService = services.NewDocumentService(store)
	settingsService = services.NewSettingsService(memory.NewConfigStore())

	return func() {
		docStore = nil
		documentService = nil
		settingsService = nil
	}
}
