package chunker

import (
	"strings"
	"testing"
)

// normaliseWhitespace collapses all whitespace runs so texts can be
// compared ignoring whitespace introduced or dropped at cut boundaries.
func normaliseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		s := New()
		if s.maxChunkSize != DefaultMaxChunkSize {
			t.Errorf("expected maxChunkSize %d, got %d", DefaultMaxChunkSize, s.maxChunkSize)
		}
	})

	t.Run("custom size", func(t *testing.T) {
		s := New(WithMaxChunkSize(500))
		if s.maxChunkSize != 500 {
			t.Errorf("expected maxChunkSize 500, got %d", s.maxChunkSize)
		}
	})

	t.Run("non-positive size ignored", func(t *testing.T) {
		s := New(WithMaxChunkSize(0))
		if s.maxChunkSize != DefaultMaxChunkSize {
			t.Errorf("expected default maxChunkSize, got %d", s.maxChunkSize)
		}
	})
}

func TestSplitter_Split_EmptyInput(t *testing.T) {
	s := New(WithMaxChunkSize(100))

	chunks := s.Split("doc-1", "")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for empty input, got %d", len(chunks))
	}
	if chunks[0].Text != "" {
		t.Errorf("expected empty chunk text, got %q", chunks[0].Text)
	}
	if chunks[0].Index != 0 {
		t.Errorf("expected index 0, got %d", chunks[0].Index)
	}
}

func TestSplitter_Split_SmallInput(t *testing.T) {
	s := New(WithMaxChunkSize(3500))

	// 500 characters fit in a single chunk.
	text := strings.Repeat("a ", 250)
	chunks := s.Split("doc-1", text)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != strings.TrimSpace(text) {
		t.Error("expected chunk to equal trimmed input")
	}
	if chunks[0].SourceDocumentID != "doc-1" {
		t.Errorf("expected SourceDocumentID 'doc-1', got %q", chunks[0].SourceDocumentID)
	}
}

func TestSplitter_Split_SizeInvariant(t *testing.T) {
	s := New(WithMaxChunkSize(6000))

	// 12000 characters of repeated "word " tokens.
	text := strings.Repeat("word ", 2400)
	chunks := s.Split("doc-1", text)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk.Text) > 6000 {
			t.Errorf("chunk %d exceeds max size: %d", i, len(chunk.Text))
		}
		if chunk.Index != i {
			t.Errorf("expected index %d, got %d", i, chunk.Index)
		}
	}
}

func TestSplitter_Split_Reassembly(t *testing.T) {
	texts := map[string]string{
		"words":      strings.Repeat("lorem ipsum dolor sit amet ", 500),
		"paragraphs": strings.Repeat("Primeira clausula do contrato.\n\nSegunda clausula do contrato.\n\n", 200),
		"sentences":  strings.Repeat("A parte autora alega dano moral. A parte re contesta o pedido. ", 150),
	}

	for name, text := range texts {
		t.Run(name, func(t *testing.T) {
			s := New(WithMaxChunkSize(1000))
			chunks := s.Split("doc-1", text)

			var joined strings.Builder
			for _, chunk := range chunks {
				joined.WriteString(chunk.Text)
				joined.WriteString(" ")
			}

			if normaliseWhitespace(joined.String()) != normaliseWhitespace(text) {
				t.Error("concatenated chunks do not reproduce the original text")
			}
			for i, chunk := range chunks {
				if len(chunk.Text) > 1000 {
					t.Errorf("chunk %d exceeds max size: %d", i, len(chunk.Text))
				}
				if chunk.Text == "" {
					t.Errorf("chunk %d is empty", i)
				}
			}
		})
	}
}

func TestSplitter_Split_PrefersParagraphBoundary(t *testing.T) {
	s := New(WithMaxChunkSize(100))

	// Paragraph break past the 80% threshold.
	first := strings.Repeat("x", 90)
	second := strings.Repeat("y", 80)
	text := first + "\n\n" + second

	chunks := s.Split("doc-1", text)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != first {
		t.Errorf("expected first chunk to end at the paragraph break, got %q", chunks[0].Text)
	}
	if chunks[1].Text != second {
		t.Errorf("expected second chunk to start after the break, got %q", chunks[1].Text)
	}
}

func TestSplitter_Split_PrefersSentenceBoundary(t *testing.T) {
	s := New(WithMaxChunkSize(100))

	// Sentence end at position 80 (past the 70% threshold), no
	// paragraph breaks or newlines anywhere.
	first := strings.Repeat("a", 79) + "."
	second := strings.Repeat("b", 60)
	text := first + " " + second

	chunks := s.Split("doc-1", text)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != first {
		t.Errorf("expected first chunk %q, got %q", first, chunks[0].Text)
	}
}

func TestSplitter_Split_HardCut(t *testing.T) {
	s := New(WithMaxChunkSize(50))

	// No whitespace anywhere forces hard cuts at exactly max size.
	text := strings.Repeat("z", 120)
	chunks := s.Split("doc-1", text)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[0].Text) != 50 || len(chunks[1].Text) != 50 || len(chunks[2].Text) != 20 {
		t.Errorf("unexpected chunk lengths: %d, %d, %d",
			len(chunks[0].Text), len(chunks[1].Text), len(chunks[2].Text))
	}
}

func TestSplitter_Split_HardCutRespectsRuneBoundary(t *testing.T) {
	s := New(WithMaxChunkSize(10))

	// "ação" contains multi-byte runes; no spaces forces hard cuts.
	text := strings.Repeat("açãoação", 5)
	chunks := s.Split("doc-1", text)

	for i, chunk := range chunks {
		for _, r := range chunk.Text {
			if r == '�' {
				t.Errorf("chunk %d contains a replacement character, rune was split", i)
			}
		}
	}
}
