package scan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// prose is ordinary Portuguese legal text that passes every heuristic.
const prose = "O contrato de prestação de serviços foi celebrado entre as partes " +
	"em janeiro, com cláusula de rescisão que prevê multa para o caso de " +
	"descumprimento de qualquer uma das obrigações previstas no instrumento."

func TestStripControl(t *testing.T) {
	t.Run("removes control characters", func(t *testing.T) {
		in := "abc\x00\x01def\x7f"
		assert.Equal(t, "abcdef", StripControl(in))
	})

	t.Run("preserves whitespace", func(t *testing.T) {
		in := "linha um\nlinha dois\tfim\r\n"
		assert.Equal(t, in, StripControl(in))
	})

	t.Run("clean text unchanged", func(t *testing.T) {
		assert.Equal(t, prose, StripControl(prose))
	})
}

func TestNormaliseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", NormaliseWhitespace("  a\n\n b\t\tc  "))
	assert.Equal(t, "", NormaliseWhitespace("   \n\t "))
}

func TestIsBinaryArtifact(t *testing.T) {
	t.Run("pdf magic header", func(t *testing.T) {
		assert.True(t, IsBinaryArtifact("%PDF-1.7 garbage"))
	})

	t.Run("zip magic header", func(t *testing.T) {
		assert.True(t, IsBinaryArtifact("PK\x03\x04rest"))
	})

	t.Run("structural keywords", func(t *testing.T) {
		assert.True(t, IsBinaryArtifact("1 0 obj << >> endobj trailer"))
		assert.True(t, IsBinaryArtifact("xref\n0 5\n0000000000"))
	})

	t.Run("control character flood", func(t *testing.T) {
		assert.True(t, IsBinaryArtifact(strings.Repeat("a\x00", 40)))
	})

	t.Run("ordinary prose", func(t *testing.T) {
		assert.False(t, IsBinaryArtifact(prose))
	})

	t.Run("keywords beyond the window are ignored", func(t *testing.T) {
		content := strings.Repeat("texto comum e limpo ", 150) + "endobj"
		assert.False(t, IsBinaryArtifact(content))
	})
}

func TestIsReadable(t *testing.T) {
	t.Run("ordinary prose", func(t *testing.T) {
		assert.True(t, IsReadable(prose))
	})

	t.Run("too short", func(t *testing.T) {
		assert.False(t, IsReadable("texto curto de mais"))
	})

	t.Run("control character ratio", func(t *testing.T) {
		garbage := strings.Repeat("a\x00\x01\x02", 100)
		assert.False(t, IsReadable(garbage))
	})

	t.Run("no function words", func(t *testing.T) {
		noise := strings.Repeat("xkcd qwerty zzzz plmk ", 10)
		assert.False(t, IsReadable(noise))
	})

	t.Run("idempotent on clean text", func(t *testing.T) {
		cleaned := StripControl(prose)
		assert.Equal(t, prose, cleaned)
		assert.True(t, IsReadable(cleaned))
	})
}
