package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parecer-labs/parecer-cli/internal/core/domain"
)

// Analyze Command Tests

func TestAnalyzeCmd_Use(t *testing.T) {
	assert.Equal(t, "analyze [file...]", analyzeCmd.Use)
}

func TestAnalyzeCmd_RequiresAtLeastOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"analyze"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestAnalyzeCmd_FailsWithoutServices(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"analyze", "peticao.pdf"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "analysis services not configured")
}

func TestLoadRawDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contrato.txt")
	require.NoError(t, os.WriteFile(path, []byte("Cláusulas do contrato."), 0o600))

	raw, err := loadRawDocument(path)

	require.NoError(t, err)
	assert.NotEmpty(t, raw.ID)
	assert.Equal(t, "contrato.txt", raw.Name)
	assert.Equal(t, domain.FormatPlainText, raw.SourceFormat)
	assert.Equal(t, []byte("Cláusulas do contrato."), raw.Content)
	assert.Equal(t, int64(len(raw.Content)), raw.ByteSize)
	assert.False(t, raw.UploadedAt.IsZero())
}

func TestLoadRawDocument_UnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "anexo.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x01}, 0o600))

	raw, err := loadRawDocument(path)

	require.NoError(t, err)
	assert.Equal(t, domain.FormatUnknown, raw.SourceFormat)
}

func TestLoadRawDocument_MissingFile(t *testing.T) {
	_, err := loadRawDocument(filepath.Join(t.TempDir(), "nao-existe.txt"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}
