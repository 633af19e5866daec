package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Document Command Tests

func TestDocumentCmd_Use(t *testing.T) {
	assert.Equal(t, "document", documentCmd.Use)
}

func TestDocumentCmd_Short(t *testing.T) {
	assert.Equal(t, "Manage analysed documents", documentCmd.Short)
}

func TestDocumentCmd_HasSubcommands(t *testing.T) {
	commands := documentCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "show")
	assert.Contains(t, commandNames, "content")
	assert.Contains(t, commandNames, "delete")
}

// Document List Tests

func TestDocumentListCmd_Use(t *testing.T) {
	assert.Equal(t, "list", documentListCmd.Use)
}

func TestDocumentListCmd_FailsWithoutService(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"document", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "document service not configured")
}

func TestDocumentListCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"document", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Analysed documents")
	assert.Contains(t, buf.String(), "doc-1")
	assert.Contains(t, buf.String(), "peticao-inicial.pdf")
}

// Document Show Tests

func TestDocumentShowCmd_Use(t *testing.T) {
	assert.Equal(t, "show [doc-id]", documentShowCmd.Use)
}

func TestDocumentShowCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"document", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestDocumentShowCmd_ExecutesWithArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"document", "show", "doc-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "peticao-inicial.pdf")
	assert.Contains(t, buf.String(), "Resumo")
	assert.Contains(t, buf.String(), "ação de cobrança")
	assert.Contains(t, buf.String(), "Competência")
}

func TestDocumentShowCmd_NotFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"document", "show", "missing"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "document not found: missing")
}

// Document Content Tests

func TestDocumentContentCmd_Use(t *testing.T) {
	assert.Equal(t, "content [doc-id]", documentContentCmd.Use)
}

func TestDocumentContentCmd_ExecutesWithArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"document", "content", "doc-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Texto integral do documento de teste.")
}

// Document Delete Tests

func TestDocumentDeleteCmd_Use(t *testing.T) {
	assert.Equal(t, "delete [doc-id]", documentDeleteCmd.Use)
}

func TestDocumentDeleteCmd_ExecutesWithArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"document", "delete", "doc-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Deleted document: doc-1")
}

func TestDocumentDeleteCmd_NotFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"document", "delete", "missing"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "document not found: missing")
}
