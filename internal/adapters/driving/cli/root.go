// Package cli implements the parecer command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parecer-labs/parecer-cli/internal/adapters/driven/config/file"
	"github.com/parecer-labs/parecer-cli/internal/adapters/driven/storage/sqlite"
	"github.com/parecer-labs/parecer-cli/internal/core/ports/driven"
	"github.com/parecer-labs/parecer-cli/internal/core/ports/driving"
	"github.com/parecer-labs/parecer-cli/internal/core/services"
	"github.com/parecer-labs/parecer-cli/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// verbose enables debug logging.
var verbose bool

// Services used by the commands. Initialize wires the production
// adapters; tests install fakes directly.
var (
	docStore        driven.DocumentStore
	settingsService driving.SettingsService
	documentService driving.DocumentService
)

var rootCmd = &cobra.Command{
	Use:   "parecer",
	Short: "Analyse legal documents from the terminal",
	Long: `Parecer ingests legal documents (PDF, DOCX, plain text), runs them
through an LLM analysis pipeline, and produces structured summaries,
key points, and relevant passages.

Run 'parecer settings provider' first to configure an analysis provider,
then 'parecer analyze <file>' to analyse a document.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// Initialize wires the production adapters into the commands. It is
// idempotent: services already installed are left alone.
func Initialize() error {
	if settingsService != nil && documentService != nil && docStore != nil {
		return nil
	}

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("failed to open config store: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("failed to open document store: %w", err)
	}

	docStore = store
	settingsService = services.NewSettingsService(configStore)
	documentService = services.NewDocumentService(store)

	return nil
}

// Execute wires the production services and runs the root command.
func Execute() error {
	if err := Initialize(); err != nil {
		return err
	}
	return rootCmd.Execute()
}
