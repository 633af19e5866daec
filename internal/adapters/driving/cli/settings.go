package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/parecer-labs/parecer-cli/internal/adapters/driven/ai"
	"github.com/parecer-labs/parecer-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the analysis provider and pipeline tuning.

Use subcommands to configure specific settings.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsProviderCmd = &cobra.Command{
	Use:   "provider",
	Short: "Configure the analysis provider",
	Long:  `Interactively select and validate an LLM provider for document analysis.`,
	RunE:  runSettingsProvider,
}

var settingsChunkSizeCmd = &cobra.Command{
	Use:   "chunk-size [format] [size]",
	Short: "Override the chunk size for a source format",
	Long: `Sets the maximum chunk size, in characters, used when splitting
documents of the given format.

Formats: plain-text, paginated-binary, office-xml, unknown`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsChunkSize,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsProviderCmd)
	settingsCmd.AddCommand(settingsChunkSizeCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	llm, err := settingsService.LLM()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Provider]")
	cmd.Printf("  Provider: %s\n", llm.Provider.Description())
	cmd.Printf("  Model: %s\n", llm.Model)
	if llm.Provider.IsLocal() {
		baseURL := llm.BaseURL
		if baseURL == "" {
			baseURL = "(default)"
		}
		cmd.Printf("  Base URL: %s\n", baseURL)
	}
	if llm.Provider.RequiresAPIKey() {
		if llm.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(llm.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	cmd.Printf("  Request timeout: %s\n", llm.RequestTimeout)
	cmd.Println()

	analysis := settingsService.Analysis()
	cmd.Println("[Analysis]")
	cmd.Printf("  Small document threshold: %d\n", analysis.SmallDocumentThreshold)
	cmd.Printf("  Combine budget: %d\n", analysis.CombineBudget)
	cmd.Printf("  Max retries: %d\n", analysis.MaxRetries)
	cmd.Printf("  Document timeout: %s\n", analysis.DocumentTimeout)
	cmd.Println("  Chunk sizes:")
	for _, format := range []domain.SourceFormat{
		domain.FormatPlainText,
		domain.FormatPaginatedBinary,
		domain.FormatOfficeXML,
		domain.FormatUnknown,
	} {
		cmd.Printf("    %s: %d\n", format, analysis.ChunkSizeFor(format))
	}

	return nil
}

func runSettingsProvider(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Select Analysis Provider")
	providers := domain.AllAIProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selected := providers[idx-1]

	defaultModel := domain.DefaultLLMModels()[selected]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if selected.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword()
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	var baseURL string
	if selected.IsLocal() {
		cmd.Print("Enter base URL [http://localhost:11434]: ")
		baseURL = readLine(reader)
	}

	if err := settingsService.SetLLMProvider(selected, model, apiKey, baseURL); err != nil {
		return fmt.Errorf("failed to configure provider: %w", err)
	}

	// Validate the configuration by pinging the service
	llmSettings, err := settingsService.LLM()
	if err != nil {
		return fmt.Errorf("failed to reload settings: %w", err)
	}

	cmd.Print("Validating configuration... ")
	svc, err := ai.CreateAndValidateLLMService(llmSettings)
	if err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("provider validation failed: %w", err)
	}
	_ = svc.Close()
	cmd.Println("OK")

	cmd.Printf("Analysis provider configured: %s (%s)\n\n", selected.Description(), model)
	return nil
}

func runSettingsChunkSize(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	format := domain.SourceFormat(args[0])

	size, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid chunk size %q: %w", args[1], err)
	}

	if err := settingsService.SetChunkSize(format, size); err != nil {
		return fmt.Errorf("failed to set chunk size: %w", err)
	}

	cmd.Printf("Chunk size for %s set to %d\n", format, size)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
