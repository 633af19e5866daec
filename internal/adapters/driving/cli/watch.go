package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/parecer-labs/parecer-cli/internal/core/domain"
	"github.com/parecer-labs/parecer-cli/internal/logger"
)

// Watch tuning.
const (
	// watchSettleDelay gives the writer time to finish the file before
	// the pipeline reads it.
	watchSettleDelay = 500 * time.Millisecond

	// watchDebounce collapses the create/write event bursts some
	// editors produce for a single save.
	watchDebounce = 2 * time.Second
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and analyse new documents",
	Long: `Watches a directory and runs the analysis pipeline on every new or
modified supported file (.txt, .md, .pdf, .docx). Results are stored
in the local history. Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if settingsService == nil || docStore == nil {
		return errors.New("analysis services not configured")
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("failed to access %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}

	svc, closeLLM, err := buildAnalysisService()
	if err != nil {
		return err
	}
	defer closeLLM()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s for documents. Press Ctrl+C to stop.\n", dir)

	lastSeen := make(map[string]time.Time)

	for {
		select {
		case <-ctx.Done():
			cmd.Println("\nStopped watching.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if domain.DetectFormat(event.Name) == domain.FormatUnknown {
				logger.Debug("ignoring unsupported file %s", event.Name)
				continue
			}
			if time.Since(lastSeen[event.Name]) < watchDebounce {
				continue
			}
			lastSeen[event.Name] = time.Now()

			time.Sleep(watchSettleDelay)

			cmd.Printf("\nNew document: %s\n", event.Name)
			if err := analyzeFile(cmd, svc, event.Name, false); err != nil {
				cmd.PrintErrf("Error: %v\n", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmd.PrintErrf("Watch error: %v\n", err)
		}
	}
}
