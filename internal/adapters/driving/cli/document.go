package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parecer-labs/parecer-cli/internal/adapters/driving/tui"
	"github.com/parecer-labs/parecer-cli/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage analysed documents",
	Long:  `List, view, or delete documents from the analysis history.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List analysed documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show the analysis of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentShow,
}

var documentContentCmd = &cobra.Command{
	Use:   "content [doc-id]",
	Short: "Print the analysed text content",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentContent,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document from the history",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

func init() {
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentShowCmd)
	documentCmd.AddCommand(documentContentCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents analysed yet.")
		return nil
	}

	cmd.Printf("Analysed documents (%d):\n\n", len(docs))
	for _, doc := range docs {
		cmd.Printf("  %s  %s\n", doc.ID, doc.Name)
		cmd.Printf("      %s, %d bytes, uploaded %s\n",
			doc.SourceFormat, doc.ByteSize, doc.UploadedAt.Format("02/01/2006 15:04"))
	}

	return nil
}

func runDocumentShow(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := getDocument(cmd, args[0])
	if err != nil {
		return err
	}

	cmd.Println(tui.RenderDocument(doc))
	return nil
}

func runDocumentContent(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := getDocument(cmd, args[0])
	if err != nil {
		return err
	}

	cmd.Println(doc.Content)
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	id := args[0]
	if err := documentService.Delete(cmd.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("document not found: %s", id)
		}
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Deleted document: %s\n", id)
	return nil
}

func getDocument(cmd *cobra.Command, id string) (*domain.AnalyzedDocument, error) {
	doc, err := documentService.Get(cmd.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("document not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return doc, nil
}
