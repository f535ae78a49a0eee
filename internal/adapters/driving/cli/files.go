package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List documents ingested by the backend",
	RunE:  runFiles,
}

func init() {
	rootCmd.AddCommand(filesCmd)
}

func runFiles(cmd *cobra.Command, _ []string) error {
	if ingestionAPI == nil {
		return errors.New("ingestion client not configured")
	}
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	token, err := sessionService.Token()
	if err != nil {
		return errors.New("not signed in: run 'urbanista login' first")
	}

	files, err := ingestionAPI.ListFiles(cmd.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrAuthRequired) {
			return errors.New("session expired: run 'urbanista login' again")
		}
		return fmt.Errorf("listing files: %w", err)
	}

	if len(files) == 0 {
		cmd.Println("No documents ingested yet.")
		return nil
	}

	for _, f := range files {
		modified := time.Unix(int64(f.Modified), 0).Format("2006-01-02 15:04")
		cmd.Printf("  %-40s %8s  %s\n", f.Name, formatSize(f.Size), modified)
	}
	return nil
}

// formatSize renders a byte count in a compact human unit.
func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
