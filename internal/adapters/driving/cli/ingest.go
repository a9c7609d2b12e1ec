package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]...",
	Short: "Index documents for question answering",
	Long: `Extracts text from the given files, splits it into chunks, embeds
them and builds one vector index per file. Re-ingesting a file fully
rebuilds its index. Supported formats: txt, md, docx (pdf and images
need external extraction and are skipped).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if qaService == nil {
		return errors.New("qa service not configured")
	}

	ctx := context.Background()
	var failed int
	for _, path := range args {
		name, err := qaService.IngestFile(ctx, path)
		if err != nil {
			// A failed ingest aborts this document only.
			cmd.PrintErrf("Failed to ingest %s: %v\n", path, err)
			failed++
			continue
		}
		cmd.Printf("Indexed %s as %q\n", path, name)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(args))
	}
	return nil
}
