package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jortega22/ytsub/internal/inputlist"
	"github.com/jortega22/ytsub/internal/pipeline"
)

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Process every URL in a URL-list file",
	Long: `Process all URLs from a plain-text list, one video at a time.
A failing URL is reported and skipped; the batch always runs to the
end.

The file holds one URL per line. Blank lines and lines starting with
# are ignored; text after a # on a URL line is treated as a display
title.

Examples:
  ytsub batch input/videos.txt
  ytsub batch playlist_20250101_120000.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := args[0]
	if filepath.Dir(path) == "." {
		path = filepath.Join(cfg.InputDir, path)
	}

	urls, err := inputlist.URLs(path)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs found in %s", path)
	}

	proc := pipeline.FromConfig(cfg, logger)
	if !proc.ValidateCredential(ctx) {
		return pipeline.ErrInvalidCredential
	}

	fmt.Printf("Processing %d URLs\n", len(urls))
	items := proc.ProcessBatch(ctx, urls)

	failed := 0
	for _, item := range items {
		if item.Err != nil {
			failed++
			fmt.Printf("FAILED  %s: %v\n", item.URL, item.Err)
			continue
		}
		fmt.Printf("OK      %s -> %s\n", item.URL, item.Result.Dir)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d URLs failed", failed, len(items))
	}
	return nil
}
