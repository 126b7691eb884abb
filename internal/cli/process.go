package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jortega22/ytsub/internal/pipeline"
)

var processCmd = &cobra.Command{
	Use:   "process [url]",
	Short: "Process a single YouTube URL",
	Long: `Process one YouTube video end to end: download, extract audio,
transcribe, translate and write the output artifacts.

Examples:
  ytsub process https://www.youtube.com/watch?v=dQw4w9WgXcQ
  ytsub process -v https://youtu.be/dQw4w9WgXcQ`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	proc := pipeline.FromConfig(cfg, logger)
	if !proc.ValidateCredential(ctx) {
		return pipeline.ErrInvalidCredential
	}

	result, err := proc.ProcessVideo(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Done: %s\n", result.Dir)
	return nil
}
