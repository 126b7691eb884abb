package cli

import (
	"github.com/spf13/cobra"

	"github.com/jortega22/ytsub/internal/config"
	"github.com/jortega22/ytsub/internal/logging"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ytsub",
	Short: "YouTube video processor with AI-generated subtitles",
	Long: `Ytsub downloads a YouTube video, extracts its audio track,
transcribes it to Spanish subtitles and translates them to English.

Each processed video ends up in its own output directory with the
video, audio, both subtitle files, a standalone HTML viewer and a
processing report.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
