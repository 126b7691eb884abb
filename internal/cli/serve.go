package cli

import (
	"github.com/spf13/cobra"

	"github.com/jortega22/ytsub/internal/pipeline"
	"github.com/jortega22/ytsub/internal/server"
	"github.com/jortega22/ytsub/internal/youtube"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serve the processing pipeline and the input-file management
endpoints over HTTP. Completed artifacts are served under /output/.

The listen address comes from the SERVER_ADDRESS environment variable
unless --addr is given.

Examples:
  ytsub serve
  ytsub serve --addr :8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (overrides SERVER_ADDRESS)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.ServerAddress
	}

	proc := pipeline.FromConfig(cfg, logger)
	playlists := youtube.NewClient(cfg.YtDlpPath)

	handler := server.NewHandler(proc, playlists, cfg.InputDir, cfg.OutputDir, logger)
	srv := server.NewHTTPServer(addr, server.SetupRoutes(handler, logger))

	logger.Infow("Server listening", "addr", addr)
	return srv.ListenAndServe()
}
