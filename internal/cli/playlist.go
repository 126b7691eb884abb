package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jortega22/ytsub/internal/inputlist"
	"github.com/jortega22/ytsub/internal/youtube"
)

var playlistCmd = &cobra.Command{
	Use:   "playlist [url]",
	Short: "Expand a playlist into its video URLs",
	Long: `Resolve a YouTube playlist without downloading anything and print
its entries. With --save the entries are stored as a timestamped
URL-list file in the input directory, ready for "ytsub batch".

Examples:
  ytsub playlist https://www.youtube.com/playlist?list=PLx...
  ytsub playlist --save https://www.youtube.com/playlist?list=PLx...`,
	Args: cobra.ExactArgs(1),
	RunE: runPlaylist,
}

func init() {
	rootCmd.AddCommand(playlistCmd)

	playlistCmd.Flags().Bool("save", false, "Save the entries as a URL-list file")
}

func runPlaylist(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := youtube.NewClient(cfg.YtDlpPath)
	entries, err := client.ResolvePlaylist(ctx, args[0])
	if err != nil {
		return err
	}

	for i, entry := range entries {
		fmt.Printf("%3d. %s (%ds)\n     %s\n", i+1, entry.Title, entry.Duration, entry.URL)
	}

	save, _ := cmd.Flags().GetBool("save")
	if !save {
		return nil
	}

	listEntries := make([]inputlist.Entry, 0, len(entries))
	for _, entry := range entries {
		listEntries = append(listEntries, inputlist.Entry{URL: entry.URL, Title: entry.Title})
	}

	name, err := inputlist.SavePlaylist(cfg.InputDir, listEntries)
	if err != nil {
		return err
	}

	fmt.Printf("Saved %d entries to %s\n", len(listEntries), name)
	return nil
}
