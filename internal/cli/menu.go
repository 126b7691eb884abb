package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jortega22/ytsub/internal/inputlist"
	"github.com/jortega22/ytsub/internal/pipeline"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Run the interactive menu",
	Long: `Start an interactive session for processing videos one at a time
or from a URL-list file. The transcription credential is validated
once before the menu opens.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	proc := pipeline.FromConfig(cfg, logger)

	fmt.Println("Validating credential...")
	if !proc.ValidateCredential(ctx) {
		return pipeline.ErrInvalidCredential
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Println("\n=== YouTube Processor ===")
		fmt.Println("1. Process a URL-list file")
		fmt.Println("2. Process a single URL")
		fmt.Println("3. Exit")

		switch prompt(reader, "\nSelect an option: ") {
		case "1":
			menuProcessFile(ctx, reader, proc, cfg.InputDir)
		case "2":
			menuProcessSingle(ctx, reader, proc)
		case "3":
			return nil
		default:
			fmt.Println("Invalid option")
		}
	}
}

func menuProcessFile(ctx context.Context, reader *bufio.Reader, proc *pipeline.Processor, inputDir string) {
	files, err := inputlist.List(inputDir)
	if err != nil {
		fmt.Printf("Failed to list input files: %v\n", err)
		return
	}
	if len(files) == 0 {
		fmt.Printf("No URL-list files found in %s\n", inputDir)
		return
	}

	for i, name := range files {
		fmt.Printf("%d. %s\n", i+1, name)
	}
	idx, ok := promptIndex(reader, "\nSelect a file: ", len(files))
	if !ok {
		return
	}

	urls, err := inputlist.URLs(filepath.Join(inputDir, files[idx]))
	if err != nil {
		fmt.Printf("Failed to read file: %v\n", err)
		return
	}
	if len(urls) == 0 {
		fmt.Println("No URLs in the file")
		return
	}

	fmt.Printf("\nFound %d URLs\n", len(urls))
	fmt.Println("1. Process all")
	fmt.Println("2. Pick one")

	switch prompt(reader, "\nSelect an option: ") {
	case "1":
		for _, item := range proc.ProcessBatch(ctx, urls) {
			if item.Err != nil {
				fmt.Printf("FAILED  %s: %v\n", item.URL, item.Err)
			} else {
				fmt.Printf("OK      %s\n", item.URL)
			}
		}
	case "2":
		for i, url := range urls {
			fmt.Printf("%d. %s\n", i+1, url)
		}
		idx, ok := promptIndex(reader, "\nSelect a URL: ", len(urls))
		if !ok {
			return
		}
		if _, err := proc.ProcessVideo(ctx, urls[idx]); err != nil {
			fmt.Printf("Processing failed: %v\n", err)
		}
	default:
		fmt.Println("Invalid option")
	}
}

func menuProcessSingle(ctx context.Context, reader *bufio.Reader, proc *pipeline.Processor) {
	url := prompt(reader, "\nEnter the YouTube URL: ")
	if url == "" {
		return
	}
	if _, err := proc.ProcessVideo(ctx, url); err != nil {
		fmt.Printf("Processing failed: %v\n", err)
	}
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

// promptIndex asks for a 1-based selection and returns it 0-based.
func promptIndex(reader *bufio.Reader, label string, n int) (int, bool) {
	idx, err := strconv.Atoi(prompt(reader, label))
	if err != nil || idx < 1 || idx > n {
		fmt.Println("Invalid selection")
		return 0, false
	}
	return idx - 1, true
}
