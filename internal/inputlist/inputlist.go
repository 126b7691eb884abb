// Package inputlist manages the plain-text URL list files that feed
// batch processing. Format: one entry per line, blank lines and lines
// starting with # are ignored, and an optional display title follows
// the URL after a # separator.
package inputlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Entry is one URL with its optional display title.
type Entry struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// List returns the names of the .txt files in the input directory.
func List(inputDir string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	return names, nil
}

// ReadEntries parses one URL list file.
func ReadEntries(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		url := line
		title := ""
		// first # after the URL separates the optional title
		if idx := strings.Index(line, "#"); idx >= 0 {
			url = strings.TrimSpace(line[:idx])
			title = strings.TrimSpace(line[idx+1:])
		}
		if url == "" {
			continue
		}

		entries = append(entries, Entry{URL: url, Title: title})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	return entries, nil
}

// URLs returns just the URLs from a list file.
func URLs(path string) ([]string, error) {
	entries, err := ReadEntries(path)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(entries))
	for _, e := range entries {
		urls = append(urls, e.URL)
	}
	return urls, nil
}

// SavePlaylist writes entries to a timestamped playlist file and
// returns its name.
func SavePlaylist(inputDir string, entries []Entry) (string, error) {
	if len(entries) == 0 {
		return "", fmt.Errorf("no videos to save")
	}

	if err := os.MkdirAll(inputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create input directory: %w", err)
	}

	name := fmt.Sprintf("playlist_%s.txt", time.Now().Format("20060102_150405"))

	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("%s # %s\n", e.URL, e.Title))
	}

	path := filepath.Join(inputDir, name)
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write playlist: %w", err)
	}

	return name, nil
}

// Delete removes a list file from the input directory.
func Delete(inputDir, name string) error {
	path := filepath.Join(inputDir, sanitizeName(name))
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file not found: %s: %w", name, err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	return nil
}

// Save stores an uploaded list file. Only .txt files are accepted.
func Save(inputDir, name string, r io.Reader) error {
	name = sanitizeName(name)
	if name == "" || !strings.HasSuffix(name, ".txt") {
		return fmt.Errorf("only .txt files are allowed")
	}

	if err := os.MkdirAll(inputDir, 0755); err != nil {
		return fmt.Errorf("failed to create input directory: %w", err)
	}

	out, err := os.Create(filepath.Join(inputDir, name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}

	return nil
}

// sanitizeName strips any path component from a client-supplied
// filename.
func sanitizeName(name string) string {
	name = filepath.Base(filepath.Clean(name))
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return name
}
