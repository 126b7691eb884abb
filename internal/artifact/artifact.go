// Package artifact writes the per-video output files: subtitle
// tracks, the HTML viewer, and the processing report.
package artifact

import (
	"bufio"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jortega22/ytsub/internal/youtube"
)

//go:embed index.html.tmpl
var templateFS embed.FS

const (
	VideoFileName   = "video.mp4"
	AudioFileName   = "audio.mp3"
	SpanishSubsName = "subtitles_es.srt"
	EnglishSubsName = "subtitles_en.srt"
	ViewerFileName  = "index.html"
	ReportFileName  = "report.txt"

	// TimeLayout is the human-readable timestamp format used in the
	// report and the viewer.
	TimeLayout = "2006-01-02 15:04:05"

	reportURLPrefix = "URL:"
)

// Page holds everything the HTML viewer template needs.
type Page struct {
	Title     string
	URL       string
	Timestamp string
	ESText    string
	ENText    string
}

// WriteSubtitles stores both subtitle tracks, overwriting existing
// files.
func WriteSubtitles(dir, esText, enText string) error {
	esPath := filepath.Join(dir, SpanishSubsName)
	if err := os.WriteFile(esPath, []byte(esText), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", SpanishSubsName, err)
	}

	enPath := filepath.Join(dir, EnglishSubsName)
	if err := os.WriteFile(enPath, []byte(enText), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", EnglishSubsName, err)
	}

	return nil
}

// RenderHTML fills the embedded viewer template and writes index.html.
func RenderHTML(dir string, page Page) error {
	if page.Title == "" || page.URL == "" || page.Timestamp == "" {
		return fmt.Errorf("render failed: title, url and timestamp are required")
	}

	tmpl, err := template.ParseFS(templateFS, "index.html.tmpl")
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	out, err := os.Create(filepath.Join(dir, ViewerFileName))
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	defer out.Close()

	if err := tmpl.Execute(out, page); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// WriteReport stores the processing report. Line order matters:
// ListVideos recovers the original URL from the first URL: line.
func WriteReport(dir string, info *youtube.VideoInfo, url string, at time.Time) error {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("URL: %s\n", url))
	sb.WriteString(fmt.Sprintf("Título: %s\n", info.Title))
	sb.WriteString(fmt.Sprintf("Duración: %d segundos\n", info.Duration))
	sb.WriteString(fmt.Sprintf(
		"Fecha de procesamiento: %s\n",
		at.Format(TimeLayout),
	))

	path := filepath.Join(dir, ReportFileName)
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

// ReportURL reads the original video URL back out of a report file.
func ReportURL(dir string) (string, error) {
	file, err := os.Open(filepath.Join(dir, ReportFileName))
	if err != nil {
		return "", err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, reportURLPrefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, reportURLPrefix)), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}

	return "", nil
}

// Video describes one completed output directory.
type Video struct {
	Title      string `json:"title"`
	Path       string `json:"path"`
	YouTubeURL string `json:"youtubeUrl"`
	Timestamp  string `json:"timestamp"`
}

// ListVideos walks the output root and returns completed videos,
// newest first. Directories without an index.html are incomplete
// runs and are skipped.
func ListVideos(outputRoot string) ([]Video, error) {
	entries, err := os.ReadDir(outputRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return []Video{}, nil
		}
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	videos := make([]Video, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dir := filepath.Join(outputRoot, entry.Name())
		htmlInfo, err := os.Stat(filepath.Join(dir, ViewerFileName))
		if err != nil {
			continue
		}

		url, _ := ReportURL(dir)

		videos = append(videos, Video{
			Title:      entry.Name(),
			Path:       filepath.ToSlash(filepath.Join("output", entry.Name(), ViewerFileName)),
			YouTubeURL: url,
			Timestamp:  htmlInfo.ModTime().Format(TimeLayout),
		})
	}

	// newest first
	sort.Slice(videos, func(i, j int) bool {
		return videos[i].Timestamp > videos[j].Timestamp
	})

	return videos, nil
}
