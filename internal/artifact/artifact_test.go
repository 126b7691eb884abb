package artifact

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jortega22/ytsub/internal/youtube"
)

func TestWriteSubtitles(t *testing.T) {
	dir := t.TempDir()

	if err := WriteSubtitles(dir, "es content", "en content"); err != nil {
		t.Fatalf("WriteSubtitles error: %v", err)
	}

	es, err := os.ReadFile(filepath.Join(dir, SpanishSubsName))
	if err != nil {
		t.Fatalf("failed to read es subtitles: %v", err)
	}
	if string(es) != "es content" {
		t.Errorf("unexpected es content %q", es)
	}

	// overwrite
	if err := WriteSubtitles(dir, "es v2", "en v2"); err != nil {
		t.Fatalf("WriteSubtitles overwrite error: %v", err)
	}
	en, _ := os.ReadFile(filepath.Join(dir, EnglishSubsName))
	if string(en) != "en v2" {
		t.Errorf("overwrite failed, got %q", en)
	}
}

func TestRenderHTML(t *testing.T) {
	dir := t.TempDir()

	page := Page{
		Title:     "Mi Video",
		URL:       "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Timestamp: "2026-08-31 12:00:00",
		ESText:    "Hola, mundo.\n\nSegunda parte.",
		ENText:    "Hello, world.\n\nSecond part.",
	}

	if err := RenderHTML(dir, page); err != nil {
		t.Fatalf("RenderHTML error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ViewerFileName))
	if err != nil {
		t.Fatalf("failed to read index.html: %v", err)
	}
	html := string(data)

	for _, want := range []string{
		"Mi Video",
		"video.mp4",
		"audio.mp3",
		SpanishSubsName,
		EnglishSubsName,
		"Hola, mundo.",
		"Hello, world.",
		"2026-08-31 12:00:00",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("index.html missing %q", want)
		}
	}
}

func TestRenderHTMLRequiresFields(t *testing.T) {
	dir := t.TempDir()

	if err := RenderHTML(dir, Page{URL: "x", Timestamp: "y"}); err == nil {
		t.Error("expected error for missing title")
	}
	if _, err := os.Stat(filepath.Join(dir, ViewerFileName)); err == nil {
		t.Error("index.html should not exist after failed render")
	}
}

func TestWriteReportFormat(t *testing.T) {
	dir := t.TempDir()
	info := &youtube.VideoInfo{Title: "Mi Video", Duration: 212}
	url := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	at := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	if err := WriteReport(dir, info, url, at); err != nil {
		t.Fatalf("WriteReport error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ReportFileName))
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 report lines, got %d", len(lines))
	}

	if lines[0] != "URL: "+url {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if lines[1] != "Título: Mi Video" {
		t.Errorf("unexpected second line %q", lines[1])
	}
	if lines[2] != "Duración: 212 segundos" {
		t.Errorf("unexpected third line %q", lines[2])
	}
	if lines[3] != "Fecha de procesamiento: 2026-08-31 12:00:00" {
		t.Errorf("unexpected fourth line %q", lines[3])
	}
}

func TestReportURL(t *testing.T) {
	dir := t.TempDir()
	info := &youtube.VideoInfo{Title: "t", Duration: 1}
	url := "https://youtu.be/dQw4w9WgXcQ"

	if err := WriteReport(dir, info, url, time.Now()); err != nil {
		t.Fatalf("WriteReport error: %v", err)
	}

	got, err := ReportURL(dir)
	if err != nil {
		t.Fatalf("ReportURL error: %v", err)
	}
	if got != url {
		t.Errorf("ReportURL = %q, want %q", got, url)
	}
}

func TestListVideosSkipsIncomplete(t *testing.T) {
	root := t.TempDir()

	// completed video
	done := filepath.Join(root, "Video Completo")
	if err := os.MkdirAll(done, 0755); err != nil {
		t.Fatal(err)
	}
	if err := RenderHTML(done, Page{
		Title:     "Video Completo",
		URL:       "https://youtu.be/aaaaaaaaaaa",
		Timestamp: "2026-08-31 12:00:00",
	}); err != nil {
		t.Fatal(err)
	}
	info := &youtube.VideoInfo{Title: "Video Completo", Duration: 10}
	if err := WriteReport(done, info, "https://youtu.be/aaaaaaaaaaa", time.Now()); err != nil {
		t.Fatal(err)
	}

	// failed run: directory exists, no index.html
	if err := os.MkdirAll(filepath.Join(root, "Video Incompleto"), 0755); err != nil {
		t.Fatal(err)
	}

	videos, err := ListVideos(root)
	if err != nil {
		t.Fatalf("ListVideos error: %v", err)
	}
	if len(videos) != 1 {
		t.Fatalf("expected 1 completed video, got %d", len(videos))
	}
	if videos[0].Title != "Video Completo" {
		t.Errorf("unexpected title %q", videos[0].Title)
	}
	if videos[0].YouTubeURL != "https://youtu.be/aaaaaaaaaaa" {
		t.Errorf("unexpected url %q", videos[0].YouTubeURL)
	}
}

func TestListVideosMissingRoot(t *testing.T) {
	videos, err := ListVideos(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("ListVideos error: %v", err)
	}
	if len(videos) != 0 {
		t.Errorf("expected empty list, got %d", len(videos))
	}
}
