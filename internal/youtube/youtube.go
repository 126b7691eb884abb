package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

// VideoInfo is the metadata yt-dlp reports for a single video.
type VideoInfo struct {
	ID          string
	Title       string
	Duration    int // seconds
	Thumbnail   string
	Description string
}

// PlaylistEntry is one video inside a resolved playlist.
type PlaylistEntry struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Duration int    `json:"duration"`
	ID       string `json:"id"`
}

// Client drives the yt-dlp binary.
type Client struct {
	binaryPath string
}

// NewClient creates a client for the given yt-dlp binary. An empty
// path means yt-dlp is expected on PATH.
func NewClient(binaryPath string) *Client {
	if binaryPath == "" {
		binaryPath = "yt-dlp"
	}
	return &Client{binaryPath: binaryPath}
}

// downloadFormat caps the stream at 720p, matching the viewer's needs.
const downloadFormat = "best[height<=720]"

// Resolve fetches video metadata without downloading anything.
func (c *Client) Resolve(ctx context.Context, url string) (*VideoInfo, error) {
	out, err := c.run(ctx,
		"-J",
		"--no-playlist",
		"--no-warnings",
		url,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", url, err)
	}

	info, err := parseInfoJSON(out)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", url, err)
	}
	return info, nil
}

// Download fetches the video into dir as video.<ext> and renames it
// to video.mp4 when the container differs. Returns the metadata and
// the final file path.
func (c *Client) Download(ctx context.Context, url, dir string) (*VideoInfo, string, error) {
	out, err := c.run(ctx,
		"-f", downloadFormat,
		"-o", filepath.Join(dir, "video.%(ext)s"),
		"--no-playlist",
		"--no-warnings",
		"--print-json",
		url,
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download %s: %w", url, err)
	}

	info, err := parseInfoJSON(out)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download %s: %w", url, err)
	}

	videoPath, err := normalizeContainer(dir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download %s: %w", url, err)
	}

	return info, videoPath, nil
}

// ResolvePlaylist expands a playlist URL into a flat list of entries.
// A plain video URL yields a single-entry list.
func (c *Client) ResolvePlaylist(ctx context.Context, url string) ([]PlaylistEntry, error) {
	out, err := c.run(ctx,
		"-J",
		"--flat-playlist",
		"--ignore-errors",
		"--no-warnings",
		url,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve playlist %s: %w", url, err)
	}

	entries, err := parsePlaylistJSON(out)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve playlist %s: %w", url, err)
	}
	return entries, nil
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.binaryPath, args...)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf(
			"yt-dlp failed: %w, stderr: %s",
			err,
			strings.TrimSpace(stderr.String()),
		)
	}

	return out.Bytes(), nil
}

// normalizeContainer finds the downloaded video.* file and renames it
// to video.mp4 if needed.
func normalizeContainer(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "video.*"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no downloaded video file in %s", dir)
	}

	videoPath := matches[0]
	target := filepath.Join(dir, "video.mp4")
	if videoPath != target {
		if err := os.Rename(videoPath, target); err != nil {
			return "", fmt.Errorf("failed to rename %s: %w", videoPath, err)
		}
	}
	return target, nil
}

// raw info dict fields we care about
type ytdlpInfo struct {
	Type        string        `json:"_type"`
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Duration    float64       `json:"duration"`
	Thumbnail   string        `json:"thumbnail"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	WebpageURL  string        `json:"webpage_url"`
	Entries     []*ytdlpEntry `json:"entries"`
}

type ytdlpEntry struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Duration   float64 `json:"duration"`
	URL        string  `json:"url"`
	WebpageURL string  `json:"webpage_url"`
}

func parseInfoJSON(data []byte) (*VideoInfo, error) {
	var raw ytdlpInfo
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}

	return &VideoInfo{
		ID:          raw.ID,
		Title:       raw.Title,
		Duration:    int(raw.Duration),
		Thumbnail:   raw.Thumbnail,
		Description: raw.Description,
	}, nil
}

func parsePlaylistJSON(data []byte) ([]PlaylistEntry, error) {
	var raw ytdlpInfo
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}

	if len(raw.Entries) > 0 {
		entries := make([]PlaylistEntry, 0, len(raw.Entries))
		for _, e := range raw.Entries {
			if e == nil {
				continue
			}
			url := e.URL
			if url == "" {
				url = e.WebpageURL
			}
			entries = append(entries, PlaylistEntry{
				Title:    e.Title,
				URL:      url,
				Duration: int(e.Duration),
				ID:       e.ID,
			})
		}
		return entries, nil
	}

	// a plain video URL resolves to a single entry
	if raw.ID != "" {
		url := raw.WebpageURL
		if url == "" {
			url = raw.URL
		}
		return []PlaylistEntry{{
			Title:    raw.Title,
			URL:      url,
			Duration: int(raw.Duration),
			ID:       raw.ID,
		}}, nil
	}

	return nil, fmt.Errorf("no videos found in playlist")
}

var unsafeTitleChars = regexp.MustCompile(`[/\\:*?"<>|]`)

// SanitizeTitle rewrites a video title so it can name a directory.
// Distinct titles may collide after sanitization; the last writer
// wins in that case.
func SanitizeTitle(title string) string {
	sanitized := unsafeTitleChars.ReplaceAllString(title, "-")
	sanitized = strings.TrimSpace(sanitized)
	if sanitized == "" {
		return "untitled"
	}
	return sanitized
}

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})(?:[?&#].*)?$`),
	regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([0-9A-Za-z_-]{11})`),
}

// ExtractVideoID pulls the 11-character video ID out of the usual
// YouTube URL shapes. Empty string when none matches.
func ExtractVideoID(url string) string {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}
