package youtube

import (
	"testing"
)

func TestParseInfoJSON(t *testing.T) {
	data := []byte(`{
		"id": "dQw4w9WgXcQ",
		"title": "Test Video",
		"duration": 212.5,
		"thumbnail": "https://i.ytimg.com/vi/dQw4w9WgXcQ/hq720.jpg",
		"description": "A test video."
	}`)

	info, err := parseInfoJSON(data)
	if err != nil {
		t.Fatalf("parseInfoJSON error: %v", err)
	}
	if info.ID != "dQw4w9WgXcQ" {
		t.Errorf("unexpected ID %q", info.ID)
	}
	if info.Title != "Test Video" {
		t.Errorf("unexpected title %q", info.Title)
	}
	if info.Duration != 212 {
		t.Errorf("expected duration 212, got %d", info.Duration)
	}
}

func TestParsePlaylistJSONWithEntries(t *testing.T) {
	data := []byte(`{
		"_type": "playlist",
		"title": "Mix",
		"entries": [
			{"id": "aaaaaaaaaaa", "title": "First", "duration": 10, "url": "https://www.youtube.com/watch?v=aaaaaaaaaaa"},
			null,
			{"id": "bbbbbbbbbbb", "title": "Second", "duration": 20, "webpage_url": "https://www.youtube.com/watch?v=bbbbbbbbbbb"}
		]
	}`)

	entries, err := parsePlaylistJSON(data)
	if err != nil {
		t.Fatalf("parsePlaylistJSON error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].URL != "https://www.youtube.com/watch?v=aaaaaaaaaaa" {
		t.Errorf("unexpected URL %q", entries[0].URL)
	}
	if entries[1].URL != "https://www.youtube.com/watch?v=bbbbbbbbbbb" {
		t.Errorf("expected webpage_url fallback, got %q", entries[1].URL)
	}
}

func TestParsePlaylistJSONSingleVideo(t *testing.T) {
	data := []byte(`{
		"id": "ccccccccccc",
		"title": "Single",
		"duration": 30,
		"webpage_url": "https://www.youtube.com/watch?v=ccccccccccc"
	}`)

	entries, err := parsePlaylistJSON(data)
	if err != nil {
		t.Fatalf("parsePlaylistJSON error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ID != "ccccccccccc" {
		t.Errorf("unexpected ID %q", entries[0].ID)
	}
}

func TestParsePlaylistJSONEmpty(t *testing.T) {
	if _, err := parsePlaylistJSON([]byte(`{"_type": "playlist", "entries": []}`)); err == nil {
		t.Error("expected error for empty playlist")
	}
}

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Plain title", "Plain title"},
		{"AC/DC - Back in Black", "AC-DC - Back in Black"},
		{`What? A "quote": yes`, "What- A -quote-- yes"},
		{"  spaced  ", "spaced"},
		{"///", "---"},
		{"", "untitled"},
	}

	for _, tt := range tests {
		if got := SanitizeTitle(tt.in); got != tt.want {
			t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeTitleCollision(t *testing.T) {
	// distinct titles may collapse to the same directory name
	a := SanitizeTitle("a/b")
	b := SanitizeTitle("a:b")
	if a != b {
		t.Errorf("expected collision, got %q and %q", a, b)
	}
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://example.com/other", ""},
	}

	for _, tt := range tests {
		if got := ExtractVideoID(tt.url); got != tt.want {
			t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
