package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jortega22/ytsub/internal/inputlist"
	"github.com/jortega22/ytsub/internal/logging"
	"github.com/jortega22/ytsub/internal/pipeline"
	"github.com/jortega22/ytsub/internal/youtube"
)

type stubPipeline struct {
	credentialOK bool
	processErr   error
	processed    []string
}

func (s *stubPipeline) ValidateCredential(ctx context.Context) bool {
	return s.credentialOK
}

func (s *stubPipeline) ProcessVideo(ctx context.Context, url string) (*pipeline.Result, error) {
	if s.processErr != nil {
		return nil, s.processErr
	}
	s.processed = append(s.processed, url)
	return &pipeline.Result{URL: url, Title: "Stub"}, nil
}

type stubPlaylists struct {
	entries []youtube.PlaylistEntry
	err     error
}

func (s *stubPlaylists) ResolvePlaylist(ctx context.Context, url string) ([]youtube.PlaylistEntry, error) {
	return s.entries, s.err
}

func newTestServer(t *testing.T, p *stubPipeline, playlists *stubPlaylists) (http.Handler, string, string) {
	t.Helper()
	inputDir := t.TempDir()
	outputRoot := t.TempDir()
	h := NewHandler(p, playlists, inputDir, outputRoot, nil)
	return SetupRoutes(h, logging.NewNop()), inputDir, outputRoot
}

func TestProcessVideoHandler(t *testing.T) {
	p := &stubPipeline{credentialOK: true}
	handler, _, _ := newTestServer(t, p, &stubPlaylists{})

	body := strings.NewReader(`{"url": "https://youtu.be/abc"}`)
	req := httptest.NewRequest(http.MethodPost, "/process", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(p.processed) != 1 || p.processed[0] != "https://youtu.be/abc" {
		t.Errorf("pipeline saw %v", p.processed)
	}
}

func TestProcessVideoRejectsInvalidCredential(t *testing.T) {
	p := &stubPipeline{credentialOK: false}
	handler, _, _ := newTestServer(t, p, &stubPlaylists{})

	body := strings.NewReader(`{"url": "https://youtu.be/abc"}`)
	req := httptest.NewRequest(http.MethodPost, "/process", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if len(p.processed) != 0 {
		t.Error("pipeline must not run on rejected credential")
	}
}

func TestProcessVideoMissingURL(t *testing.T) {
	handler, _, _ := newTestServer(t, &stubPipeline{credentialOK: true}, &stubPlaylists{})

	req := httptest.NewRequest(http.MethodPost, "/process", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestProcessVideoPipelineFailure(t *testing.T) {
	p := &stubPipeline{credentialOK: true, processErr: errors.New("download failed")}
	handler, _, _ := newTestServer(t, p, &stubPlaylists{})

	body := strings.NewReader(`{"url": "https://youtu.be/abc"}`)
	req := httptest.NewRequest(http.MethodPost, "/process", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if !strings.Contains(resp.Error, "download failed") {
		t.Errorf("unexpected error message %q", resp.Error)
	}
}

func TestListVideos(t *testing.T) {
	handler, _, outputRoot := newTestServer(t, &stubPipeline{}, &stubPlaylists{})

	dir := filepath.Join(outputRoot, "Un Video")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html></html>"), 0644); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/videos", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var videos []struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&videos); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(videos) != 1 || videos[0].Title != "Un Video" {
		t.Errorf("unexpected videos %v", videos)
	}
}

func TestInputFileEndpoints(t *testing.T) {
	handler, inputDir, _ := newTestServer(t, &stubPipeline{}, &stubPlaylists{})

	content := "https://youtu.be/one # Primero\nhttps://youtu.be/two\n"
	if err := os.WriteFile(filepath.Join(inputDir, "lista.txt"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/input-files", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	var files []string
	if err := json.NewDecoder(rec.Body).Decode(&files); err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != "lista.txt" {
		t.Errorf("unexpected files %v", files)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/file-urls/lista.txt", nil))
	var entries []inputlist.Entry
	if err := json.NewDecoder(rec.Body).Decode(&entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Title != "Primero" {
		t.Errorf("unexpected entries %v", entries)
	}

	// missing file reads as empty, not as an error
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/file-urls/nope.txt", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("missing file: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/delete-file/lista.txt", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	if _, err := os.Stat(filepath.Join(inputDir, "lista.txt")); !os.IsNotExist(err) {
		t.Error("file still present after delete")
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/delete-file/lista.txt", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}
}

func TestProcessPlaylist(t *testing.T) {
	playlists := &stubPlaylists{entries: []youtube.PlaylistEntry{
		{Title: "Uno", URL: "https://youtu.be/one", Duration: 60, ID: "one"},
	}}
	handler, _, _ := newTestServer(t, &stubPipeline{}, playlists)

	body := strings.NewReader(`{"url": "https://youtube.com/playlist?list=x"}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/process-playlist", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Videos []youtube.PlaylistEntry `json:"videos"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Videos) != 1 || resp.Videos[0].Title != "Uno" {
		t.Errorf("unexpected videos %v", resp.Videos)
	}
}

func TestProcessPlaylistEmpty(t *testing.T) {
	playlists := &stubPlaylists{err: errors.New("no videos found in playlist")}
	handler, _, _ := newTestServer(t, &stubPipeline{}, playlists)

	body := strings.NewReader(`{"url": "https://youtube.com/playlist?list=empty"}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/process-playlist", body))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSavePlaylist(t *testing.T) {
	handler, inputDir, _ := newTestServer(t, &stubPipeline{}, &stubPlaylists{})

	body := strings.NewReader(`{"videos": [{"url": "https://youtu.be/one", "title": "Uno"}]}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/save-playlist", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	files, err := inputlist.List(inputDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || !strings.HasPrefix(files[0], "playlist_") {
		t.Errorf("unexpected files %v", files)
	}
}

func TestSavePlaylistEmpty(t *testing.T) {
	handler, _, _ := newTestServer(t, &stubPipeline{}, &stubPlaylists{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/save-playlist", strings.NewReader(`{"videos": []}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUploadFile(t *testing.T) {
	handler, inputDir, _ := newTestServer(t, &stubPipeline{}, &stubPlaylists{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "urls.txt")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte("https://youtu.be/one\n")); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload-file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data, err := os.ReadFile(filepath.Join(inputDir, "urls.txt"))
	if err != nil {
		t.Fatalf("uploaded file missing: %v", err)
	}
	if string(data) != "https://youtu.be/one\n" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestUploadFileRejectsNonTxt(t *testing.T) {
	handler, _, _ := newTestServer(t, &stubPipeline{}, &stubPlaylists{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "payload.exe")
	part.Write([]byte("nope"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload-file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestServeOutputFiles(t *testing.T) {
	handler, _, outputRoot := newTestServer(t, &stubPipeline{}, &stubPlaylists{})

	dir := filepath.Join(outputRoot, "Video")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>hola</html>"), 0644); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/output/Video/index.html", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "hola") {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestRequestIDHeader(t *testing.T) {
	handler, _, _ := newTestServer(t, &stubPipeline{}, &stubPlaylists{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/videos", nil))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing generated request ID")
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/videos", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	handler.ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-ID") != "fixed-id" {
		t.Error("client request ID not preserved")
	}
}

func TestCORSPreflight(t *testing.T) {
	handler, _, _ := newTestServer(t, &stubPipeline{}, &stubPlaylists{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/process", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}
