// Package server exposes the processing pipeline and the input-file
// management operations over HTTP. Handlers are thin: they validate
// the request, call into the pipeline or the inputlist package, and
// encode the outcome as JSON.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/jortega22/ytsub/internal/artifact"
	"github.com/jortega22/ytsub/internal/inputlist"
	"github.com/jortega22/ytsub/internal/logging"
	"github.com/jortega22/ytsub/internal/pipeline"
	"github.com/jortega22/ytsub/internal/youtube"
)

// Pipeline is the slice of the processor the HTTP layer needs.
type Pipeline interface {
	ValidateCredential(ctx context.Context) bool
	ProcessVideo(ctx context.Context, url string) (*pipeline.Result, error)
}

// PlaylistResolver expands a playlist URL into its entries.
type PlaylistResolver interface {
	ResolvePlaylist(ctx context.Context, url string) ([]youtube.PlaylistEntry, error)
}

type Handler struct {
	pipeline   Pipeline
	playlists  PlaylistResolver
	inputDir   string
	outputRoot string
	logger     *logging.Logger
}

func NewHandler(p Pipeline, playlists PlaylistResolver, inputDir, outputRoot string, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		pipeline:   p,
		playlists:  playlists,
		inputDir:   inputDir,
		outputRoot: outputRoot,
		logger:     logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message"`
}

// ProcessVideo runs the full pipeline for one submitted URL. The
// credential is validated before any work begins; a rejected
// credential refuses the request without touching the output root.
func (h *Handler) ProcessVideo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		h.respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	if !h.pipeline.ValidateCredential(r.Context()) {
		h.respondError(w, http.StatusUnauthorized, pipeline.ErrInvalidCredential.Error())
		return
	}

	if _, err := h.pipeline.ProcessVideo(r.Context(), req.URL); err != nil {
		h.logger.Errorw("Processing failed", "url", req.URL, "error", err)
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, messageResponse{Success: true, Message: "video processed"})
}

// ListVideos returns the completed output directories, newest first.
func (h *Handler) ListVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := artifact.ListVideos(h.outputRoot)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, videos)
}

// ListInputFiles returns the names of the stored URL-list files.
func (h *Handler) ListInputFiles(w http.ResponseWriter, r *http.Request) {
	files, err := inputlist.List(h.inputDir)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, files)
}

// FileURLs returns the entries of one URL-list file. A missing file
// yields an empty list rather than an error.
func (h *Handler) FileURLs(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/file-urls/")
	if name == "" {
		h.respondError(w, http.StatusBadRequest, "file name is required")
		return
	}

	entries, err := inputlist.ReadEntries(filepath.Join(h.inputDir, filepath.Base(name)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			h.respondJSON(w, http.StatusOK, []inputlist.Entry{})
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, entries)
}

// ProcessPlaylist resolves a playlist URL into its entries without
// downloading anything.
func (h *Handler) ProcessPlaylist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		h.respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	videos, err := h.playlists.ResolvePlaylist(r.Context(), req.URL)
	if err != nil {
		h.logger.Errorw("Playlist resolution failed", "url", req.URL, "error", err)
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string][]youtube.PlaylistEntry{"videos": videos})
}

// SavePlaylist stores the selected playlist entries as a new
// timestamped URL-list file.
func (h *Handler) SavePlaylist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Videos []inputlist.Entry `json:"videos"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name, err := inputlist.SavePlaylist(h.inputDir, req.Videos)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("playlist saved as %s", name)})
}

// DeleteFile removes one URL-list file from the input directory.
func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		h.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/delete-file/")
	if name == "" {
		h.respondError(w, http.StatusBadRequest, "file name is required")
		return
	}

	if err := inputlist.Delete(h.inputDir, name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			h.respondError(w, http.StatusNotFound, "file not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, messageResponse{Message: "file deleted"})
}

// UploadFile accepts a .txt URL-list file as multipart form data and
// stores it in the input directory.
func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		h.respondError(w, http.StatusBadRequest, "no file selected")
		return
	}

	if err := inputlist.Save(h.inputDir, header.Filename, file); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, messageResponse{Message: "file uploaded"})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, errorResponse{Error: message})
}
