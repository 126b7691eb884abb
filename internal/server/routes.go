package server

import (
	"net/http"
	"time"

	"github.com/jortega22/ytsub/internal/logging"
)

// SetupRoutes builds the full handler chain: routes plus request-ID,
// logging, recovery and CORS middleware.
func SetupRoutes(h *Handler, logger *logging.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/process", h.ProcessVideo)
	mux.HandleFunc("/videos", h.ListVideos)
	mux.HandleFunc("/input-files", h.ListInputFiles)
	mux.HandleFunc("/file-urls/", h.FileURLs)
	mux.HandleFunc("/process-playlist", h.ProcessPlaylist)
	mux.HandleFunc("/save-playlist", h.SavePlaylist)
	mux.HandleFunc("/delete-file/", h.DeleteFile)
	mux.HandleFunc("/upload-file", h.UploadFile)

	// completed artifacts are plain files under the output root
	mux.Handle("/output/", http.StripPrefix("/output/", http.FileServer(http.Dir(h.outputRoot))))

	var handler http.Handler = mux
	handler = LoggingMiddleware(logger)(handler)
	handler = RecoveryMiddleware(logger)(handler)
	handler = RequestIDMiddleware(handler)
	handler = CORSMiddleware(handler)

	return handler
}

// NewHTTPServer wraps the handler chain in a server with sane
// timeouts. Processing requests can legitimately take minutes, so the
// write timeout stays generous.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Minute,
	}
}
