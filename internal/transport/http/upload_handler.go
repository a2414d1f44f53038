package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"quiz-host-service/internal/app"
	"github.com/go-chi/chi/v5"
)

// multipart overhead allowed on top of the file itself
const uploadSlack = 1 << 20

type UploadHandler struct {
	media  *app.MediaService
	logger *slog.Logger
}

func NewUploadHandler(media *app.MediaService, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{media: media, logger: logger}
}

// Upload accepts a single multipart "file" field.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if limit := h.media.MaxBytes(); limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit+uploadSlack)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	upload, err := h.media.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to upload file")
		return
	}
	h.logger.Info("media uploaded", "filename", upload.Filename, "size", upload.Size, "mimetype", upload.Mimetype)
	writeJSON(w, http.StatusOK, upload)
}

// Serve streams a previously uploaded file.
func (h *UploadHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	f, err := h.media.Open(r.Context(), name)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to read file")
		return
	}
	defer f.Close()
	http.ServeContent(w, r, name, time.Time{}, f)
}
