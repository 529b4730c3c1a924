package profile

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/crossroads/apparel-backend/internal/httpjson"
)

// MaxPictureBytes caps a single profile picture upload.
const MaxPictureBytes = 5 << 20

// PictureBasePath is where uploaded pictures are served from.
const PictureBasePath = "/api/profile/picture/"

// FileStore defines the interface for picture storage.
type FileStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, string, error)
}

// PictureHandler uploads and serves profile pictures. The URL returned by
// Upload is what clients send as profilePic on signup.
type PictureHandler struct {
	files FileStore
	log   logrus.FieldLogger
}

func NewPictureHandler(files FileStore, log logrus.FieldLogger) *PictureHandler {
	return &PictureHandler{files: files, log: log}
}

// Upload handles POST /api/profile/picture with a multipart "file" field.
func (h *PictureHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxPictureBytes+1<<20)
	file, header, err := r.FormFile("file")
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if header.Size > MaxPictureBytes {
		httpjson.Error(w, http.StatusBadRequest, "file is too large")
		return
	}

	// Sniff the real type rather than trusting the client's header.
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		httpjson.Error(w, http.StatusBadRequest, "file is empty")
		return
	}
	head = head[:n]
	contentType := http.DetectContentType(head)
	if !strings.HasPrefix(contentType, "image/") {
		httpjson.Error(w, http.StatusBadRequest, "file must be an image")
		return
	}

	key := uuid.NewString()
	body := io.MultiReader(bytes.NewReader(head), file)
	if err := h.files.Upload(r.Context(), key, body, header.Size, contentType); err != nil {
		h.log.WithError(err).Error("upload profile picture")
		httpjson.Error(w, http.StatusInternalServerError, "upload failed")
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]string{"profilePic": PictureBasePath + key})
}

// Download handles GET /api/profile/picture/{key}.
func (h *PictureHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if _, err := uuid.Parse(key); err != nil {
		httpjson.Error(w, http.StatusNotFound, "picture not found")
		return
	}

	rc, contentType, err := h.files.Download(r.Context(), key)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "picture not found")
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, rc); err != nil {
		h.log.WithError(err).WithField("key", key).Warn("stream profile picture")
	}
}
