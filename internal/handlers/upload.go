package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"recollect/internal/config"
	"recollect/internal/storage"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UploadHandler обрабатывает загрузку изображений и отдачу локальных файлов.
type UploadHandler struct {
	Store  storage.Store
	Logger *zap.SugaredLogger
	Config *config.Config
}

// NewUploadHandler создаёт хендлер загрузок
func NewUploadHandler(store storage.Store, logger *zap.SugaredLogger, cfg *config.Config) *UploadHandler {
	return &UploadHandler{Store: store, Logger: logger, Config: cfg}
}

// UploadImage принимает multipart-файл и кладёт его в хранилище.
// Ключ всегда {principal}/{uuid}{ext}: owner id из запроса не используется.
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	claims, ok := principal(w, r)
	if !ok {
		return
	}

	maxBody := int64(h.Config.MaxUploadMB)*1024*1024 + 1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		h.Logger.Warnw("UploadImage: invalid multipart form", "error", err)
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.Logger.Warnw("UploadImage: missing file", "error", err)
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.Logger.Warnw("UploadImage: failed to read file", "error", err)
		http.Error(w, "failed to read file", http.StatusBadRequest)
		return
	}
	if int64(len(data)) > int64(h.Config.MaxUploadMB)*1024*1024 {
		http.Error(w, "payload too large", http.StatusRequestEntityTooLarge)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = storage.ContentTypeFor(header.Filename)
	}

	key := storage.MakeObjectKey(claims.UserID, header.Filename)
	filePath, err := h.Store.Upload(r.Context(), key, contentType, data)
	if err != nil {
		h.Logger.Errorw("UploadImage: storage error", "user_id", claims.UserID, "key", key, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"file_path":    filePath,
		"filename":     filepath.Base(key),
		"content_type": contentType,
	})
}

// ServeMedia отдаёт локально сохранённый файл. При включённом облаке
// всегда 404: клиент должен ходить по сохранённому публичному URL.
func (h *UploadHandler) ServeMedia(w http.ResponseWriter, r *http.Request) {
	claims, ok := principal(w, r)
	if !ok {
		return
	}

	userID := chi.URLParam(r, "user_id")
	filename := chi.URLParam(r, "filename")

	// чужой namespace неотличим от отсутствующего файла
	if userID != claims.UserID {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}

	local, ok := h.Store.(*storage.LocalStore)
	if !ok {
		http.Error(w, "media served from cloud storage", http.StatusNotFound)
		return
	}

	if filename == "" || strings.Contains(filename, "..") {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}

	http.ServeFile(w, r, filepath.Join(local.Root(), userID, filename))
}
