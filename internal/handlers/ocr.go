package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"recollect/internal/config"
	"recollect/internal/service"

	"go.uber.org/zap"
)

// OCRHandler транслирует загрузки во внешний OCR-сервис.
type OCRHandler struct {
	OCRService *service.OCRService
	Logger     *zap.SugaredLogger
	Config     *config.Config
}

// NewOCRHandler создаёт хендлер OCR-прокси
func NewOCRHandler(ocrService *service.OCRService, logger *zap.SugaredLogger, cfg *config.Config) *OCRHandler {
	return &OCRHandler{OCRService: ocrService, Logger: logger, Config: cfg}
}

// Extract пересылает одно изображение и возвращает JSON апстрима как есть.
func (h *OCRHandler) Extract(w http.ResponseWriter, r *http.Request) {
	files, ok := h.readFiles(w, r, "file", 1)
	if !ok {
		return
	}

	result, err := h.OCRService.Extract(r.Context(), files[0])
	h.relay(w, result, err)
}

// ExtractMultiple пересылает пачку изображений.
func (h *OCRHandler) ExtractMultiple(w http.ResponseWriter, r *http.Request) {
	files, ok := h.readFiles(w, r, "files", 0)
	if !ok {
		return
	}

	result, err := h.OCRService.ExtractMultiple(r.Context(), files)
	h.relay(w, result, err)
}

func (h *OCRHandler) readFiles(w http.ResponseWriter, r *http.Request, field string, limit int) ([]service.OCRFile, bool) {
	maxBody := int64(h.Config.MaxUploadMB)*1024*1024*4 + 1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		h.Logger.Warnw("OCR: invalid multipart form", "error", err)
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return nil, false
	}

	var headers []*multipart.FileHeader
	if r.MultipartForm != nil {
		headers = r.MultipartForm.File[field]
	}
	if len(headers) == 0 {
		http.Error(w, "missing "+field, http.StatusBadRequest)
		return nil, false
	}
	if limit > 0 && len(headers) > limit {
		headers = headers[:limit]
	}

	files := make([]service.OCRFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			h.Logger.Warnw("OCR: failed to open upload", "filename", fh.Filename, "error", err)
			http.Error(w, "failed to read file", http.StatusBadRequest)
			return nil, false
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			http.Error(w, "failed to read file", http.StatusBadRequest)
			return nil, false
		}
		files = append(files, service.OCRFile{Filename: fh.Filename, Data: data})
	}
	return files, true
}

// relay отдаёт клиенту статус и тело апстрима без изменений.
func (h *OCRHandler) relay(w http.ResponseWriter, result *service.OCRResult, err error) {
	if err != nil {
		if errors.Is(err, service.ErrOCRUnavailable) {
			http.Error(w, "OCR service not available", http.StatusServiceUnavailable)
			return
		}
		h.Logger.Errorw("OCR: relay error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(result.Status)
	_, _ = w.Write(result.Body)
}
