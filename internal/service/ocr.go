package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrOCRUnavailable — OCR-сервис не сконфигурирован или недоступен.
var ErrOCRUnavailable = errors.New("ocr service unavailable")

// OCRFile — одно изображение для распознавания.
type OCRFile struct {
	Filename string
	Data     []byte
}

// OCRResult — ответ апстрима, отдаётся клиенту как есть.
type OCRResult struct {
	Status int
	Body   []byte
}

// OCRService — stateless-прокси к внешнему OCR-микросервису.
// Никаких ретраев и локального фолбэка: ошибка апстрима транслируется клиенту.
type OCRService struct {
	baseURL string
	client  *http.Client
	logger  *zap.SugaredLogger
}

func NewOCRService(baseURL string, timeout time.Duration, logger *zap.SugaredLogger) *OCRService {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OCRService{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Configured — задан ли URL апстрима.
func (s *OCRService) Configured() bool {
	return s.baseURL != ""
}

// Extract отправляет одно изображение на /extract.
func (s *OCRService) Extract(ctx context.Context, file OCRFile) (*OCRResult, error) {
	return s.forward(ctx, "/extract", "file", []OCRFile{file})
}

// ExtractMultiple отправляет пачку изображений на /extract-multiple.
func (s *OCRService) ExtractMultiple(ctx context.Context, files []OCRFile) (*OCRResult, error) {
	return s.forward(ctx, "/extract-multiple", "files", files)
}

func (s *OCRService) forward(ctx context.Context, path, field string, files []OCRFile) (*OCRResult, error) {
	if !s.Configured() {
		return nil, ErrOCRUnavailable
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := mw.CreateFormFile(field, f.Filename)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warnw("ocr upstream unreachable", "url", s.baseURL+path, "error", err)
		return nil, ErrOCRUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &OCRResult{Status: resp.StatusCode, Body: body}, nil
}
