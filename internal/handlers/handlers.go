package handlers

import (
	"encoding/json"
	"net/http"

	"recollect/internal/config"
	"recollect/internal/middleware"
	"recollect/internal/service"
	"recollect/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	entryService *service.EntryService,
	ocrService *service.OCRService,
	store storage.Store,
	logger *zap.SugaredLogger,
	cfg *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		}))
	}
	r.Use(middleware.WithAuth(cfg.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, cfg)
	entryHandler := NewEntryHandler(entryService, logger)
	uploadHandler := NewUploadHandler(store, logger, cfg)
	ocrHandler := NewOCRHandler(ocrService, logger, cfg)
	adminHandler := NewAdminHandler(userService, entryService, logger, cfg)
	healthHandler := NewHealthHandler(store, ocrService)

	// Auth routes
	r.Post("/api/auth/signup", userHandler.Signup)
	r.Post("/api/auth/login", userHandler.Login)
	r.Post("/api/auth/reset-password", userHandler.ResetPassword)

	// Entry routes
	r.Post("/api/entries", entryHandler.Create)
	r.Get("/api/entries", entryHandler.List)
	r.Get("/api/entries/{id}", entryHandler.Get)
	r.Put("/api/entries/{id}", entryHandler.Update)
	r.Delete("/api/entries/{id}", entryHandler.Delete)

	// User-scoped routes
	r.Get("/api/users/{id}/entries", entryHandler.UserEntries)
	r.Get("/api/users/{id}/stats", entryHandler.UserStats)
	r.Get("/api/users/{id}/subjects", entryHandler.UserSubjects)
	r.Get("/api/users/{id}/subjects/{subject}", entryHandler.UserEntriesBySubject)
	r.Get("/api/users/{id}/search", entryHandler.Search)

	// Uploads / media
	r.Post("/api/upload/image", uploadHandler.UploadImage)
	r.Get("/api/media/{user_id}/{filename}", uploadHandler.ServeMedia)

	// OCR relay
	r.Post("/api/ocr/extract", ocrHandler.Extract)
	r.Post("/api/ocr/extract-multiple", ocrHandler.ExtractMultiple)

	// Admin
	r.Get("/api/admin/users", adminHandler.ListUsers)

	r.Get("/api/health", healthHandler.Health)

	return &Handler{Router: r}
}

// writeJSON сериализует ответ; ошибку кодирования уже не исправить, игнорируем.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// principal достаёт клеймы из контекста; без них пишет 401 и возвращает false.
func principal(w http.ResponseWriter, r *http.Request) (*middleware.Claims, bool) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	return claims, true
}

// HealthHandler отвечает на проверку живости.
type HealthHandler struct {
	store storage.Store
	ocr   *service.OCRService
}

func NewHealthHandler(store storage.Store, ocr *service.OCRService) *HealthHandler {
	return &HealthHandler{store: store, ocr: ocr}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "healthy",
		"database":      "connected",
		"cloud_storage": h.store.Cloud(),
		"ocr_available": h.ocr.Configured(),
	})
}
