package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"recollect/internal/model"
	"recollect/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EntryHandler обрабатывает CRUD, поиск и статистику записей.
type EntryHandler struct {
	EntryService *service.EntryService
	Logger       *zap.SugaredLogger
}

// NewEntryHandler создаёт хендлер записей
func NewEntryHandler(entryService *service.EntryService, logger *zap.SugaredLogger) *EntryHandler {
	return &EntryHandler{EntryService: entryService, Logger: logger}
}

// CreateEntryRequest — вход создания записи. user_id опционален и обязан
// совпадать с principal: владельцем всегда становится владелец токена.
type CreateEntryRequest struct {
	UserID     string   `json:"user_id,omitempty"`
	Content    string   `json:"content"`
	Title      string   `json:"title,omitempty"`
	Subject    string   `json:"subject,omitempty"`
	EntryDate  string   `json:"entry_date,omitempty"` // YYYY-MM-DD
	MediaPaths []string `json:"media_paths,omitempty"`
}

// UpdateEntryRequest — частичное обновление: отсутствующее поле не трогается.
type UpdateEntryRequest struct {
	Content *string `json:"content,omitempty"`
	Title   *string `json:"title,omitempty"`
	Subject *string `json:"subject,omitempty"`
}

// EntryDTO — запись в HTTP-ответе.
type EntryDTO struct {
	ID         uint      `json:"id"`
	UserID     string    `json:"user_id"`
	Content    string    `json:"content"`
	Title      string    `json:"title"`
	Subject    string    `json:"subject"`
	EntryDate  string    `json:"entry_date"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	MediaPaths []string  `json:"media_paths"`
}

func toEntryDTO(e *model.Entry) EntryDTO {
	paths := make([]string, 0, len(e.Media))
	for _, m := range e.Media {
		paths = append(paths, m.FilePath)
	}
	return EntryDTO{
		ID:         e.ID,
		UserID:     e.UserID,
		Content:    e.Content,
		Title:      e.Title,
		Subject:    e.Subject,
		EntryDate:  e.EntryDate.Format("2006-01-02"),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
		MediaPaths: paths,
	}
}

func toEntryDTOs(entries []model.Entry) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for i := range entries {
		out = append(out, toEntryDTO(&entries[i]))
	}
	return out
}

// Create создаёт запись с опциональными media-путями.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := principal(w, r)
	if !ok {
		return
	}

	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Create: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Content == "" {
		http.Error(w, "content is required", http.StatusBadRequest)
		return
	}
	if req.UserID != "" && req.UserID != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	in := service.EntryInput{
		Content:    req.Content,
		Title:      req.Title,
		Subject:    req.Subject,
		MediaPaths: req.MediaPaths,
	}
	if req.EntryDate != "" {
		d, err := time.Parse("2006-01-02", req.EntryDate)
		if err != nil {
			http.Error(w, "invalid entry_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		in.EntryDate = &d
	}

	entry, err := h.EntryService.Create(r.Context(), claims.UserID, in)
	if err != nil {
		h.Logger.Errorw("Create: service error", "user_id", claims.UserID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, toEntryDTO(entry))
}

// List отдаёт записи владельца токена, свежие первыми.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := principal(w, r)
	if !ok {
		return
	}

	entries, err := h.EntryService.List(r.Context(), claims.UserID)
	if err != nil {
		h.Logger.Errorw("List: service error", "user_id", claims.UserID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTOs(entries))
}

// Get отдаёт одну запись. Чужая запись — 404, как и отсутствующая.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	entry, err := h.EntryService.Get(r.Context(), claims.UserID, id)
	if err != nil {
		h.entryError(w, "Get", claims.UserID, id, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTO(entry))
}

// Update применяет частичное обновление.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	var req UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Update: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	entry, err := h.EntryService.Update(r.Context(), claims.UserID, id, service.EntryPatch{
		Content: req.Content,
		Title:   req.Title,
		Subject: req.Subject,
	})
	if err != nil {
		h.entryError(w, "Update", claims.UserID, id, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTO(entry))
}

// Delete удаляет запись вместе с media и их блобами.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	if err := h.EntryService.Delete(r.Context(), claims.UserID, id); err != nil {
		h.entryError(w, "Delete", claims.UserID, id, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// UserEntries — записи пользователя из пути; чужой id — 403.
func (h *EntryHandler) UserEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathUser(w, r)
	if !ok {
		return
	}
	entries, err := h.EntryService.List(r.Context(), userID)
	if err != nil {
		h.Logger.Errorw("UserEntries: service error", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTOs(entries))
}

// UserStats — статистика пользователя из пути.
func (h *EntryHandler) UserStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathUser(w, r)
	if !ok {
		return
	}
	stats, err := h.EntryService.Stats(r.Context(), userID)
	if err != nil {
		h.Logger.Errorw("UserStats: service error", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// UserSubjects — уникальные subject пользователя.
func (h *EntryHandler) UserSubjects(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathUser(w, r)
	if !ok {
		return
	}
	subjects, err := h.EntryService.Subjects(r.Context(), userID)
	if err != nil {
		h.Logger.Errorw("UserSubjects: service error", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, subjects)
}

// UserEntriesBySubject — записи с данным subject.
func (h *EntryHandler) UserEntriesBySubject(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathUser(w, r)
	if !ok {
		return
	}
	subject := chi.URLParam(r, "subject")
	entries, err := h.EntryService.BySubject(r.Context(), userID, subject)
	if err != nil {
		h.Logger.Errorw("UserEntriesBySubject: service error", "user_id", userID, "subject", subject, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTOs(entries))
}

// Search — поиск подстроки в content/title, без ранжирования, свежие первыми.
func (h *EntryHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathUser(w, r)
	if !ok {
		return
	}
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "query parameter q is required", http.StatusBadRequest)
		return
	}

	entries, err := h.EntryService.Search(r.Context(), userID, query)
	if err != nil {
		h.Logger.Errorw("Search: service error", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTOs(entries))
}

// pathUser сверяет {id} из пути с principal: несовпадение — 403.
func (h *EntryHandler) pathUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := principal(w, r)
	if !ok {
		return "", false
	}
	userID := chi.URLParam(r, "id")
	if userID != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return "", false
	}
	return userID, true
}

func entryID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		http.Error(w, "invalid entry id", http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
}

func (h *EntryHandler) entryError(w http.ResponseWriter, op, userID string, id uint, err error) {
	if errors.Is(err, service.ErrEntryNotFound) {
		http.Error(w, "entry not found", http.StatusNotFound)
		return
	}
	h.Logger.Errorw(op+": service error", "user_id", userID, "entry_id", id, "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
