package handlers

import (
	"net/http"
	"time"

	"recollect/internal/config"
	"recollect/internal/service"

	"go.uber.org/zap"
)

// AdminHandler — маршруты, доступные только email из allow-list.
type AdminHandler struct {
	UserService  *service.UserService
	EntryService *service.EntryService
	Logger       *zap.SugaredLogger
	Config       *config.Config
}

// NewAdminHandler создаёт админский хендлер
func NewAdminHandler(userService *service.UserService, entryService *service.EntryService, logger *zap.SugaredLogger, cfg *config.Config) *AdminHandler {
	return &AdminHandler{UserService: userService, EntryService: entryService, Logger: logger, Config: cfg}
}

type adminUserDTO struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	CreatedAt    string `json:"created_at"`
	TotalEntries int64  `json:"total_entries"`
}

// ListUsers отдаёт всех пользователей со счётчиком записей.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	claims, ok := principal(w, r)
	if !ok {
		return
	}
	if !h.Config.IsAdmin(claims.Email) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	users, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		h.Logger.Errorw("ListUsers: service error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	out := make([]adminUserDTO, 0, len(users))
	for _, u := range users {
		stats, err := h.EntryService.Stats(r.Context(), u.UserID)
		if err != nil {
			h.Logger.Errorw("ListUsers: stats error", "user_id", u.UserID, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out = append(out, adminUserDTO{
			UserID:       u.UserID,
			Email:        u.Email,
			CreatedAt:    u.CreatedAt.UTC().Format(time.RFC3339),
			TotalEntries: stats.TotalEntries,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
