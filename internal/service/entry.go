package service

import (
	"context"
	"errors"
	"time"

	"recollect/internal/model"
	"recollect/internal/repo"
	"recollect/internal/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrEntryNotFound — записи нет или она принадлежит другому пользователю.
// Чужая запись намеренно неотличима от отсутствующей.
var ErrEntryNotFound = errors.New("entry not found")

// EntryInput — данные создания записи.
type EntryInput struct {
	Content    string
	Title      string
	Subject    string
	EntryDate  *time.Time
	MediaPaths []string
}

// EntryPatch — частичное обновление: nil-поле не трогаем.
type EntryPatch struct {
	Content *string
	Title   *string
	Subject *string
}

// EntryService инкапсулирует бизнес-логику работы с записями и их media.
type EntryService struct {
	entries repo.EntryRepository
	media   repo.MediaRepository
	store   storage.Store
	logger  *zap.SugaredLogger
}

func NewEntryService(entries repo.EntryRepository, media repo.MediaRepository, store storage.Store, logger *zap.SugaredLogger) *EntryService {
	return &EntryService{entries: entries, media: media, store: store, logger: logger}
}

// Create создаёт запись, затем по одной media-строке на каждый путь.
// Два шага без транзакции: падение между ними оставляет запись без media.
func (s *EntryService) Create(ctx context.Context, userID string, in EntryInput) (*model.Entry, error) {
	subject := in.Subject
	if subject == "" {
		subject = "General"
	}
	entryDate := time.Now().UTC().Truncate(24 * time.Hour)
	if in.EntryDate != nil {
		entryDate = *in.EntryDate
	}

	entry := &model.Entry{
		UserID:    userID,
		Content:   in.Content,
		Title:     in.Title,
		Subject:   subject,
		EntryDate: entryDate,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}

	for _, path := range in.MediaPaths {
		m := &model.Media{EntryID: entry.ID, MediaType: "image", FilePath: path}
		if err := s.media.Add(ctx, m); err != nil {
			return nil, err
		}
		entry.Media = append(entry.Media, *m)
	}
	return entry, nil
}

// Get возвращает запись пользователя вместе с media.
func (s *EntryService) Get(ctx context.Context, userID string, id uint) (*model.Entry, error) {
	entry, err := s.entries.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

// List — все записи пользователя, свежие первыми.
func (s *EntryService) List(ctx context.Context, userID string) ([]model.Entry, error) {
	return s.entries.ListByUser(ctx, userID)
}

// Update применяет частичное обновление и возвращает обновлённую запись.
// updated_at обновляется, только если передано хоть одно поле.
func (s *EntryService) Update(ctx context.Context, userID string, id uint, patch EntryPatch) (*model.Entry, error) {
	updates := map[string]any{}
	if patch.Content != nil {
		updates["content"] = *patch.Content
	}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Subject != nil {
		updates["subject"] = *patch.Subject
	}

	if len(updates) > 0 {
		affected, err := s.entries.UpdateFields(ctx, userID, id, updates)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, ErrEntryNotFound
		}
	}
	return s.Get(ctx, userID, id)
}

// Delete освобождает блобы всех media записи, затем удаляет строку БД
// (media-строки каскадом). Ошибка удаления блоба логируется и не
// откатывает удаление записи.
func (s *EntryService) Delete(ctx context.Context, userID string, id uint) error {
	entry, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	for _, m := range entry.Media {
		if err := s.store.Delete(ctx, m.FilePath); err != nil {
			s.logger.Warnw("failed to delete media blob",
				"entry_id", id, "file_path", m.FilePath, "error", err)
		}
	}

	affected, err := s.entries.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// Search — регистронезависимый поиск подстроки по content и title.
func (s *EntryService) Search(ctx context.Context, userID string, query string) ([]model.Entry, error) {
	return s.entries.Search(ctx, userID, query)
}

// BySubject — записи пользователя с данным subject.
func (s *EntryService) BySubject(ctx context.Context, userID string, subject string) ([]model.Entry, error) {
	return s.entries.ListBySubject(ctx, userID, subject)
}

// Subjects — отсортированный список уникальных subject пользователя.
func (s *EntryService) Subjects(ctx context.Context, userID string) ([]string, error) {
	return s.entries.Subjects(ctx, userID)
}

// Stats — агрегированная статистика пользователя.
func (s *EntryService) Stats(ctx context.Context, userID string) (*repo.UserStats, error) {
	return s.entries.Stats(ctx, userID)
}
