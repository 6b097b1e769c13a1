package repo

import (
	"context"
	"recollect/internal/model"
	"strings"
	"time"

	"gorm.io/gorm"
)

// UserStats — агрегированная статистика по записям пользователя.
type UserStats struct {
	TotalEntries    int64 `json:"total_entries"`
	TotalSubjects   int64 `json:"total_subjects"`
	UniqueDays      int64 `json:"unique_days"`
	TotalCharacters int64 `json:"total_characters"`
}

// EntryRepository определяет контракт доступа к Entry.
// Все выборки скоупятся по userID: чужая запись неотличима от отсутствующей
// (gorm.ErrRecordNotFound), маскировка принадлежности получается сама собой.
type EntryRepository interface {
	Create(ctx context.Context, entry *model.Entry) error

	// GetByID возвращает запись с прикреплённой media.
	GetByID(ctx context.Context, userID string, id uint) (*model.Entry, error)

	// ListByUser — все записи пользователя, свежие первыми.
	ListByUser(ctx context.Context, userID string) ([]model.Entry, error)

	// UpdateFields применяет частичное обновление (только переданные колонки).
	// Возвращает число затронутых строк: 0 — записи нет или она чужая.
	UpdateFields(ctx context.Context, userID string, id uint, updates map[string]any) (int64, error)

	// Delete удаляет запись; media-строки удаляются каскадом.
	Delete(ctx context.Context, userID string, id uint) (int64, error)

	// Search — регистронезависимый поиск подстроки в content и title.
	Search(ctx context.Context, userID string, query string) ([]model.Entry, error)

	ListBySubject(ctx context.Context, userID string, subject string) ([]model.Entry, error)
	Subjects(ctx context.Context, userID string) ([]string, error)
	Stats(ctx context.Context, userID string) (*UserStats, error)
}

type entryRepo struct {
	db *gorm.DB
}

// NewEntryRepository создаёт реализацию репозитория для Entry.
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &entryRepo{db: db}
}

func (r *entryRepo) Create(ctx context.Context, entry *model.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *entryRepo) GetByID(ctx context.Context, userID string, id uint) (*model.Entry, error) {
	var e model.Entry
	err := r.db.WithContext(ctx).
		Preload("Media").
		Where("user_id = ? AND id = ?", userID, id).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *entryRepo) ListByUser(ctx context.Context, userID string) ([]model.Entry, error) {
	var entries []model.Entry
	err := r.db.WithContext(ctx).
		Preload("Media").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *entryRepo) UpdateFields(ctx context.Context, userID string, id uint, updates map[string]any) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	updates["updated_at"] = time.Now().UTC()
	tx := r.db.WithContext(ctx).Model(&model.Entry{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(updates)
	return tx.RowsAffected, tx.Error
}

func (r *entryRepo) Delete(ctx context.Context, userID string, id uint) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.Entry{})
	return tx.RowsAffected, tx.Error
}

func (r *entryRepo) Search(ctx context.Context, userID string, query string) ([]model.Entry, error) {
	// LOWER с обеих сторон: LIKE в PostgreSQL регистрозависимый, в SQLite — нет.
	pattern := "%" + strings.ToLower(query) + "%"
	var entries []model.Entry
	err := r.db.WithContext(ctx).
		Preload("Media").
		Where("user_id = ? AND (LOWER(content) LIKE ? OR LOWER(title) LIKE ?)", userID, pattern, pattern).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *entryRepo) ListBySubject(ctx context.Context, userID string, subject string) ([]model.Entry, error) {
	var entries []model.Entry
	err := r.db.WithContext(ctx).
		Preload("Media").
		Where("user_id = ? AND subject = ?", userID, subject).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *entryRepo) Subjects(ctx context.Context, userID string) ([]string, error) {
	var subjects []string
	err := r.db.WithContext(ctx).Model(&model.Entry{}).
		Where("user_id = ?", userID).
		Distinct("subject").
		Order("subject").
		Pluck("subject", &subjects).Error
	if err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *entryRepo) Stats(ctx context.Context, userID string) (*UserStats, error) {
	var s UserStats
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_entries,
			COUNT(DISTINCT subject) AS total_subjects,
			COUNT(DISTINCT entry_date) AS unique_days,
			COALESCE(SUM(LENGTH(COALESCE(content, ''))), 0) AS total_characters
		FROM entries
		WHERE user_id = ?`, userID).Scan(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}
