package repo

import (
	"context"
	"recollect/internal/model"

	"gorm.io/gorm"
)

// MediaRepository — минимальный контракт доступа к Media.
// Media создаётся и читается; обновлений нет, удаление — каскадом от Entry.
type MediaRepository interface {
	Add(ctx context.Context, media *model.Media) error
	ListByEntry(ctx context.Context, entryID uint) ([]model.Media, error)
}

type mediaRepo struct {
	db *gorm.DB
}

// NewMediaRepository создаёт реализацию репозитория для Media.
func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepo{db: db}
}

func (r *mediaRepo) Add(ctx context.Context, media *model.Media) error {
	return r.db.WithContext(ctx).Create(media).Error
}

func (r *mediaRepo) ListByEntry(ctx context.Context, entryID uint) ([]model.Media, error) {
	var media []model.Media
	err := r.db.WithContext(ctx).
		Where("entry_id = ?", entryID).
		Order("created_at").
		Find(&media).Error
	if err != nil {
		return nil, err
	}
	return media, nil
}
