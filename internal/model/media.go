package model

import "time"

// Media — файл (изображение), прикреплённый к записи.
// Записи media никогда не обновляются: только создание и каскадное удаление.
type Media struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	EntryID uint `gorm:"not null;index" json:"entry_id"`

	MediaType string `gorm:"not null" json:"media_type"`
	FilePath  string `gorm:"not null" json:"file_path"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
