package model

import "time"

// Entry — заметка пользователя.
type Entry struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"not null;index:idx_user_entries;type:uuid" json:"user_id"` // ссылка на users.user_id

	// Связи
	User *User `gorm:"foreignKey:UserID;references:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Content string `json:"content"`
	Title   string `json:"title"`
	Subject string `gorm:"default:General;index:idx_subject" json:"subject"`

	EntryDate time.Time `gorm:"index:idx_entry_date" json:"entry_date"`

	// Media загружается отдельно; удаляется каскадно вместе с записью.
	Media []Media `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
