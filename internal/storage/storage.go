// Package storage — объектное хранилище для media-файлов.
// Бэкенд выбирается один раз на старте процесса: S3-совместимое облако
// (Cloudflare R2, MinIO), если заданы креденшалы, иначе локальный диск.
package storage

import (
	"context"
	"mime"
	"path/filepath"

	"github.com/google/uuid"
)

// Store — контракт хранилища: положить и удалить байты по ключу.
type Store interface {
	// Upload сохраняет данные под ключом и возвращает путь/URL файла,
	// который записывается в media.file_path.
	Upload(ctx context.Context, key string, contentType string, data []byte) (string, error)

	// Delete принимает ключ или полный URL. Отсутствующий объект — не ошибка.
	Delete(ctx context.Context, pathOrURL string) error

	// Cloud сообщает, облачный ли бэкенд (меняет поведение /api/media).
	Cloud() bool
}

// MakeObjectKey генерирует ключ {userID}/{uuid}{ext}.
// Ключ всегда строится от id аутентифицированного пользователя —
// клиентскому owner id доверять нельзя (запись в чужой namespace).
func MakeObjectKey(userID, filename string) string {
	return userID + "/" + uuid.NewString() + filepath.Ext(filename)
}

// ContentTypeFor определяет MIME-тип по расширению имени файла.
func ContentTypeFor(filename string) string {
	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
