package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore пишет файлы под корневой директорией загрузок.
type LocalStore struct {
	root string
}

var _ Store = (*LocalStore)(nil)

// NewLocalStore создаёт локальное хранилище с корнем root.
func NewLocalStore(root string) *LocalStore {
	if root == "" {
		root = "uploads"
	}
	return &LocalStore{root: root}
}

// Root возвращает корневую директорию (для отдачи файлов через /api/media).
func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) Upload(_ context.Context, key string, _ string, data []byte) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err
	}
	// клиент ходит за файлом через API, а не по пути на диске
	return "/api/media/" + key, nil
}

func (s *LocalStore) Delete(_ context.Context, pathOrURL string) error {
	key := strings.TrimPrefix(pathOrURL, "/api/media/")
	full := filepath.Join(s.root, filepath.FromSlash(key))
	err := os.Remove(full)
	if err != nil && os.IsNotExist(err) {
		// удаление отсутствующего файла — no-op
		return nil
	}
	return err
}

func (s *LocalStore) Cloud() bool {
	return false
}
