package auth

import (
	"errors"
	"os"
	"path/filepath"
)

// userPath — путь к файлу с id текущего пользователя.
func userPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "user_id"), nil
}

// SaveUserID сохраняет id пользователя как текущий контекст CLI.
// Нужен для маршрутов вида /api/users/{id}/...
func SaveUserID(userID string) error {
	if userID == "" {
		return errors.New("empty user id")
	}
	p, err := userPath()
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(userID), 0o600)
}

// LoadUserID читает сохранённый id пользователя.
func LoadUserID() (string, error) {
	p, err := userPath()
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	b = trimTrailing(b)
	if len(b) == 0 {
		return "", errors.New("no stored user id, login first")
	}
	return string(b), nil
}
