package repo

import (
	"recollect/internal/model"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// InitDB открывает подключение по DSN и выполняет миграции.
// postgres:// и host=... — PostgreSQL, всё остальное — файл SQLite (modernc, без CGO).
func InitDB(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		dial = postgres.Open(dsn)
	} else {
		if dsn == "" {
			dsn = "recollect.db"
		}
		// SQLite без этой прагмы не проверяет внешние ключи и не каскадирует
		// удаления; прагма в DSN действует на каждое соединение пула.
		if !strings.Contains(dsn, "_pragma") {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + "_pragma=foreign_keys(1)"
		}
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&model.User{}, &model.Entry{}, &model.Media{}); err != nil {
		return nil, err
	}
	return db, nil
}

// IsUniqueViolation распознаёт нарушение уникального ограничения для обоих движков.
// Дубликат email определяется по ошибке вставки, а не предварительной проверкой —
// иначе гонка между проверкой и вставкой.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "duplicated key")
}
