package config

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	RunAddr     string        `env:"RUN_ADDRESS"`
	DatabaseDSN string        `env:"DATABASE_URL"`
	AuthSecret  string        `env:"AUTH_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL"`

	// CORS
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// Object storage: при заполненных R2-креденшалах включается облако,
	// иначе файлы пишутся в UploadDir.
	R2Endpoint  string `env:"R2_ENDPOINT"`
	R2AccessKey string `env:"R2_ACCESS_KEY_ID"`
	R2SecretKey string `env:"R2_SECRET_ACCESS_KEY"`
	R2Bucket    string `env:"R2_BUCKET"`
	R2PublicURL string `env:"R2_PUBLIC_URL"`
	UploadDir   string `env:"UPLOAD_DIR"`
	MaxUploadMB int    `env:"MAX_UPLOAD_MB"`

	// OCR-прокси
	OCRServiceURL string        `env:"OCR_SERVICE_URL"`
	OCRTimeout    time.Duration `env:"OCR_TIMEOUT"`

	// Админский allow-list (email)
	AdminEmails []string `env:"ADMIN_EMAILS" envSeparator:","`

	// CLI-клиент
	BaseURL   string `env:"BASE_URL"`
	ServerURL string `env:"-"` // BaseURL со схемой, вычисляется
	TokenFile string `env:"TOKEN_FILE"`
	Version   bool   `env:"-"` // показать версию клиента и выйти (только флаг)

	// GeneratedSecret — секрет сгенерирован на старте (dev-режим):
	// все ранее выданные токены перестают действовать при рестарте.
	GeneratedSecret bool `env:"-"`
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.RunAddr, "a", cfg.RunAddr, "адрес и порт сервера")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.UploadDir, "upload-dir", cfg.UploadDir, "директория локальных загрузок")
	flag.StringVar(&cfg.OCRServiceURL, "ocr-url", cfg.OCRServiceURL, "URL внешнего OCR-сервиса")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "адрес сервера для CLI (host:port или полный URL)")
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "путь к файлу auth-токена (CLI)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "показать версию клиента и выйти")
	flag.Parse()

	// Defaults
	if cfg.RunAddr == "" {
		cfg.RunAddr = "localhost:8000"
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 7 * 24 * time.Hour
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 10
	}
	if cfg.OCRTimeout <= 0 {
		cfg.OCRTimeout = 60 * time.Second
	}
	if cfg.R2Bucket == "" {
		cfg.R2Bucket = "notes-app-uploads"
	}

	if cfg.AuthSecret == "" {
		cfg.AuthSecret = randomSecret()
		cfg.GeneratedSecret = true
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = cfg.RunAddr
	}
	if strings.HasPrefix(cfg.BaseURL, "http://") || strings.HasPrefix(cfg.BaseURL, "https://") {
		cfg.ServerURL = cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	return cfg
}

// CloudEnabled — настроено ли облачное хранилище.
func (c *Config) CloudEnabled() bool {
	return c.R2Endpoint != "" && c.R2AccessKey != "" && c.R2SecretKey != ""
}

// IsAdmin проверяет email по allow-list.
func (c *Config) IsAdmin(email string) bool {
	for _, admin := range c.AdminEmails {
		if admin == email {
			return true
		}
	}
	return false
}

func randomSecret() string {
	b := make([]byte, 64)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
