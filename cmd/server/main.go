package main

import (
	"context"
	"net/http"

	"recollect/internal/config"
	"recollect/internal/handlers"
	"recollect/internal/middleware"
	"recollect/internal/repo"
	"recollect/internal/service"
	"recollect/internal/storage"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	if cfg.GeneratedSecret {
		sugar.Warnw("AUTH_SECRET not set, generated a temporary secret: tokens will not survive restart")
	}

	ctx := context.Background()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	// Бэкенд хранилища выбирается один раз на старте
	var store storage.Store
	if cfg.CloudEnabled() {
		r2, err := storage.NewR2Store(ctx, storage.R2Config{
			Endpoint:  cfg.R2Endpoint,
			AccessKey: cfg.R2AccessKey,
			SecretKey: cfg.R2SecretKey,
			Bucket:    cfg.R2Bucket,
			PublicURL: cfg.R2PublicURL,
		})
		if err != nil {
			sugar.Fatalw("failed to initialize cloud storage", "error", err)
		}
		store = r2
		sugar.Infow("cloud storage enabled", "bucket", cfg.R2Bucket)
	} else {
		store = storage.NewLocalStore(cfg.UploadDir)
		sugar.Infow("cloud storage not configured, using local uploads", "dir", cfg.UploadDir)
	}

	userRepo := repo.NewUserRepository(gormDB)
	entryRepo := repo.NewEntryRepository(gormDB)
	mediaRepo := repo.NewMediaRepository(gormDB)

	userService := service.NewUserService(userRepo)
	entryService := service.NewEntryService(entryRepo, mediaRepo, store, sugar)
	ocrService := service.NewOCRService(cfg.OCRServiceURL, cfg.OCRTimeout, sugar)

	h := handlers.NewHandler(userService, entryService, ocrService, store, sugar, cfg)

	sugar.Infow(
		"Starting server",
		"addr", cfg.RunAddr,
		"ocr_configured", ocrService.Configured(),
		"cloud_storage", store.Cloud(),
	)

	if err := http.ListenAndServe(cfg.RunAddr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
