package storage

import (
	"bytes"
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2Config — настройки S3-совместимого бэкенда.
type R2Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	// PublicURL — кастомный домен для публичных ссылок; если пуст,
	// URL собирается из endpoint и bucket.
	PublicURL string
}

// Enabled — бэкенд включён, когда заданы endpoint и креденшалы.
func (c R2Config) Enabled() bool {
	return c.Endpoint != "" && c.AccessKey != "" && c.SecretKey != ""
}

// R2Store кладёт объекты в S3-совместимый bucket (Cloudflare R2, MinIO).
type R2Store struct {
	client *s3.Client
	cfg    R2Config
}

var _ Store = (*R2Store)(nil)

// NewR2Store создаёт клиент S3 со статическими креденшалами и кастомным endpoint.
func NewR2Store(ctx context.Context, cfg R2Config) (*R2Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
	})

	return &R2Store{client: client, cfg: cfg}, nil
}

func (s *R2Store) Upload(ctx context.Context, key string, contentType string, data []byte) (string, error) {
	if contentType == "" {
		contentType = ContentTypeFor(key)
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return s.PublicURL(key), nil
}

// PublicURL собирает публичную ссылку на объект.
func (s *R2Store) PublicURL(key string) string {
	if s.cfg.PublicURL != "" {
		return strings.TrimSuffix(s.cfg.PublicURL, "/") + "/" + key
	}
	return strings.TrimSuffix(s.cfg.Endpoint, "/") + "/" + s.cfg.Bucket + "/" + key
}

func (s *R2Store) Delete(ctx context.Context, pathOrURL string) error {
	key := s.keyFromPath(pathOrURL)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	return err
}

// keyFromPath нормализует полный URL до ключа в bucket.
func (s *R2Store) keyFromPath(pathOrURL string) string {
	if !strings.HasPrefix(pathOrURL, "http") {
		return pathOrURL
	}
	if parts := strings.SplitN(pathOrURL, s.cfg.Bucket+"/", 2); len(parts) == 2 {
		return parts[1]
	}
	if s.cfg.PublicURL != "" {
		return strings.TrimPrefix(strings.TrimPrefix(pathOrURL, strings.TrimSuffix(s.cfg.PublicURL, "/")), "/")
	}
	return pathOrURL
}

func (s *R2Store) Cloud() bool {
	return true
}
