package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"digieventos/config"
	"digieventos/internal/domain"
)

// NewFileStore creates a file store from config. Provider "s3" targets any
// S3-compatible backend (AWS S3, MinIO); "noop" or unknown uses a no-op store.
func NewFileStore(cfg config.StorageConfig) (domain.FileStore, error) {
	switch cfg.Provider {
	case "s3":
		awsCfg := aws.Config{
			Region: cfg.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					cfg.AccessKey,
					cfg.SecretKey,
					"",
				),
			),
		}
		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.UsePathStyle
		})
		return &s3Store{
			client:   client,
			bucket:   cfg.Bucket,
			endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		}, nil
	case "noop":
		return &noopStore{}, nil
	default:
		log.Printf("[STORAGE] Unknown storage provider %q, using noop", cfg.Provider)
		return &noopStore{}, nil
	}
}

type s3Store struct {
	client   *s3.Client
	bucket   string
	endpoint string
}

func extFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	default:
		return ".bin"
	}
}

func (s *s3Store) Upload(ctx context.Context, data []byte, contentType, folder string) (string, error) {
	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), extFor(contentType))
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key), nil
}

func (s *s3Store) Delete(ctx context.Context, url string) error {
	prefix := fmt.Sprintf("%s/%s/", s.endpoint, s.bucket)
	if !strings.HasPrefix(url, prefix) {
		return fmt.Errorf("url %q does not belong to bucket %q", url, s.bucket)
	}
	key := strings.TrimPrefix(url, prefix)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// noopStore discards uploads. It keeps local development working without an
// object store; the returned URLs are not resolvable.
type noopStore struct{}

func (n *noopStore) Upload(_ context.Context, _ []byte, contentType, folder string) (string, error) {
	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), extFor(contentType))
	log.Printf("[STORAGE] noop upload %s", key)
	return "noop://" + key, nil
}

func (n *noopStore) Delete(_ context.Context, url string) error {
	log.Printf("[STORAGE] noop delete %s", url)
	return nil
}
