package minio

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/wb-go/wbf/retry"
)

type Config struct {
	Endpoint string
	User     string
	Password string
	Bucket   string
	UseSSL   bool
}

type Storage struct {
	client  *minio.Client
	bucket  string
	retries retry.Strategy
}

func NewStorage(ctx context.Context, cfg Config, retries retry.Strategy) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.User, cfg.Password, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to minio: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", cfg.Bucket, err)
		}
	}

	return &Storage{client: client, bucket: cfg.Bucket, retries: retries}, nil
}

func (s *Storage) Store(ctx context.Context, name string, data []byte, contentType string) error {
	return retry.Do(func() error {
		_, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
			ContentType: contentType,
		})
		return err
	}, s.retries)
}
