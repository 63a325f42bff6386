// Package storage 将生成的证书和上传的头像存入 MinIO。
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"seyone-academy-go/internal/config"
	"seyone-academy-go/pkg/log"
)

// ObjectStore is what the dashboard needs from object storage.
type ObjectStore interface {
	Put(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) error
	PresignedURL(ctx context.Context, objectName string) (string, error)
}

// MinioStore is an ObjectStore backed by one MinIO bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

var _ ObjectStore = (*MinioStore)(nil)

// NewMinioStore 连接 MinIO，并确保存储桶存在
func NewMinioStore(ctx context.Context, cfg config.MinIOConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	log.Info("MinIO client initialised")

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", cfg.BucketName, err)
	}
	if !exists {
		log.Infof("bucket '%s' does not exist, creating it", cfg.BucketName)
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %q: %w", cfg.BucketName, err)
		}
	}

	expiry := cfg.PresignExpiry
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &MinioStore{client: client, bucket: cfg.BucketName, expiry: expiry}, nil
}

// Put 上传对象，size 未知时传 -1
func (s *MinioStore) Put(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to upload %q: %w", objectName, err)
	}
	return nil
}

// PresignedURL 生成带有效期的下载链接
func (s *MinioStore) PresignedURL(ctx context.Context, objectName string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, s.expiry, nil)
	if err != nil {
		log.Errorf("Error generating presigned URL: %s", err)
		return "", err
	}
	return u.String(), nil
}
