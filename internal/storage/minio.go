package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/opsintel/chainsight/internal/config"
)

// MinioStorage implements ObjectStorage against any S3-compatible endpoint.
type MinioStorage struct {
	client *minio.Client
	bucket string
}

func NewMinioStorage(cfg config.StorageConfig) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create object storage client: %w", err)
	}
	return &MinioStorage{client: client, bucket: cfg.Bucket}, nil
}

func (m *MinioStorage) ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	var objects []ObjectInfo
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects under %q: %w", prefix, obj.Err)
		}
		objects = append(objects, ObjectInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}
	return objects, nil
}

func (m *MinioStorage) DownloadObject(ctx context.Context, key string, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("prepare download dir: %w", err)
	}
	if err := m.client.FGetObject(ctx, m.bucket, key, destPath, minio.GetObjectOptions{}); err != nil {
		return fmt.Errorf("download %q: %w", key, err)
	}
	return nil
}

func (m *MinioStorage) UploadObject(ctx context.Context, key string, data []byte) error {
	_, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("upload %q: %w", key, err)
	}
	return nil
}
