package storage

import (
	"context"
	"time"
)

// ObjectInfo represents metadata for a remote dataset object.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ObjectStorage captures the minimal S3-compatible operations dataset
// ingestion needs.
type ObjectStorage interface {
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
	DownloadObject(ctx context.Context, key string, destPath string) error
	UploadObject(ctx context.Context, key string, data []byte) error
}

// LatestObject returns the most recently modified object under prefix, or
// false when the prefix is empty.
func LatestObject(ctx context.Context, s ObjectStorage, prefix string) (ObjectInfo, bool, error) {
	objects, err := s.ListObjects(ctx, prefix)
	if err != nil {
		return ObjectInfo{}, false, err
	}
	if len(objects) == 0 {
		return ObjectInfo{}, false, nil
	}
	newest := objects[0]
	for _, obj := range objects[1:] {
		if obj.LastModified.After(newest.LastModified) {
			newest = obj
		}
	}
	return newest, true, nil
}
