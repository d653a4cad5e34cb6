// internal/service/upload.go
package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/opsintel/chainsight/pkg/logger"
)

// UploadService persists dataset uploads and points the insight service at
// the new file.
type UploadService struct {
	uploadDir string
	insights  *InsightService
}

func NewUploadService(uploadDir string, insights *InsightService) *UploadService {
	return &UploadService{uploadDir: uploadDir, insights: insights}
}

// Accept validates and stores an uploaded dataset, then makes it the active
// source. Returns the stored path.
func (u *UploadService) Accept(ctx context.Context, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".csv" && ext != ".xlsx" {
		return "", fmt.Errorf("unsupported dataset format %q, expected .csv or .xlsx", ext)
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(u.uploadDir, 0755); err != nil {
		return "", fmt.Errorf("prepare upload dir: %w", err)
	}

	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(header.Filename))
	dest := filepath.Join(u.uploadDir, name)

	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer out.Close()

	if _, err := out.ReadFrom(src); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("write upload file: %w", err)
	}

	if err := u.insights.ReplaceDataset(ctx, dest); err != nil {
		return "", err
	}

	logger.Log.Info().Str("path", dest).Int64("size", header.Size).Msg("dataset upload accepted")
	return dest, nil
}
