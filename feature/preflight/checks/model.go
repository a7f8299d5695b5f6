package checks

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"backend-launcher/core/backend"
	"backend-launcher/core/storage"

	"github.com/cavaliercoder/grab"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// EnsureModel verifies the trained model file exists, fetching it from object
// storage or a direct URL when absent. Returns the resolved model path.
func EnsureModel(ctx context.Context, cfg backend.ModelConfig, layout backend.Layout, client storage.Client, bucket string, logger *zap.Logger) (string, error) {
	path := cfg.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(layout.AppDir, path)
	}

	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	switch {
	case cfg.Object != "" && client != nil:
		logger.Info("Model file missing, fetching from storage",
			zap.String("object", cfg.Object), zap.String("dest", path))
		if err := fetchFromStorage(ctx, client, bucket, cfg.Object, path); err != nil {
			return "", err
		}
	case cfg.URL != "":
		logger.Info("Model file missing, downloading",
			zap.String("url", cfg.URL), zap.String("dest", path))
		if err := fetchFromURL(ctx, cfg.URL, path); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("model file not found: %s (no fetch source configured)", path)
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("model file still missing after fetch: %s", path)
	}
	return path, nil
}

func fetchFromStorage(ctx context.Context, client storage.Client, bucket, object, dest string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", bucket)
	}

	if _, err := client.StatObject(ctx, bucket, object, minio.StatObjectOptions{}); err != nil {
		return fmt.Errorf("model object %s not found in bucket %s: %w", object, bucket, err)
	}

	rc, err := client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to get model object: %w", err)
	}
	defer rc.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create model file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, rc); err != nil {
		// Leave no truncated artifact behind.
		_ = os.Remove(dest)
		return fmt.Errorf("failed to write model file: %w", err)
	}
	return nil
}

func fetchFromURL(ctx context.Context, url, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	req, err := grab.NewRequest(dest, url)
	if err != nil {
		return fmt.Errorf("invalid model URL: %w", err)
	}
	req = req.WithContext(ctx)

	resp := grab.NewClient().Do(req)
	if err := resp.Err(); err != nil {
		return fmt.Errorf("model download failed: %w", err)
	}
	return nil
}
