package checks

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"backend-launcher/core/backend"
	"backend-launcher/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLayout(t *testing.T) backend.Layout {
	t.Helper()
	appDir := filepath.Join(t.TempDir(), "app")
	require.NoError(t, os.MkdirAll(appDir, 0o755))
	return backend.Layout{AppDir: appDir}
}

func TestEnsureModel(t *testing.T) {
	logger := zap.NewNop()

	t.Run("Already Present", func(t *testing.T) {
		layout := testLayout(t)
		modelPath := filepath.Join(layout.AppDir, "models", "drowsiness_model.h5")
		touch(t, modelPath)

		mockClient := new(mocks.Client)
		cfg := backend.ModelConfig{File: "models/drowsiness_model.h5", Object: "drowsiness_model.h5"}

		path, err := EnsureModel(context.Background(), cfg, layout, mockClient, "models", logger)
		require.NoError(t, err)
		assert.Equal(t, modelPath, path)
		// No storage call is made when the file is already there.
		mockClient.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing Without Source", func(t *testing.T) {
		layout := testLayout(t)
		cfg := backend.ModelConfig{File: "models/drowsiness_model.h5"}

		_, err := EnsureModel(context.Background(), cfg, layout, nil, "", logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "model file not found")
	})

	t.Run("Fetched From Storage", func(t *testing.T) {
		layout := testLayout(t)
		cfg := backend.ModelConfig{File: "models/drowsiness_model.h5", Object: "drowsiness_model.h5"}

		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "models").Return(true, nil)
		mockClient.On("StatObject", mock.Anything, "models", "drowsiness_model.h5", mock.Anything).
			Return(minio.ObjectInfo{Key: "drowsiness_model.h5"}, nil)
		mockClient.On("GetObject", mock.Anything, "models", "drowsiness_model.h5", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte("model-bytes"))), nil)

		path, err := EnsureModel(context.Background(), cfg, layout, mockClient, "models", logger)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "model-bytes", string(data))
	})

	t.Run("Bucket Missing", func(t *testing.T) {
		layout := testLayout(t)
		cfg := backend.ModelConfig{File: "models/drowsiness_model.h5", Object: "drowsiness_model.h5"}

		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "models").Return(false, nil)

		_, err := EnsureModel(context.Background(), cfg, layout, mockClient, "models", logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket models does not exist")
	})

	t.Run("Object Missing", func(t *testing.T) {
		layout := testLayout(t)
		cfg := backend.ModelConfig{File: "models/drowsiness_model.h5", Object: "drowsiness_model.h5"}

		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "models").Return(true, nil)
		mockClient.On("StatObject", mock.Anything, "models", "drowsiness_model.h5", mock.Anything).
			Return(minio.ObjectInfo{}, errors.New("not found"))

		_, err := EnsureModel(context.Background(), cfg, layout, mockClient, "models", logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "drowsiness_model.h5")
	})
}
