package backend

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Paths(t *testing.T) {
	cfg := Config{
		Root:   "/srv/drowsy",
		Dir:    "backend",
		Venv:   "venv",
		App:    "app",
		Script: "ml_server.py",
	}

	assert.Equal(t, filepath.Join("/srv/drowsy", "backend"), cfg.BackendDir())
	assert.Equal(t, filepath.Join("/srv/drowsy", "backend", "venv"), cfg.VenvDir())
	assert.Equal(t, filepath.Join("/srv/drowsy", "backend", "app"), cfg.AppDir())
	assert.Equal(t, filepath.Join("/srv/drowsy", "backend", "app", "ml_server.py"), cfg.ScriptPath())
}

func TestConfig_PythonPathFor(t *testing.T) {
	cfg := Config{Root: ".", Dir: "backend", Venv: "venv"}

	tests := []struct {
		name string
		goos string
		want string
	}{
		{"Windows", "windows", filepath.Join("backend", "venv", "Scripts", "python.exe")},
		{"Linux", "linux", filepath.Join("backend", "venv", "bin", "python")},
		{"Mac", "darwin", filepath.Join("backend", "venv", "bin", "python")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.pythonPathFor(tt.goos))
		})
	}
}

func TestConfig_PackageList(t *testing.T) {
	tests := []struct {
		name     string
		packages string
		want     []string
	}{
		{"Default", "tensorflow,flask,cv2", []string{"tensorflow", "flask", "cv2"}},
		{"Spaces", " tensorflow , flask ", []string{"tensorflow", "flask"}},
		{"Empty", "", nil},
		{"TrailingComma", "flask,", []string{"flask"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{Packages: tt.packages}
			assert.Equal(t, tt.want, c.PackageList())
		})
	}
}

func TestConfig_LockPath(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		cfg := Config{Root: ".", Dir: "backend"}
		assert.Equal(t, filepath.Join("backend", "launcher.lock"), cfg.LockPath())
	})

	t.Run("Override", func(t *testing.T) {
		cfg := Config{Root: ".", Dir: "backend", LockFile: "/tmp/custom.lock"}
		assert.Equal(t, "/tmp/custom.lock", cfg.LockPath())
	})
}

func TestModelConfig_Enabled(t *testing.T) {
	assert.False(t, ModelConfig{}.Enabled())
	assert.True(t, ModelConfig{File: "models/drowsiness_model.h5"}.Enabled())
}
