package backend

import (
	"path/filepath"
	"runtime"
	"strings"
)

// Config holds configuration describing the backend installation layout.
type Config struct {
	// Root is the directory the backend tree is resolved against.
	Root string `mapstructure:"root" default:"."`
	// Dir is the backend directory name beneath the root.
	Dir string `mapstructure:"dir" default:"backend"`
	// Venv is the virtual environment directory name beneath the backend directory.
	Venv string `mapstructure:"venv" default:"venv"`
	// App is the application directory name beneath the backend directory.
	App string `mapstructure:"app" default:"app"`
	// Script is the server entry point file inside the application directory.
	Script string `mapstructure:"script" default:"ml_server.py"`
	// Packages is a comma-separated list of Python packages the server needs.
	Packages string `mapstructure:"packages" default:"tensorflow,flask,cv2"`
	// LockFile overrides the default supervisor lock file location.
	LockFile string `mapstructure:"lock_file" default:""`
}

// BackendDir returns the resolved backend directory path.
func (c Config) BackendDir() string {
	return filepath.Join(c.Root, c.Dir)
}

// VenvDir returns the resolved virtual environment directory path.
func (c Config) VenvDir() string {
	return filepath.Join(c.BackendDir(), c.Venv)
}

// PythonPath returns the interpreter path inside the virtual environment
// for the host operating system.
func (c Config) PythonPath() string {
	return c.pythonPathFor(runtime.GOOS)
}

func (c Config) pythonPathFor(goos string) string {
	if goos == "windows" {
		return filepath.Join(c.VenvDir(), "Scripts", "python.exe")
	}
	return filepath.Join(c.VenvDir(), "bin", "python")
}

// AppDir returns the resolved application directory path.
func (c Config) AppDir() string {
	return filepath.Join(c.BackendDir(), c.App)
}

// ScriptPath returns the resolved server script path.
func (c Config) ScriptPath() string {
	return filepath.Join(c.AppDir(), c.Script)
}

// LockPath returns the supervisor lock file path.
func (c Config) LockPath() string {
	if c.LockFile != "" {
		return c.LockFile
	}
	return filepath.Join(c.BackendDir(), "launcher.lock")
}

// PackageList splits the configured package list.
func (c Config) PackageList() []string {
	var pkgs []string
	for _, p := range strings.Split(c.Packages, ",") {
		if p = strings.TrimSpace(p); p != "" {
			pkgs = append(pkgs, p)
		}
	}
	return pkgs
}

// Layout is the set of resolved, verified backend paths. It is produced by
// the preflight layout check and consumed by the supervisor.
type Layout struct {
	// BackendDir is the backend directory.
	BackendDir string
	// VenvDir is the virtual environment directory.
	VenvDir string
	// Python is the interpreter inside the virtual environment.
	Python string
	// AppDir is the working directory the server runs from.
	AppDir string
	// Script is the server entry point file.
	Script string
}

// ModelConfig holds configuration for the trained model artifact check.
// The check is skipped entirely when File is empty.
type ModelConfig struct {
	// File is the model file path, relative to the application directory
	// unless absolute.
	File string `mapstructure:"file" default:""`
	// Object is the object name to fetch from storage when the file is missing.
	Object string `mapstructure:"object" default:""`
	// URL is a direct download location used when no storage object is set.
	URL string `mapstructure:"url" default:""`
}

// Enabled reports whether the model check should run at all.
func (c ModelConfig) Enabled() bool {
	return c.File != ""
}

// ProbeConfig holds configuration for the post-launch readiness probe.
type ProbeConfig struct {
	// Enabled toggles the probe.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// URL is the health endpoint the backend serves once ready.
	URL string `mapstructure:"url" default:"http://localhost:5000/health"`
	// TimeoutSeconds bounds how long the probe waits for readiness.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// IntervalMillis is the delay between probe attempts.
	IntervalMillis int `mapstructure:"interval_millis" default:"500"`
}
