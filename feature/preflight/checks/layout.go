package checks

import (
	"fmt"
	"os"

	"backend-launcher/core/backend"
)

// ResolveLayout verifies the backend tree stage by stage and returns the
// resolved paths. It fails on the first missing piece, naming the exact path,
// so nothing beneath an absent directory is ever reported.
func ResolveLayout(cfg backend.Config) (backend.Layout, error) {
	var layout backend.Layout

	backendDir := cfg.BackendDir()
	if _, err := os.Stat(backendDir); err != nil {
		return layout, fmt.Errorf("backend directory not found: %s", backendDir)
	}

	venvDir := cfg.VenvDir()
	if _, err := os.Stat(venvDir); err != nil {
		return layout, fmt.Errorf("virtual environment not found: %s\n"+
			"To create it:\n"+
			"  cd %s\n"+
			"  python -m venv %s\n"+
			"  %s\n"+
			"  pip install -r requirements.txt",
			venvDir, backendDir, cfg.Venv, activateHint(cfg))
	}

	python := cfg.PythonPath()
	if _, err := os.Stat(python); err != nil {
		return layout, fmt.Errorf("python executable not found: %s", python)
	}

	script := cfg.ScriptPath()
	if _, err := os.Stat(script); err != nil {
		return layout, fmt.Errorf("server script not found: %s\n"+
			"Please ensure %s is in the %s directory", script, cfg.Script, cfg.AppDir())
	}

	layout = backend.Layout{
		BackendDir: backendDir,
		VenvDir:    venvDir,
		Python:     python,
		AppDir:     cfg.AppDir(),
		Script:     script,
	}
	return layout, nil
}

func activateHint(cfg backend.Config) string {
	return fmt.Sprintf("%s\\Scripts\\activate  # On Windows\n  source %s/bin/activate  # On Linux/Mac", cfg.Venv, cfg.Venv)
}
