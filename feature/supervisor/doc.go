// Package supervisor owns the backend server child process.
//
// It spawns the resolved virtual environment interpreter against the server
// script, with the working directory set to the application directory, and
// blocks until the child exits. Three outcomes exist:
//
//   - completed: the server exited on its own with status zero.
//   - failed: the server exited with a non-zero status. The launcher exits 1.
//   - interrupted: the operator delivered SIGINT/SIGTERM. The signal is
//     forwarded to the child with a grace period before SIGKILL, and the
//     launcher exits 0: an intentional stop is not an error.
//
// # Supporting Facilities
//
//   - Single-instance guard: a flock lock file prevents two supervisors from
//     running the same backend concurrently.
//   - Readiness probe: polls the backend health URL after each spawn and logs
//     whether the server came up. Informational only.
//   - Watch mode: an fsnotify watch on the server script restarts the child
//     when the script changes.
//   - Journal: every launch attempt is recorded with a UUID run id.
//   - Control surface: optional fiber endpoints (/status, /healthz) serving
//     supervisor state while the child runs.
package supervisor
