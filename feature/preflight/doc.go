// Package preflight verifies every launch precondition before the backend
// server is spawned.
//
// # Checks Provided
//
//   - Layout: verifies the backend directory tree stage by stage (backend
//     dir, virtual environment, OS-specific interpreter, server script),
//     failing fast with the exact missing path. Nothing below a missing
//     directory is ever checked.
//   - Dependencies: imports each required Python package (tensorflow, flask,
//     cv2 by default) in the virtual environment interpreter and captures its
//     version. All packages must resolve; a single failure aborts the launch
//     before any server process exists.
//   - Model: verifies the trained model artifact is present under the
//     application directory, optionally fetching it from S3/MinIO or a direct
//     URL. Disabled unless a model file is configured.
//
// Every failure is terminal for the launch attempt. There are no retries and
// no fallback paths; the operator fixes the environment and runs again.
package preflight
