// Package control holds configuration for the optional HTTP control surface
// the supervisor exposes while the backend child process is running.
//
// The endpoint reports supervisor state (/status) and liveness (/healthz).
// It is disabled by default and, when enabled, can be protected with a
// static API key.
package control
