// Package backend describes the on-disk layout of the Python ML backend.
//
// The launcher never hardcodes paths: every location is derived from the
// configured root following the expected tree:
//
//	<root>/backend/venv/{Scripts|bin}/{python.exe|python}
//	<root>/backend/app/ml_server.py
//
// The Config type performs pure path derivation (no filesystem access), so it
// can be shared by the preflight checks (which verify existence) and the
// supervisor (which consumes a verified Layout).
//
// # Platform Handling
//
// Virtual environments place the interpreter under Scripts\python.exe on
// Windows and bin/python everywhere else. PythonPath selects the right one
// for the host OS.
package backend
