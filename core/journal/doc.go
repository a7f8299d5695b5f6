// Package journal persists the launch history of the backend server.
//
// It provides a wrapper around GORM to record one row per launch attempt:
// when the child process was spawned, with which interpreter and script, and
// how it ended (completed, failed with an exit code, or interrupted by the
// operator).
//
// # Drivers
//
// The default driver is sqlite with a local database file, which suits a
// single-host CLI. A shared mysql database is supported for deployments
// where several machines report into one place.
//
// # Optionality
//
// The journal never blocks a launch. Callers treat a failed connection as a
// warning and continue without recording.
//
// # Usage
//
//	db, err := journal.Connect(cfg.Journal)
//	if err != nil {
//	    log.Warn("Journal unavailable", zap.Error(err))
//	}
//	j, _ := journal.New(db)
//	_ = j.Begin(journal.Run{ID: runID, StartedAt: time.Now()})
package journal
