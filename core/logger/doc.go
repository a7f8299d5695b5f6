// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production). The launcher is an interactive CLI first, so
// the default encoding is console with colored levels; json is available for
// running under a service manager.
//
// # Run Correlation
//
// Every launch attempt is assigned a run ID, recorded in the journal. The
// WithRunID helper attaches that ID to the logger so all log entries of a
// single supervised run can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Backend started")
//
//	l := logger.WithRunID(log, runID)
//	l.Error("Launch failed", zap.Error(err))
package logger
