package supervisor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"backend-launcher/core/backend"
	"backend-launcher/core/journal"
	"backend-launcher/core/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Outcome classifies how a supervised run ended.
type Outcome string

const (
	// OutcomeCompleted means the server exited on its own with status zero.
	OutcomeCompleted Outcome = "completed"
	// OutcomeFailed means the server exited with a non-zero status.
	OutcomeFailed Outcome = "failed"
	// OutcomeInterrupted means the operator stopped the server. Not an error.
	OutcomeInterrupted Outcome = "interrupted"
	// OutcomeRestarted means watch mode replaced the server with a fresh one.
	OutcomeRestarted Outcome = "restarted"
)

// State is the supervisor lifecycle state exposed on the control surface.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateStopped State = "stopped"
)

// Status is a snapshot of the supervisor, served by the control endpoint.
type Status struct {
	State     State     `json:"state"`
	RunID     string    `json:"run_id,omitempty"`
	PID       int       `json:"pid,omitempty"`
	StartedAt time.Time `json:"started_at,omitempty"`
	Outcome   Outcome   `json:"outcome,omitempty"`
	ExitCode  int       `json:"exit_code"`
}

// Supervisor owns the backend child process for its lifetime: it spawns the
// resolved interpreter against the server script and blocks until the child
// exits or the operator interrupts.
type Supervisor struct {
	layout      backend.Layout
	logger      *zap.Logger
	journal     *journal.Journal
	probe       *Probe
	restart     <-chan struct{}
	lockPath    string
	gracePeriod time.Duration

	mu     sync.Mutex
	status Status
}

// New creates a supervisor for a verified backend layout.
func New(layout backend.Layout, log *zap.Logger) *Supervisor {
	return &Supervisor{
		layout:      layout,
		logger:      log,
		gracePeriod: 5 * time.Second,
		status:      Status{State: StateIdle},
	}
}

// WithJournal enables launch history recording.
func (s *Supervisor) WithJournal(j *journal.Journal) *Supervisor {
	s.journal = j
	return s
}

// WithProbe enables the post-launch readiness probe.
func (s *Supervisor) WithProbe(p *Probe) *Supervisor {
	s.probe = p
	return s
}

// WithRestart wires a channel whose events replace the running child with a
// fresh one (watch mode).
func (s *Supervisor) WithRestart(ch <-chan struct{}) *Supervisor {
	s.restart = ch
	return s
}

// WithLock enables the single-instance guard at the given lock file path.
func (s *Supervisor) WithLock(path string) *Supervisor {
	s.lockPath = path
	return s
}

// Status returns a snapshot of the supervisor state.
func (s *Supervisor) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Run spawns the server and supervises it until a terminal outcome.
// It returns nil for a clean exit or an operator interrupt, and an error for
// spawn failures and non-zero exits.
func (s *Supervisor) Run(ctx context.Context) error {
	if s.lockPath != "" {
		lock, err := acquireLock(s.lockPath)
		if err != nil {
			return err
		}
		defer lock.release()
	}

	// The signal watch spans restarts so a Ctrl+C during a watch-mode
	// respawn is never lost.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	for {
		outcome, exitCode, err := s.runOnce(ctx, sigCh)
		if err != nil {
			return err
		}

		switch outcome {
		case OutcomeRestarted:
			s.logger.Info("Server script changed, restarting")
			continue
		case OutcomeInterrupted:
			s.logger.Info("Server stopped by user")
			return nil
		case OutcomeCompleted:
			s.logger.Info("Server exited cleanly")
			return nil
		default:
			return fmt.Errorf("server exited with status %d", exitCode)
		}
	}
}

func (s *Supervisor) runOnce(ctx context.Context, sigCh <-chan os.Signal) (Outcome, int, error) {
	runID := uuid.NewString()
	l := logger.WithRunID(s.logger, runID)

	cmd := exec.Command(s.layout.Python, filepath.Base(s.layout.Script))
	cmd.Dir = s.layout.AppDir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	l.Info("Starting ML backend server",
		zap.String("python", s.layout.Python),
		zap.String("script", s.layout.Script),
		zap.String("workdir", s.layout.AppDir))

	if err := cmd.Start(); err != nil {
		return OutcomeFailed, -1, fmt.Errorf("failed to start server: %w", err)
	}

	startedAt := time.Now()
	s.setStatus(Status{State: StateRunning, RunID: runID, PID: cmd.Process.Pid, StartedAt: startedAt})

	if s.journal != nil {
		rec := journal.Run{
			ID:          runID,
			StartedAt:   startedAt,
			Interpreter: s.layout.Python,
			Script:      s.layout.Script,
		}
		if err := s.journal.Begin(rec); err != nil {
			l.Warn("Failed to record run in journal", zap.Error(err))
		}
	}

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()
	if s.probe != nil {
		go s.probe.Report(runCtx, l)
	}

	waitCh := make(chan error, 1)
	go func() { waitCh <- cmd.Wait() }()

	var (
		outcome Outcome
		waitErr error
	)
	select {
	case waitErr = <-waitCh:
		outcome = classify(waitErr)
	case sig := <-sigCh:
		l.Info("Interrupt received, stopping server", zap.String("signal", sig.String()))
		waitErr = s.stopChild(cmd, waitCh, sig)
		outcome = OutcomeInterrupted
	case <-ctx.Done():
		waitErr = s.stopChild(cmd, waitCh, syscall.SIGTERM)
		outcome = OutcomeInterrupted
	case <-s.restart:
		waitErr = s.stopChild(cmd, waitCh, syscall.SIGTERM)
		outcome = OutcomeRestarted
	}

	code := exitCode(waitErr)
	s.setStatus(Status{State: StateStopped, RunID: runID, StartedAt: startedAt, Outcome: outcome, ExitCode: code})

	if s.journal != nil {
		if err := s.journal.Finish(runID, string(outcome), code); err != nil {
			l.Warn("Failed to finalize journal record", zap.Error(err))
		}
	}

	return outcome, code, nil
}

// stopChild forwards the stop signal and gives the child a grace period
// before killing it outright.
func (s *Supervisor) stopChild(cmd *exec.Cmd, waitCh <-chan error, sig os.Signal) error {
	if err := cmd.Process.Signal(sig); err != nil && !errors.Is(err, os.ErrProcessDone) {
		// Signal delivery can fail on platforms without SIGTERM support;
		// fall through to the grace timer and kill.
		s.logger.Debug("Signal forwarding failed", zap.Error(err))
	}

	select {
	case err := <-waitCh:
		return err
	case <-time.After(s.gracePeriod):
		_ = cmd.Process.Kill()
		return <-waitCh
	}
}

func (s *Supervisor) setStatus(st Status) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}

func classify(waitErr error) Outcome {
	if waitErr == nil {
		return OutcomeCompleted
	}
	return OutcomeFailed
}

func exitCode(waitErr error) int {
	if waitErr == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
