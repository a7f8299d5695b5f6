package checks

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner abstracts command execution so dependency probes can be tested
// without a real interpreter.
type Runner interface {
	// Output runs the command and returns its standard output.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// NewRunner returns the default os/exec backed Runner.
func NewRunner() Runner {
	return execRunner{}
}

// DepResult is the probe outcome for one required Python package.
type DepResult struct {
	// Package is the import name probed (e.g. tensorflow, flask, cv2).
	Package string
	// Version is the reported package version when the import succeeded.
	Version string
	// Err is the probe failure, nil when the package resolved.
	Err error
}

// OK reports whether the package resolved.
func (r DepResult) OK() bool {
	return r.Err == nil
}

// CheckDependencies probes each required package by importing it in the given
// interpreter. Every package is probed even after a failure, so the operator
// sees the full picture in one pass.
func CheckDependencies(ctx context.Context, runner Runner, python string, packages []string) []DepResult {
	results := make([]DepResult, 0, len(packages))
	for _, pkg := range packages {
		results = append(results, probe(ctx, runner, python, pkg))
	}
	return results
}

// AllResolved reports whether every probe succeeded.
func AllResolved(results []DepResult) bool {
	for _, r := range results {
		if !r.OK() {
			return false
		}
	}
	return true
}

func probe(ctx context.Context, runner Runner, python, pkg string) DepResult {
	code := fmt.Sprintf("import %s; print(getattr(%s, '__version__', 'unknown'))", pkg, pkg)
	out, err := runner.Output(ctx, python, "-c", code)
	if err != nil {
		return DepResult{Package: pkg, Err: fmt.Errorf("package %s not found: %w", pkg, err)}
	}
	return DepResult{Package: pkg, Version: strings.TrimSpace(string(out))}
}
