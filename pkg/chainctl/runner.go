// SPDX-FileCopyrightText: Copyright 2025 Chainguard, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package chainctl wraps invocations of the chainctl CLI behind a small
// interface so that token issuance and preflight checks can be tested
// without the real binary.
package chainctl

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/chainguard-dev/chainctl-keyring/pkg/errors"
	"github.com/chainguard-dev/chainctl-keyring/pkg/logger"
)

//go:generate mockgen -destination=mocks/mock_runner.go -package=mocks -source=runner.go Runner

const (
	// DefaultBinary is the executable name used when no explicit path is configured.
	DefaultBinary = "chainctl"

	// DefaultTimeout bounds a single chainctl invocation.
	DefaultTimeout = 30 * time.Second
)

// Runner executes chainctl subcommands and returns their output.
type Runner interface {
	// Run invokes chainctl with the given arguments and returns captured
	// stdout and stderr. A non-zero exit, a missing binary and a timeout
	// each surface as a distinct typed error from pkg/errors.
	Run(ctx context.Context, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner runs chainctl as a subprocess.
type ExecRunner struct {
	path    string
	timeout time.Duration
}

// NewExecRunner creates a runner for the given chainctl path. Empty path and
// zero timeout fall back to DefaultBinary and DefaultTimeout.
func NewExecRunner(path string, timeout time.Duration) *ExecRunner {
	if path == "" {
		path = DefaultBinary
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ExecRunner{path: path, timeout: timeout}
}

// Run implements Runner using os/exec with a bounded timeout.
func (r *ExecRunner) Run(ctx context.Context, args ...string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	logger.Debugf("executing: %s %s", r.path, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, r.path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return stdout.String(), stderr.String(), r.translate(ctx, err, stderr.String())
	}

	return stdout.String(), stderr.String(), nil
}

// translate maps the raw exec error onto the typed taxonomy.
func (r *ExecRunner) translate(ctx context.Context, err error, stderr string) error {
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.NewCommandTimeoutError(
			fmt.Sprintf("%s timed out after %s", r.path, r.timeout), err)
	}

	if stderrors.Is(err, exec.ErrNotFound) {
		return errors.NewCommandNotFoundError(
			fmt.Sprintf("%s not found. Please ensure chainctl is installed and in PATH", r.path), err)
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return errors.NewCommandFailedError(
			fmt.Sprintf("%s exited with status %d: %s",
				r.path, exitErr.ExitCode(), strings.TrimSpace(stderr)), err)
	}

	return errors.NewCommandFailedError(fmt.Sprintf("failed to run %s", r.path), err)
}
