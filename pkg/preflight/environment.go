// SPDX-FileCopyrightText: Copyright 2025 Chainguard, Inc.
// SPDX-License-Identifier: Apache-2.0

package preflight

import (
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/chainguard-dev/chainctl-keyring/pkg/logger"
)

// ExecEnvironment adapts the local machine to the Environment interface for
// use outside a hosting test runner. Packages are installed with a pip-style
// installer command.
type ExecEnvironment struct {
	installer string
}

var _ Environment = (*ExecEnvironment)(nil)

// NewExecEnvironment creates an environment backed by the given installer
// command, e.g. "pip" or "uv". An empty installer defaults to "pip".
func NewExecEnvironment(installer string) *ExecEnvironment {
	if installer == "" {
		installer = "pip"
	}
	return &ExecEnvironment{installer: installer}
}

// Install installs the package with the configured installer.
func (e *ExecEnvironment) Install(ctx context.Context, pkg string) error {
	logger.Debugf("executing: %s install %s", e.installer, pkg)

	cmd := exec.CommandContext(ctx, e.installer, "install", pkg)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s install %s: %w: %s",
			e.installer, pkg, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Run executes a command on the local machine and returns its exit code.
func (*ExecEnvironment) Run(ctx context.Context, name string, args ...string) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, err
	}
	return 0, nil
}
