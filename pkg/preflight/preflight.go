// SPDX-FileCopyrightText: Copyright 2025 Chainguard, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package preflight verifies that chainctl authentication is available before
// a dependent test suite installs packages or runs. Problems degrade to
// warnings; a broken chainctl must never abort the hosting run.
package preflight

import (
	"context"

	"github.com/chainguard-dev/chainctl-keyring/pkg/keyring"
	"github.com/chainguard-dev/chainctl-keyring/pkg/logger"
)

//go:generate mockgen -destination=mocks/mock_environment.go -package=mocks -source=preflight.go Environment

// CompanionPackage is the credential-backend package installed into the
// active environment ahead of any package resolution against *.cgr.dev.
const CompanionPackage = "keyrings-chainguard-libraries"

// Environment is implemented by the hosting test runner. It exposes the
// active environment's package installer and command execution.
type Environment interface {
	// Install installs a package into the active environment.
	Install(ctx context.Context, pkg string) error

	// Run executes a command inside the active environment and returns its
	// exit code. A non-nil error means the command could not be invoked at
	// all, e.g. the binary is absent from the execution path.
	Run(ctx context.Context, name string, args ...string) (int, error)
}

// Checker holds the preflight hooks. Both hooks are idempotent and may be
// invoked independently.
type Checker struct {
	chainctlPath string
}

// NewChecker creates a Checker. An empty path defaults to "chainctl".
func NewChecker(chainctlPath string) *Checker {
	if chainctlPath == "" {
		chainctlPath = "chainctl"
	}
	return &Checker{chainctlPath: chainctlPath}
}

// InstallDeps installs the companion credential-backend package into the
// environment. The install result is propagated to the caller unchanged.
func (*Checker) InstallDeps(ctx context.Context, environment Environment) error {
	err := environment.Install(ctx, CompanionPackage)
	if err == nil {
		logger.Infof("chainctl-auth: installed %s", CompanionPackage)
	}
	return err
}

// PreRun verifies that chainctl is present and working by running its
// version subcommand. Every failure becomes a single warning; PreRun never
// fails the run.
func (c *Checker) PreRun(ctx context.Context, environment Environment) {
	exitCode, err := environment.Run(ctx, c.chainctlPath, "version")
	if err != nil {
		logger.Warnf("could not verify chainctl installation: %v", err)
		return
	}

	if exitCode != 0 {
		logger.Warnf("chainctl command not found or not working properly. "+
			"Authentication to *%s repositories may fail.", keyring.EligibleDomainSuffix)
	}
}
