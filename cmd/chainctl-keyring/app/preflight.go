// SPDX-FileCopyrightText: Copyright 2025 Chainguard, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"github.com/spf13/cobra"

	"github.com/chainguard-dev/chainctl-keyring/pkg/config"
	"github.com/chainguard-dev/chainctl-keyring/pkg/preflight"
)

// newPreflightCmd creates the preflight command.
func newPreflightCmd() *cobra.Command {
	var installer string
	var noInstall bool

	cmd := &cobra.Command{
		Use:   "preflight",
		Short: "Verify chainctl authentication is ready before a test run",
		Long: `Install the companion credential-backend package into the active
environment and verify that chainctl is present and working. A broken
chainctl degrades to a warning; preflight only fails if the install fails.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Get()
			environment := preflight.NewExecEnvironment(installer)
			checker := preflight.NewChecker(cfg.ChainctlPath)

			if !noInstall {
				if err := checker.InstallDeps(cmd.Context(), environment); err != nil {
					return err
				}
			}

			checker.PreRun(cmd.Context(), environment)
			return nil
		},
	}

	cmd.Flags().StringVar(&installer, "installer", "pip", "Package installer used for the companion keyring backend")
	cmd.Flags().BoolVar(&noInstall, "no-install", false, "Skip installing the companion keyring backend")

	return cmd
}
