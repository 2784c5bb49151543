// SPDX-FileCopyrightText: Copyright 2025 Chainguard, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package app provides the entry point for the chainctl-keyring command-line application.
package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chainguard-dev/chainctl-keyring/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:               "chainctl-keyring",
	DisableAutoGenTag: true,
	Short:             "Credential helper for Chainguard Libraries repositories",
	Long: `chainctl-keyring mints short-lived pull tokens for *.cgr.dev repositories
by invoking the chainctl CLI, and exposes them through a password-manager-style
lookup interface. Tokens are cached in memory per service URL for the lifetime
of the process; the backend is read-only, since tokens are minted externally.`,
	PersistentPreRun: func(*cobra.Command, []string) {
		// Re-initialize so the --debug flag takes effect.
		logger.Initialize()
	},
	Run: func(cmd *cobra.Command, _ []string) {
		// If no subcommand is provided, print help
		if err := cmd.Help(); err != nil {
			logger.Errorf("Error displaying help: %v", err)
		}
	},
}

// NewRootCmd creates a new root command for the chainctl-keyring CLI.
func NewRootCmd() *cobra.Command {
	// Add persistent flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")
	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		logger.Errorf("Error binding debug flag: %v", err)
	}

	// Add subcommands
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(credentialCmd)
	rootCmd.AddCommand(newPreflightCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
