// SPDX-FileCopyrightText: Copyright 2025 Chainguard, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package main is the entry point for the chainctl-keyring CLI.
package main

import (
	"os"

	"github.com/chainguard-dev/chainctl-keyring/cmd/chainctl-keyring/app"
	"github.com/chainguard-dev/chainctl-keyring/pkg/logger"
)

func main() {
	// Initialize the logger
	logger.Initialize()

	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
