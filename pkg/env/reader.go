// SPDX-FileCopyrightText: Copyright 2025 Chainguard, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package env provides an injectable abstraction over process environment
// variables so that call-time lookups can be faked in tests.
package env

import "os"

//go:generate mockgen -destination=mocks/mock_reader.go -package=mocks -source=reader.go Reader

// Reader reads environment variables.
type Reader interface {
	// Getenv returns the value of the named environment variable,
	// or the empty string if it is unset.
	Getenv(key string) string
}

// OSReader reads environment variables from the process environment.
type OSReader struct{}

// Getenv returns the value of the named variable from the real environment.
func (*OSReader) Getenv(key string) string {
	return os.Getenv(key)
}
