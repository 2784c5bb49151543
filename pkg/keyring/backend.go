// SPDX-FileCopyrightText: Copyright 2025 Chainguard, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package keyring implements a read-only credential backend that mints
// short-lived pull tokens for Chainguard Libraries repositories via the
// chainctl CLI.
package keyring

import (
	"context"
	"net/url"
	"strings"
)

//go:generate mockgen -destination=mocks/mock_backend.go -package=mocks -source=backend.go

const (
	// EligibleDomainSuffix gates which service hostnames this backend will
	// mint credentials for.
	EligibleDomainSuffix = ".cgr.dev"

	// TokenUsername is the sentinel username paired with audience-scoped
	// bearer tokens, which carry no username of their own.
	TokenUsername = "_token"

	// BackendPriority ranks this backend above typical system keyrings when
	// the host selects between registered backends (higher wins).
	BackendPriority = 9
)

// Credential is a (username, token) pair minted for a service.
type Credential struct {
	Username string
	Password string
}

// BackendCapabilities represents what operations a credential backend supports.
type BackendCapabilities struct {
	CanRead   bool
	CanWrite  bool
	CanDelete bool
}

// IsReadOnly returns true if the backend only supports read operations.
func (bc BackendCapabilities) IsReadOnly() bool {
	return bc.CanRead && !bc.CanWrite && !bc.CanDelete
}

// String returns a human-readable description of the capabilities.
func (bc BackendCapabilities) String() string {
	if bc.IsReadOnly() {
		return "read-only"
	}
	if bc.CanRead && bc.CanWrite {
		return "read-write"
	}
	return "custom"
}

// Backend is the contract a hosting password manager depends on. Lookups for
// ineligible services return an absent result (nil error) rather than failing;
// mutations always fail because tokens are minted externally.
type Backend interface {
	// GetPassword returns the token for a service URL, or "" if no
	// credential is available. It never returns an error.
	GetPassword(ctx context.Context, service, username string) (string, error)

	// GetCredential returns the full (username, token) pair for a service
	// URL, or nil if no credential is available. It never returns an error.
	GetCredential(ctx context.Context, service, username string) (*Credential, error)

	// SetPassword always returns a read-only backend error.
	SetPassword(ctx context.Context, service, username, password string) error

	// DeletePassword always returns a read-only backend error.
	DeletePassword(ctx context.Context, service, username string) error

	// Capabilities returns what operations this backend supports.
	Capabilities() BackendCapabilities

	// Priority returns the backend-selection priority.
	Priority() int
}

// IsEligibleService reports whether the backend will act for the given
// service URL: HTTPS only, with a non-empty hostname under EligibleDomainSuffix.
// Pure and side-effect free.
func IsEligibleService(service string) bool {
	u, err := url.Parse(service)
	if err != nil {
		return false
	}

	// Only handle HTTPS URLs for domains ending with cgr.dev
	if u.Scheme != "https" {
		return false
	}

	host := u.Hostname()
	return host != "" && strings.HasSuffix(host, EligibleDomainSuffix)
}
