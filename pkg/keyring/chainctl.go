// SPDX-FileCopyrightText: Copyright 2025 Chainguard, Inc.
// SPDX-License-Identifier: Apache-2.0

package keyring

import (
	"context"
	"fmt"
	"sync"

	"github.com/chainguard-dev/chainctl-keyring/pkg/chainctl"
	"github.com/chainguard-dev/chainctl-keyring/pkg/env"
	"github.com/chainguard-dev/chainctl-keyring/pkg/errors"
	"github.com/chainguard-dev/chainctl-keyring/pkg/logger"
)

// ErrUnknownMode is returned when an invalid value for Mode is specified.
var ErrUnknownMode = fmt.Errorf("unknown token issuance mode")

var _ Backend = (*ChainctlBackend)(nil)

// ChainctlBackend resolves credentials for *.cgr.dev services by invoking
// chainctl through a TokenIssuer. Resolved credentials are cached per service
// URL for the lifetime of the backend; failures are never cached, so the next
// lookup retries. The mutex is held across resolution so concurrent lookups
// for the same service cannot spawn duplicate chainctl processes.
type ChainctlBackend struct {
	issuer TokenIssuer

	mu    sync.Mutex
	cache map[string]Credential
}

// NewChainctlBackend creates a backend that mints credentials with the given issuer.
func NewChainctlBackend(issuer TokenIssuer) *ChainctlBackend {
	return &ChainctlBackend{
		issuer: issuer,
		cache:  make(map[string]Credential),
	}
}

// Options selects and parameterizes the token issuance mode for NewBackend.
type Options struct {
	// Mode selects the issuer; empty defaults to PullTokenMode.
	Mode Mode

	// Audience overrides DefaultAudience (TokenMode only).
	Audience string

	// Parent is the fallback parent scope when CHAINCTL_PARENT is unset
	// (PullTokenMode only).
	Parent string

	// TTL overrides DefaultTTL (PullTokenMode only).
	TTL string

	// Ecosystem overrides DefaultEcosystem (PullTokenMode only).
	Ecosystem string

	// Env overrides process environment access, for tests.
	Env env.Reader
}

// NewBackend creates a ChainctlBackend with the issuer selected by opts.Mode.
func NewBackend(runner chainctl.Runner, opts Options) (*ChainctlBackend, error) {
	mode := opts.Mode
	if mode == "" {
		mode = PullTokenMode
	}

	switch mode {
	case TokenMode:
		return NewChainctlBackend(NewAudienceIssuer(runner, opts.Audience)), nil
	case PullTokenMode:
		return NewChainctlBackend(NewPullTokenIssuer(runner, PullTokenIssuerOptions{
			Parent:    opts.Parent,
			TTL:       opts.TTL,
			Ecosystem: opts.Ecosystem,
			Env:       opts.Env,
		})), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
}

// GetPassword returns the token for a service URL, or "" when no credential
// is available. Issuance failures are logged and absorbed.
func (b *ChainctlBackend) GetPassword(ctx context.Context, service, username string) (string, error) {
	cred, _ := b.GetCredential(ctx, service, username)
	if cred == nil {
		return "", nil
	}
	return cred.Password, nil
}

// GetCredential returns the (username, token) pair for a service URL, or nil
// when no credential is available. A cached entry is returned without
// re-invoking chainctl.
func (b *ChainctlBackend) GetCredential(ctx context.Context, service, _ string) (*Credential, error) {
	if !IsEligibleService(service) {
		return nil, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if cred, ok := b.cache[service]; ok {
		return &cred, nil
	}

	cred, err := b.issuer.Issue(ctx)
	if err != nil {
		if errors.IsMissingConfig(err) {
			logger.Warnf("cannot mint credential for %s: %v", service, err)
		} else {
			logger.Errorf("failed to get chainctl pull token for %s: %v", service, err)
		}
		return nil, nil
	}
	if cred == nil || cred.Password == "" {
		return nil, nil
	}

	b.cache[service] = *cred
	return cred, nil
}

// SetPassword is not supported; tokens are minted externally by chainctl.
func (*ChainctlBackend) SetPassword(_ context.Context, _, _, _ string) error {
	return errors.NewReadOnlyBackendError("setting passwords is not supported for chainctl auth")
}

// DeletePassword is not supported; tokens expire on their own.
func (*ChainctlBackend) DeletePassword(_ context.Context, _, _ string) error {
	return errors.NewReadOnlyBackendError("deleting passwords is not supported for chainctl auth")
}

// Capabilities reports the read-only capability set.
func (*ChainctlBackend) Capabilities() BackendCapabilities {
	return BackendCapabilities{CanRead: true}
}

// Priority returns the backend-selection priority.
func (*ChainctlBackend) Priority() int {
	return BackendPriority
}
