// SPDX-FileCopyrightText: Copyright 2025 Chainguard, Inc.
// SPDX-License-Identifier: Apache-2.0

package keyring

import (
	"context"
	"fmt"
	"strings"

	"github.com/chainguard-dev/chainctl-keyring/pkg/chainctl"
	"github.com/chainguard-dev/chainctl-keyring/pkg/env"
	"github.com/chainguard-dev/chainctl-keyring/pkg/errors"
)

//go:generate mockgen -destination=mocks/mock_issuer.go -package=mocks -source=issuer.go TokenIssuer

// Mode selects how tokens are minted from chainctl. The two modes invoke
// materially different subcommands and parse different output shapes, so the
// active one is always chosen explicitly through configuration.
type Mode string

const (
	// TokenMode mints an audience-scoped bearer token via `chainctl auth token`.
	TokenMode Mode = "token"

	// PullTokenMode mints a scoped pull token via `chainctl auth pull-token`.
	// This is the default.
	PullTokenMode Mode = "pull-token"
)

const (
	// ParentEnvVar names the environment variable carrying the parent scope
	// for pull-token issuance. It is read at call time, never cached.
	ParentEnvVar = "CHAINCTL_PARENT"

	// DefaultAudience is the token audience for Chainguard Libraries.
	DefaultAudience = "libraries.cgr.dev"

	// DefaultTTL is the requested pull-token lifetime.
	DefaultTTL = "8h"

	// DefaultEcosystem is the library ecosystem pull tokens are scoped to.
	DefaultEcosystem = "python"
)

// TokenIssuer mints a credential by invoking chainctl. A nil credential with a
// nil error means chainctl ran but had no token to hand out.
type TokenIssuer interface {
	Issue(ctx context.Context) (*Credential, error)
}

// AudienceIssuer implements TokenMode: the first line of stdout, trimmed, is
// the token, and the username is the TokenUsername sentinel.
type AudienceIssuer struct {
	runner   chainctl.Runner
	audience string
}

// NewAudienceIssuer creates an issuer for audience-scoped bearer tokens.
// An empty audience falls back to DefaultAudience.
func NewAudienceIssuer(runner chainctl.Runner, audience string) *AudienceIssuer {
	if audience == "" {
		audience = DefaultAudience
	}
	return &AudienceIssuer{runner: runner, audience: audience}
}

// Issue mints a bearer token scoped to the configured audience.
func (i *AudienceIssuer) Issue(ctx context.Context) (*Credential, error) {
	stdout, _, err := i.runner.Run(ctx, "auth", "token", "--audience="+i.audience)
	if err != nil {
		return nil, err
	}

	token, _, _ := strings.Cut(stdout, "\n")
	token = strings.TrimSpace(token)
	if token == "" {
		// chainctl succeeded but has no token for us.
		return nil, nil
	}

	return &Credential{Username: TokenUsername, Password: token}, nil
}

// PullTokenIssuerOptions parameterizes pull-token issuance. Zero values fall
// back to the package defaults; Parent is only a fallback for the
// CHAINCTL_PARENT environment variable, which wins when set.
type PullTokenIssuerOptions struct {
	Parent    string
	TTL       string
	Ecosystem string
	Env       env.Reader
}

// PullTokenIssuer implements PullTokenMode: stdout is parsed line-by-line for
// `Username:` and `Password:` prefixed lines.
type PullTokenIssuer struct {
	runner    chainctl.Runner
	parent    string
	ttl       string
	ecosystem string
	env       env.Reader
}

// NewPullTokenIssuer creates an issuer for scoped pull tokens.
func NewPullTokenIssuer(runner chainctl.Runner, opts PullTokenIssuerOptions) *PullTokenIssuer {
	if opts.TTL == "" {
		opts.TTL = DefaultTTL
	}
	if opts.Ecosystem == "" {
		opts.Ecosystem = DefaultEcosystem
	}
	if opts.Env == nil {
		opts.Env = &env.OSReader{}
	}
	return &PullTokenIssuer{
		runner:    runner,
		parent:    opts.Parent,
		ttl:       opts.TTL,
		ecosystem: opts.Ecosystem,
		env:       opts.Env,
	}
}

// Issue mints a pull token under the parent scope from the environment or the
// configured fallback. An absent parent is a missing-config error.
func (i *PullTokenIssuer) Issue(ctx context.Context) (*Credential, error) {
	parent := i.env.Getenv(ParentEnvVar)
	if parent == "" {
		parent = i.parent
	}
	if parent == "" {
		return nil, errors.NewMissingConfigError(
			fmt.Sprintf("%s is not set; cannot request a pull token", ParentEnvVar), nil)
	}

	stdout, _, err := i.runner.Run(ctx,
		"auth", "pull-token",
		"--library-ecosystem="+i.ecosystem,
		"--parent="+parent,
		"--ttl="+i.ttl,
	)
	if err != nil {
		return nil, err
	}

	return parsePullTokenOutput(stdout)
}

// parsePullTokenOutput extracts the credential pair from pull-token output.
// Both lines must be present; anything else is a hard parse failure.
func parsePullTokenOutput(out string) (*Credential, error) {
	var cred Credential
	var haveUsername, havePassword bool

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if value, ok := strings.CutPrefix(line, "Username:"); ok {
			cred.Username = strings.TrimSpace(value)
			haveUsername = true
		} else if value, ok := strings.CutPrefix(line, "Password:"); ok {
			cred.Password = strings.TrimSpace(value)
			havePassword = true
		}
	}

	if !haveUsername || !havePassword {
		return nil, errors.NewOutputParseError(
			"unexpected pull-token output: missing Username or Password line", nil)
	}

	return &cred, nil
}
