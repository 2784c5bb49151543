// SPDX-FileCopyrightText: Copyright 2025 Chainguard, Inc.
// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package chainctl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainguard-dev/chainctl-keyring/pkg/errors"
)

func TestExecRunnerDefaults(t *testing.T) {
	t.Parallel()

	r := NewExecRunner("", 0)
	assert.Equal(t, DefaultBinary, r.path)
	assert.Equal(t, DefaultTimeout, r.timeout)

	r = NewExecRunner("/usr/local/bin/chainctl", 5*time.Second)
	assert.Equal(t, "/usr/local/bin/chainctl", r.path)
	assert.Equal(t, 5*time.Second, r.timeout)
}

func TestExecRunnerCapturesOutput(t *testing.T) {
	t.Parallel()

	r := NewExecRunner("sh", 10*time.Second)
	stdout, stderr, err := r.Run(context.Background(), "-c", "echo out; echo err >&2")
	require.NoError(t, err)
	assert.Equal(t, "out\n", stdout)
	assert.Equal(t, "err\n", stderr)
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	t.Parallel()

	r := NewExecRunner("sh", 10*time.Second)
	_, _, err := r.Run(context.Background(), "-c", "echo broken >&2; exit 3")
	require.Error(t, err)
	assert.True(t, errors.IsCommandFailed(err))
	assert.Contains(t, err.Error(), "status 3")
	assert.Contains(t, err.Error(), "broken")
}

func TestExecRunnerNotFound(t *testing.T) {
	t.Parallel()

	r := NewExecRunner("chainctl-keyring-no-such-binary", 10*time.Second)
	_, _, err := r.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCommandNotFound(err))
	assert.Contains(t, err.Error(), "installed and in PATH")
}

func TestExecRunnerTimeout(t *testing.T) {
	t.Parallel()

	r := NewExecRunner("sh", 100*time.Millisecond)
	_, _, err := r.Run(context.Background(), "-c", "sleep 5")
	require.Error(t, err)
	assert.True(t, errors.IsCommandTimeout(err))
}

func TestExecRunnerRespectsCallerContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewExecRunner("sh", 10*time.Second)
	_, _, err := r.Run(ctx, "-c", "echo hi")
	require.Error(t, err)
}
