// SPDX-FileCopyrightText: Copyright 2025 Chainguard, Inc.
// SPDX-License-Identifier: Apache-2.0

package keyring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chainguard-dev/chainctl-keyring/pkg/keyring"
)

func TestIsEligibleService(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		service  string
		eligible bool
	}{
		{"https cgr.dev subdomain", "https://libraries.cgr.dev", true},
		{"https cgr.dev subdomain with path", "https://foo.cgr.dev/path", true},
		{"https nested subdomain", "https://a.b.cgr.dev", true},
		{"https deep subdomain", "https://subdomain.libraries.cgr.dev", true},
		{"http is rejected", "http://libraries.cgr.dev", false},
		{"ftp is rejected", "ftp://libraries.cgr.dev", false},
		{"other domain", "https://example.com", false},
		{"suffix spoof", "https://cgr.dev.fake.com", false},
		{"bare apex", "https://cgr.dev", false},
		{"missing host", "https://", false},
		{"empty string", "", false},
		{"not a url", "://nope", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.eligible, keyring.IsEligibleService(tt.service))
		})
	}
}

func TestBackendCapabilities(t *testing.T) {
	t.Parallel()

	readOnly := keyring.BackendCapabilities{CanRead: true}
	assert.True(t, readOnly.IsReadOnly())
	assert.Equal(t, "read-only", readOnly.String())

	readWrite := keyring.BackendCapabilities{CanRead: true, CanWrite: true}
	assert.False(t, readWrite.IsReadOnly())
	assert.Equal(t, "read-write", readWrite.String())

	var none keyring.BackendCapabilities
	assert.False(t, none.IsReadOnly())
	assert.Equal(t, "custom", none.String())
}
