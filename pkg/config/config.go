// SPDX-FileCopyrightText: Copyright 2025 Chainguard, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package config contains the definition of the application config structure
// and logic required to load and update it.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/adrg/xdg"

	"github.com/chainguard-dev/chainctl-keyring/pkg/chainctl"
	"github.com/chainguard-dev/chainctl-keyring/pkg/env"
	"github.com/chainguard-dev/chainctl-keyring/pkg/keyring"
)

// ModeEnvVar is the environment variable used to override the configured
// token issuance mode.
const ModeEnvVar = "CHAINCTL_KEYRING_MODE"

// Config represents the configuration of the application.
type Config struct {
	Issuance              Issuance `yaml:"issuance"`
	ChainctlPath          string   `yaml:"chainctl_path,omitempty"`
	CommandTimeoutSeconds int      `yaml:"command_timeout_seconds,omitempty"`
}

// Issuance contains the settings for token issuance.
type Issuance struct {
	Mode      string `yaml:"mode"`
	Audience  string `yaml:"audience,omitempty"`
	Parent    string `yaml:"parent,omitempty"`
	TTL       string `yaml:"ttl,omitempty"`
	Ecosystem string `yaml:"ecosystem,omitempty"`
}

// validateMode validates and returns the token issuance mode.
func validateMode(mode string) (keyring.Mode, error) {
	switch mode {
	case string(keyring.TokenMode):
		return keyring.TokenMode, nil
	case string(keyring.PullTokenMode):
		return keyring.PullTokenMode, nil
	default:
		return "", fmt.Errorf("invalid token issuance mode: %s (valid modes: %s, %s)",
			mode, string(keyring.TokenMode), string(keyring.PullTokenMode))
	}
}

// GetMode returns the token issuance mode from the environment variable or
// application config. It first checks CHAINCTL_KEYRING_MODE, and falls back
// to the config file.
func (i *Issuance) GetMode() (keyring.Mode, error) {
	return i.GetModeWithEnv(&env.OSReader{})
}

// GetModeWithEnv returns the token issuance mode using the provided
// environment reader. This allows for dependency injection of environment
// variable access for testing.
func (i *Issuance) GetModeWithEnv(envReader env.Reader) (keyring.Mode, error) {
	if envVar := envReader.Getenv(ModeEnvVar); envVar != "" {
		return validateMode(envVar)
	}
	return validateMode(i.Mode)
}

// CommandTimeout returns the bounded timeout for chainctl invocations.
func (c *Config) CommandTimeout() time.Duration {
	if c.CommandTimeoutSeconds <= 0 {
		return chainctl.DefaultTimeout
	}
	return time.Duration(c.CommandTimeoutSeconds) * time.Second
}

// BackendOptions maps the config onto keyring.Options, validating the mode.
func (c *Config) BackendOptions() (keyring.Options, error) {
	mode, err := c.Issuance.GetMode()
	if err != nil {
		return keyring.Options{}, err
	}
	return keyring.Options{
		Mode:      mode,
		Audience:  c.Issuance.Audience,
		Parent:    c.Issuance.Parent,
		TTL:       c.Issuance.TTL,
		Ecosystem: c.Issuance.Ecosystem,
	}, nil
}

// defaultPathGenerator generates the default config path using xdg
var defaultPathGenerator = func() (string, error) {
	return xdg.ConfigFile("chainctl-keyring/config.yaml")
}

// getConfigPath is the current path generator, can be replaced in tests
var getConfigPath = defaultPathGenerator

// createNewConfigWithDefaults creates a new config with default values
func createNewConfigWithDefaults() Config {
	return Config{
		Issuance: Issuance{
			Mode:      string(keyring.PullTokenMode),
			Audience:  keyring.DefaultAudience,
			TTL:       keyring.DefaultTTL,
			Ecosystem: keyring.DefaultEcosystem,
		},
	}
}

// LoadOrCreateConfig fetches the application configuration.
// If it does not already exist - it will create a new config file with default values.
func LoadOrCreateConfig() (*Config, error) {
	return LoadOrCreateConfigWithPath("")
}

// LoadOrCreateConfigWithPath fetches the application configuration from a specific path.
// If configPath is empty, it uses the default path.
func LoadOrCreateConfigWithPath(configPath string) (*Config, error) {
	store, err := newLocalStoreWithPath(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create config store: %w", err)
	}

	return store.Load(context.Background())
}

// UpdateConfig loads the config, applies changes, and saves it back under a
// file lock.
func UpdateConfig(updateFn func(*Config)) error {
	return UpdateConfigWithStore(nil, updateFn)
}

// UpdateConfigWithStore uses the provided store or creates a new one to update config
func UpdateConfigWithStore(store Store, updateFn func(*Config)) error {
	var err error
	if store == nil {
		store, err = newLocalStoreWithPath("")
		if err != nil {
			return fmt.Errorf("failed to create config store: %w", err)
		}
	}

	return store.Update(context.Background(), updateFn)
}
