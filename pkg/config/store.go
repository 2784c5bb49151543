// SPDX-FileCopyrightText: Copyright 2025 Chainguard, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"github.com/chainguard-dev/chainctl-keyring/pkg/logger"
)

// lockTimeout is the maximum time to wait for a file lock
const lockTimeout = 1 * time.Second

// Store defines the interface for configuration storage operations
type Store interface {
	// Load loads the configuration from storage
	Load(ctx context.Context) (*Config, error)
	// Save saves the configuration to storage
	Save(ctx context.Context, config *Config) error
	// Exists checks if configuration exists in storage
	Exists(ctx context.Context) (bool, error)
	// Update performs a locked update operation on the configuration
	Update(ctx context.Context, updateFn func(*Config)) error
}

// LocalStore implements Store using the local file system
type LocalStore struct {
	configPath string
}

// NewLocalStore creates a new local file-based configuration store
func NewLocalStore(configPath string) *LocalStore {
	return &LocalStore{configPath: configPath}
}

// newLocalStoreWithPath resolves an empty path to the default config path.
func newLocalStoreWithPath(configPath string) (*LocalStore, error) {
	if configPath == "" {
		var err error
		configPath, err = getConfigPath()
		if err != nil {
			return nil, fmt.Errorf("unable to fetch config path: %w", err)
		}
	}
	return NewLocalStore(configPath), nil
}

// Load loads configuration from the local file, creating it with defaults if
// it does not exist yet.
func (s *LocalStore) Load(ctx context.Context) (*Config, error) {
	configPath := path.Clean(s.configPath)

	exists, err := s.Exists(ctx)
	if err != nil {
		return nil, err
	}

	if !exists {
		// Create a new config with default values and persist it.
		config := createNewConfigWithDefaults()
		logger.Debugf("initializing configuration file at %s", configPath)
		if err := s.Save(ctx, &config); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
		return &config, nil
	}

	// #nosec G304: File path is not configurable at this time.
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// Save serializes the config struct and writes it to disk.
func (s *LocalStore) Save(_ context.Context, config *Config) error {
	configBytes, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config file: %w", err)
	}

	if err := os.WriteFile(s.configPath, configBytes, 0600); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// Exists checks whether the config file is present on disk.
func (s *LocalStore) Exists(_ context.Context) (bool, error) {
	_, err := os.Stat(path.Clean(s.configPath))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat config file: %w", err)
	}
	return true, nil
}

// Update loads the config, applies updateFn, and saves the result while
// holding a file lock so concurrent processes cannot clobber each other.
func (s *LocalStore) Update(ctx context.Context, updateFn func(*Config)) error {
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	fileLock := flock.New(s.configPath + ".lock")
	defer func() {
		_ = fileLock.Unlock()
		_ = os.Remove(s.configPath + ".lock")
	}()

	locked, err := fileLock.TryLockContext(lockCtx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to acquire config lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("timed out waiting for config lock")
	}

	config, err := s.Load(ctx)
	if err != nil {
		return err
	}

	updateFn(config)

	return s.Save(ctx, config)
}
