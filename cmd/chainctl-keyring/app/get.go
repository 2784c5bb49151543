// SPDX-FileCopyrightText: Copyright 2025 Chainguard, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chainguard-dev/chainctl-keyring/pkg/chainctl"
	"github.com/chainguard-dev/chainctl-keyring/pkg/config"
	"github.com/chainguard-dev/chainctl-keyring/pkg/keyring"
)

var getCmd = &cobra.Command{
	Use:   "get <service-url>",
	Short: "Print the auth token for a service URL",
	Long: `Resolve and print the bearer token for a *.cgr.dev service URL.
Exits with an error if the URL is outside the eligible domain or no
credential is available.`,
	Args: cobra.ExactArgs(1),
	RunE: getCmdFunc,
}

var credentialJSON bool

var credentialCmd = &cobra.Command{
	Use:   "credential <service-url>",
	Short: "Print the full credential for a service URL",
	Long: `Resolve and print the (username, token) pair for a *.cgr.dev service URL
in the same Username:/Password: line format chainctl emits, or as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: credentialCmdFunc,
}

func init() {
	credentialCmd.Flags().BoolVar(&credentialJSON, "json", false, "Output the credential as JSON")
}

// newBackend wires the configured issuance mode to an exec-backed runner.
func newBackend() (keyring.Backend, error) {
	cfg := config.Get()
	opts, err := cfg.BackendOptions()
	if err != nil {
		return nil, err
	}

	runner := chainctl.NewExecRunner(cfg.ChainctlPath, cfg.CommandTimeout())
	return keyring.NewBackend(runner, opts)
}

func getCmdFunc(cmd *cobra.Command, args []string) error {
	service := args[0]

	backend, err := newBackend()
	if err != nil {
		return err
	}

	token, _ := backend.GetPassword(cmd.Context(), service, keyring.TokenUsername)
	if token == "" {
		return fmt.Errorf("no credential available for %s", service)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func credentialCmdFunc(cmd *cobra.Command, args []string) error {
	service := args[0]

	backend, err := newBackend()
	if err != nil {
		return err
	}

	cred, _ := backend.GetCredential(cmd.Context(), service, keyring.TokenUsername)
	if cred == nil {
		return fmt.Errorf("no credential available for %s", service)
	}

	if credentialJSON {
		out, err := json.Marshal(map[string]string{
			"username": cred.Username,
			"password": cred.Password,
		})
		if err != nil {
			return fmt.Errorf("failed to serialize credential: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Username: %s\nPassword: %s\n", cred.Username, cred.Password)
	return nil
}
