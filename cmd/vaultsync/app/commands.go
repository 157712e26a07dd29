// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package app provides the entry point for the vaultsync command-line
// application.
package app

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stacklok/vaultsync/pkg/logger"
)

// envPrefix namespaces the environment variables bound to flags, e.g.
// VAULTSYNC_NAMESPACE, VAULTSYNC_VAULT_TOKEN.
const envPrefix = "vaultsync"

var rootCmd = &cobra.Command{
	Use:               "vaultsync",
	DisableAutoGenTag: true,
	Short:             "vaultsync pushes a local secrets file into a Vault server running in Kubernetes",
	Long: `vaultsync reads a local YAML secrets file, validates its shape, and writes
each secret group into the KV store of a Vault server running inside a
Kubernetes pod, using the pod's exec channel.

The pipeline is strictly ordered: load, validate, transform, precheck,
push. It stops at the first failure and never retries; groups written
before a failure stay written.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// Re-initialize the logger now that the debug flag is parsed.
		logger.Initialize()
	},
	Run: func(cmd *cobra.Command, _ []string) {
		// If no subcommand is provided, print help
		if err := cmd.Help(); err != nil {
			logger.Errorf("Error displaying help: %v", err)
		}
	},
}

// initEnvBinding wires viper to the VAULTSYNC_* environment variables.
func initEnvBinding() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// NewRootCmd creates a new root command for the vaultsync CLI.
func NewRootCmd() *cobra.Command {
	initEnvBinding()

	// Add persistent flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")
	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		logger.Errorf("Error binding debug flag: %v", err)
	}

	// Add subcommands
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
