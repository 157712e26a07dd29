// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stacklok/vaultsync/pkg/sync"
	"github.com/stacklok/vaultsync/pkg/vault"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the secrets file without touching the cluster",
	Long: `Validate loads the secrets file, checks its shape, synthesizes derived
fields, and prints the resulting sync plan with all values redacted.
Nothing is executed and no cluster access is needed.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         validateCmdFunc,
}

func init() {
	addFileFlag(validateCmd)
	addClusterFlags(validateCmd)
	validateCmd.Flags().String(flagMount, "", "KV mount prefix to write secret groups under")
}

func validateCmdFunc(cmd *cobra.Command, _ []string) error {
	opts, _, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	syncer := sync.New(opts, nil, nil)
	set, err := syncer.Load()
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d secret group(s)\n", opts.File, set.Len())
	for _, group := range set.Groups() {
		fmt.Println(vault.RedactedCommand(opts.Mount, group))
	}
	return nil
}
