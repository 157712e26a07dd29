// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stacklok/vaultsync/pkg/sync"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Run the cluster precheck and report the result",
	Long: `Status verifies the target namespace exists, the Vault pod is running,
and the Vault server is initialized and unsealed, without writing
anything.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         statusCmdFunc,
}

func init() {
	addClusterFlags(statusCmd)
	statusCmd.Flags().Bool(flagWait, false, "Wait for the Vault pod to become Ready before the precheck")
}

func statusCmdFunc(cmd *cobra.Command, _ []string) error {
	opts, cfg, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	client, exec, err := buildCluster(cmd, cfg)
	if err != nil {
		return err
	}

	if err := sync.New(opts, client, exec).Precheck(cmd.Context()); err != nil {
		return err
	}

	fmt.Printf("vault at %s is ready\n", vaultTargetString(opts.Target))
	return nil
}
