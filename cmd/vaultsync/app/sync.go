// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"github.com/spf13/cobra"
	"k8s.io/client-go/kubernetes"

	"github.com/stacklok/vaultsync/pkg/k8s"
	"github.com/stacklok/vaultsync/pkg/sync"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push the secrets file into Vault",
	Long: `Sync runs the full pipeline: load the secrets file, validate its shape,
synthesize derived fields, verify the namespace, pod, and Vault seal
status, then write each secret group with one 'vault kv put' through the
pod's exec channel.

There is no rollback: if a group fails mid-run, groups pushed before it
stay written. Use --dry-run to inspect the commands without touching the
cluster.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         syncCmdFunc,
}

func init() {
	addFileFlag(syncCmd)
	addClusterFlags(syncCmd)
	addPushFlags(syncCmd)
}

func syncCmdFunc(cmd *cobra.Command, _ []string) error {
	opts, cfg, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	// A dry run is purely local; only build cluster access when we are
	// actually going to talk to it.
	var client kubernetes.Interface
	var exec k8s.Executor
	if !opts.DryRun {
		client, exec, err = buildCluster(cmd, cfg)
		if err != nil {
			return err
		}
	}

	return sync.New(opts, client, exec).Run(cmd.Context())
}
