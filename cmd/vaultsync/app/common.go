// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"k8s.io/client-go/kubernetes"

	"github.com/stacklok/vaultsync/pkg/config"
	"github.com/stacklok/vaultsync/pkg/k8s"
	"github.com/stacklok/vaultsync/pkg/sync"
	"github.com/stacklok/vaultsync/pkg/vault"
)

// Flag names shared across subcommands.
const (
	flagFile       = "file"
	flagNamespace  = "namespace"
	flagPod        = "pod"
	flagContainer  = "container"
	flagMount      = "mount"
	flagKubeconfig = "kubeconfig"
	flagTimeout    = "timeout"
	flagVaultToken = "vault-token"
	flagDryRun     = "dry-run"
	flagWait       = "wait"
)

// addFileFlag registers the secrets file flag.
func addFileFlag(cmd *cobra.Command) {
	cmd.Flags().String(flagFile, "secrets.yaml", "Path to the secrets file")
}

// addClusterFlags registers the flags addressing the Vault pod.
func addClusterFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagNamespace, "", "Kubernetes namespace of the Vault pod")
	cmd.Flags().String(flagPod, "", "Name of the Vault pod")
	cmd.Flags().String(flagContainer, "", "Container within the pod to exec into")
	cmd.Flags().String(flagKubeconfig, "", "Path to the kubeconfig file (defaults to $KUBECONFIG, then ~/.kube/config)")
	cmd.Flags().Duration(flagTimeout, config.DefaultTimeout, "Timeout for each remote call")
}

// addPushFlags registers the flags controlling the push stage.
func addPushFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagMount, "", "KV mount prefix to write secret groups under")
	cmd.Flags().String(flagVaultToken, "", "Vault token for the remote commands; use '-' to be prompted")
	cmd.Flags().Bool(flagDryRun, false, "Print the would-be commands instead of executing them")
	cmd.Flags().Bool(flagWait, false, "Wait for the Vault pod to become Ready before the precheck")
}

// stringOption resolves a string setting with the precedence
// flag > environment variable > config file value.
func stringOption(cmd *cobra.Command, name, configValue string) (string, error) {
	if cmd.Flags().Changed(name) {
		return cmd.Flags().GetString(name)
	}
	if env := viper.GetString(name); env != "" {
		return env, nil
	}
	return configValue, nil
}

// resolveOptions builds the sync options from flags, environment
// variables, and the optional config file. The loaded config is returned
// alongside so callers can reuse it (e.g. for the kubeconfig setting).
func resolveOptions(cmd *cobra.Command) (sync.Options, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return sync.Options{}, nil, err
	}

	var opts sync.Options

	if cmd.Flags().Lookup(flagFile) != nil {
		if opts.File, err = stringOption(cmd, flagFile, "secrets.yaml"); err != nil {
			return sync.Options{}, nil, err
		}
	}

	if opts.Target.Namespace, err = stringOption(cmd, flagNamespace, cfg.Namespace); err != nil {
		return sync.Options{}, nil, err
	}
	if opts.Target.Pod, err = stringOption(cmd, flagPod, cfg.Pod); err != nil {
		return sync.Options{}, nil, err
	}
	if opts.Target.Container, err = stringOption(cmd, flagContainer, cfg.Container); err != nil {
		return sync.Options{}, nil, err
	}

	if opts.Timeout, err = cmd.Flags().GetDuration(flagTimeout); err != nil {
		return sync.Options{}, nil, err
	}

	if cmd.Flags().Lookup(flagMount) != nil {
		if opts.Mount, err = stringOption(cmd, flagMount, cfg.Mount); err != nil {
			return sync.Options{}, nil, err
		}
	}
	if cmd.Flags().Lookup(flagDryRun) != nil {
		if opts.DryRun, err = cmd.Flags().GetBool(flagDryRun); err != nil {
			return sync.Options{}, nil, err
		}
	}
	if cmd.Flags().Lookup(flagWait) != nil {
		if opts.Wait, err = cmd.Flags().GetBool(flagWait); err != nil {
			return sync.Options{}, nil, err
		}
	}
	if cmd.Flags().Lookup(flagVaultToken) != nil {
		if opts.Token, err = resolveToken(cmd); err != nil {
			return sync.Options{}, nil, err
		}
	}

	return opts, cfg, nil
}

// resolveToken returns the Vault token from the flag, prompting when the
// flag value is "-", and falling back to the VAULTSYNC_VAULT_TOKEN
// environment variable.
func resolveToken(cmd *cobra.Command) (string, error) {
	token, err := cmd.Flags().GetString(flagVaultToken)
	if err != nil {
		return "", err
	}

	if token == "-" {
		fmt.Print("Enter vault token (input will be hidden): ")
		tokenBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println("")
		if err != nil {
			return "", fmt.Errorf("error reading vault token from terminal: %w", err)
		}
		return string(tokenBytes), nil
	}

	if token == "" {
		token = viper.GetString(flagVaultToken)
	}
	return token, nil
}

// buildCluster resolves the kubeconfig and constructs the clientset and
// exec channel used by the precheck and push stages.
func buildCluster(cmd *cobra.Command, cfg *config.Config) (kubernetes.Interface, k8s.Executor, error) {
	explicit, err := stringOption(cmd, flagKubeconfig, cfg.Kubeconfig)
	if err != nil {
		return nil, nil, err
	}

	kubeconfig, err := k8s.ResolveKubeconfig(explicit)
	if err != nil {
		return nil, nil, err
	}

	client, restConfig, err := k8s.NewClient(kubeconfig)
	if err != nil {
		return nil, nil, err
	}

	return client, k8s.NewPodExecutor(client, restConfig), nil
}

// vaultTargetString formats a target for human-readable output.
func vaultTargetString(target vault.Target) string {
	return fmt.Sprintf("%s/%s (container %s)", target.Namespace, target.Pod, target.Container)
}
