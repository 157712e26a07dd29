// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package k8s provides the Kubernetes plumbing for vaultsync: client
// construction from a resolved kubeconfig, precondition checks against
// the target namespace and pod, and an exec channel into a running pod.
package k8s

import (
	"fmt"
	"os"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/stacklok/vaultsync/pkg/errors"
)

// kubeconfigEnvVar is the standard environment variable naming the
// cluster-access credential file.
const kubeconfigEnvVar = "KUBECONFIG"

// ResolveKubeconfig determines the kubeconfig path to use. Precedence:
// the explicit path (usually from a flag), the KUBECONFIG environment
// variable, then the conventional $HOME/.kube/config fallback. It
// returns a config error if the chosen path does not point at an
// existing file.
func ResolveKubeconfig(explicit string) (string, error) {
	path := explicit
	if path == "" {
		path = os.Getenv(kubeconfigEnvVar)
	}
	if path == "" {
		path = clientcmd.RecommendedHomeFile
	}

	if _, err := os.Stat(path); err != nil {
		return "", errors.NewConfigError(
			fmt.Sprintf("kubeconfig %s does not exist", path), err)
	}

	return path, nil
}

// NewClient creates a Kubernetes clientset from the kubeconfig at the
// given path.
func NewClient(kubeconfigPath string) (kubernetes.Interface, *rest.Config, error) {
	config, err := clientcmd.BuildConfigFromFlags("", kubeconfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes config: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return clientset, config, nil
}
