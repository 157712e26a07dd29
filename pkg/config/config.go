// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package config contains the definition of the application config
// structure and the logic required to load it. The config file is
// optional; it supplies defaults for the cluster addressing flags so
// operators don't have to repeat them on every invocation.
package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/vaultsync/pkg/errors"
)

// Default addressing constants. They match the stock Vault Helm chart
// layout so the tool works out of the box against a standard install.
const (
	// DefaultNamespace is the namespace the Vault pod is expected in.
	DefaultNamespace = "vault"

	// DefaultPod is the name of the Vault server pod.
	DefaultPod = "vault-0"

	// DefaultContainer is the container to exec into.
	DefaultContainer = "vault"

	// DefaultMount is the KV mount prefix secrets are written under.
	DefaultMount = "secret"
)

// DefaultTimeout bounds each remote call when the operator sets none.
const DefaultTimeout = 30 * time.Second

// Config represents the configuration of the application.
type Config struct {
	// Namespace is the Kubernetes namespace of the Vault pod.
	Namespace string `yaml:"namespace"`

	// Pod is the name of the Vault pod.
	Pod string `yaml:"pod"`

	// Container is the container within the pod to exec into.
	Container string `yaml:"container"`

	// Mount is the KV mount prefix secret groups are written under.
	Mount string `yaml:"mount"`

	// Kubeconfig optionally pins the cluster-access credential file.
	Kubeconfig string `yaml:"kubeconfig,omitempty"`
}

// Default returns a config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		Namespace: DefaultNamespace,
		Pod:       DefaultPod,
		Container: DefaultContainer,
		Mount:     DefaultMount,
	}
}

// getConfigPath returns the conventional location of the config file.
func getConfigPath() (string, error) {
	configPath, err := xdg.ConfigFile("vaultsync/config.yaml")
	if err != nil {
		return "", fmt.Errorf("unable to determine config path: %w", err)
	}
	return configPath, nil
}

// Load reads the config file from the XDG config path, falling back to
// defaults when no file exists.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, errors.NewConfigError("unable to fetch config path", err)
	}
	return LoadFromPath(configPath)
}

// LoadFromPath reads the config file at the given path. A missing file is
// not an error; defaults are returned instead.
func LoadFromPath(configPath string) (*Config, error) {
	cleanPath := path.Clean(configPath)

	data, err := os.ReadFile(cleanPath) // #nosec G304 - path comes from XDG or the operator
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.NewConfigError(
			fmt.Sprintf("failed to read config file %s", cleanPath), err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError(
			fmt.Sprintf("failed to parse config file %s", cleanPath), err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects configs that would address nothing.
func (c *Config) validate() error {
	if c.Namespace == "" {
		return errors.NewConfigError("namespace cannot be empty", nil)
	}
	if c.Pod == "" {
		return errors.NewConfigError("pod cannot be empty", nil)
	}
	if c.Container == "" {
		return errors.NewConfigError("container cannot be empty", nil)
	}
	if c.Mount == "" {
		return errors.NewConfigError("mount cannot be empty", nil)
	}
	return nil
}
