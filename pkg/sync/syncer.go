// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package sync wires the vaultsync pipeline together: load the secrets
// file, validate it, synthesize derived fields, verify the cluster and
// Vault are ready, then push each group. Stages run strictly in order
// and the pipeline is terminal on the first failure.
package sync

import (
	"context"
	"io"
	"os"
	"time"

	"k8s.io/client-go/kubernetes"

	"github.com/stacklok/vaultsync/pkg/config"
	"github.com/stacklok/vaultsync/pkg/k8s"
	"github.com/stacklok/vaultsync/pkg/logger"
	"github.com/stacklok/vaultsync/pkg/secrets"
	"github.com/stacklok/vaultsync/pkg/vault"
)

// Options configures a sync run.
type Options struct {
	// File is the path of the secrets file to load.
	File string

	// Target addresses the Vault pod.
	Target vault.Target

	// Mount is the KV mount prefix groups are written under.
	Mount string

	// Token is an optional Vault token exported to each remote command.
	Token string

	// DryRun prints the would-be commands instead of executing them.
	// No cluster access happens at all in dry-run mode.
	DryRun bool

	// Wait blocks until the Vault pod reports Ready before the precheck.
	Wait bool

	// Timeout bounds each remote call.
	Timeout time.Duration
}

// Syncer runs the sync pipeline.
type Syncer struct {
	opts   Options
	client kubernetes.Interface
	exec   k8s.Executor
	out    io.Writer
}

// New creates a Syncer. client and exec may be nil when opts.DryRun is
// set, since a dry run never touches the cluster.
func New(opts Options, client kubernetes.Interface, exec k8s.Executor) *Syncer {
	if opts.Timeout <= 0 {
		opts.Timeout = config.DefaultTimeout
	}
	return &Syncer{
		opts:   opts,
		client: client,
		exec:   exec,
		out:    os.Stdout,
	}
}

// SetOutput redirects dry-run output; used by tests.
func (s *Syncer) SetOutput(w io.Writer) {
	s.out = w
}

// Load reads, validates, and transforms the secrets file into the set
// that would be pushed. It is purely local.
func (s *Syncer) Load() (*secrets.SecretSet, error) {
	doc, err := secrets.LoadFile(s.opts.File)
	if err != nil {
		return nil, err
	}

	set, err := secrets.Validate(doc)
	if err != nil {
		return nil, err
	}

	secrets.SynthesizeDerivedFields(set)
	return set, nil
}

// Precheck verifies, in order: the namespace exists, the pod exists and
// is running, and Vault reports itself initialized and unsealed. It
// fails fast on the first unmet check, before any write.
func (s *Syncer) Precheck(ctx context.Context) error {
	target := s.opts.Target

	if err := s.withTimeout(ctx, func(ctx context.Context) error {
		return k8s.CheckNamespaceExists(ctx, s.client, target.Namespace)
	}); err != nil {
		return err
	}

	if s.opts.Wait {
		if err := k8s.WaitForPodReady(ctx, s.client, target.Namespace, target.Pod); err != nil {
			return err
		}
	}

	if err := s.withTimeout(ctx, func(ctx context.Context) error {
		return k8s.CheckPodRunning(ctx, s.client, target.Namespace, target.Pod)
	}); err != nil {
		return err
	}

	return s.withTimeout(ctx, func(ctx context.Context) error {
		return vault.CheckReady(ctx, s.exec, target)
	})
}

// Run executes the full pipeline.
func (s *Syncer) Run(ctx context.Context) error {
	set, err := s.Load()
	if err != nil {
		return err
	}
	logger.Infof("loaded %d secret group(s) from %s", set.Len(), s.opts.File)

	if !s.opts.DryRun {
		if err := s.Precheck(ctx); err != nil {
			return err
		}
	}

	pusher := vault.NewPusher(s.exec, s.opts.Target, s.opts.Mount,
		vault.WithDryRun(s.opts.DryRun),
		vault.WithToken(s.opts.Token),
		vault.WithTimeout(s.opts.Timeout),
		vault.WithOutput(s.out),
	)

	if err := pusher.Push(ctx, set); err != nil {
		return err
	}

	if s.opts.DryRun {
		logger.Info("dry run complete; nothing was written")
	} else {
		logger.Infof("pushed %d secret group(s)", set.Len())
	}
	return nil
}

// withTimeout runs fn under the configured per-call timeout.
func (s *Syncer) withTimeout(ctx context.Context, fn func(context.Context) error) error {
	callCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()
	return fn(callCtx)
}
