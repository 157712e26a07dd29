// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package vault

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/stacklok/vaultsync/pkg/config"
	"github.com/stacklok/vaultsync/pkg/errors"
	"github.com/stacklok/vaultsync/pkg/k8s"
	"github.com/stacklok/vaultsync/pkg/logger"
	"github.com/stacklok/vaultsync/pkg/secrets"
)

// Pusher writes secret groups into Vault, one `vault kv put` per group,
// through a pod exec channel. There is no rollback: if group N of M
// fails, groups 1..N-1 stay written.
type Pusher struct {
	exec    k8s.Executor
	target  Target
	mount   string
	token   string
	dryRun  bool
	timeout time.Duration
	out     io.Writer
}

// PusherOption configures a Pusher.
type PusherOption func(*Pusher)

// WithDryRun makes the pusher print the would-be commands instead of
// executing them.
func WithDryRun(dryRun bool) PusherOption {
	return func(p *Pusher) { p.dryRun = dryRun }
}

// WithToken sets the Vault token exported to each remote command.
func WithToken(token string) PusherOption {
	return func(p *Pusher) { p.token = token }
}

// WithTimeout bounds each remote call.
func WithTimeout(timeout time.Duration) PusherOption {
	return func(p *Pusher) {
		if timeout > 0 {
			p.timeout = timeout
		}
	}
}

// WithOutput redirects dry-run output; defaults to stdout.
func WithOutput(w io.Writer) PusherOption {
	return func(p *Pusher) { p.out = w }
}

// NewPusher creates a Pusher writing to the KV mount on the target pod.
func NewPusher(exec k8s.Executor, target Target, mount string, opts ...PusherOption) *Pusher {
	p := &Pusher{
		exec:    exec,
		target:  target,
		mount:   mount,
		timeout: config.DefaultTimeout,
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Push writes every group in the set, ordered by group name. It stops at
// the first failure; earlier groups are not rolled back.
func (p *Pusher) Push(ctx context.Context, set *secrets.SecretSet) error {
	for _, group := range set.Groups() {
		if err := p.pushGroup(ctx, group); err != nil {
			return err
		}
	}
	return nil
}

// pushGroup writes a single group.
func (p *Pusher) pushGroup(ctx context.Context, group *secrets.SecretGroup) error {
	command, err := WriteCommand(p.mount, group)
	if err != nil {
		return err
	}

	if p.dryRun {
		fmt.Fprintln(p.out, command)
		return nil
	}

	remote := command
	if p.token != "" {
		quoted, err := quoteValue(p.token)
		if err != nil {
			return errors.NewConfigError("vault token contains a single quote", nil)
		}
		remote = "VAULT_TOKEN=" + quoted + " " + command
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	logger.Infof("pushing secret group %s to %s", group.Name, kvPath(p.mount, group.Name))
	_, stderr, err := p.exec.Exec(callCtx, p.target.Namespace, p.target.Pod, p.target.Container,
		[]string{"/bin/sh", "-c", remote})
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return errors.NewTimeoutError(
				fmt.Sprintf("timed out pushing group %s", group.Name), err)
		}
		return errors.NewExecutionError(
			fmt.Sprintf("vault kv put failed for group %s: %s", group.Name, firstLine(stderr)), err)
	}

	return nil
}
