// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package vault

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/vaultsync/pkg/config"
	"github.com/stacklok/vaultsync/pkg/errors"
	"github.com/stacklok/vaultsync/pkg/secrets"
)

var testTarget = Target{Namespace: "vault", Pod: "vault-0", Container: "vault"}

func testSet(t *testing.T) *secrets.SecretSet {
	t.Helper()
	set := secrets.NewSecretSet()
	set.Add(&secrets.SecretGroup{Name: "db", Fields: map[string]string{
		"user": "a",
		"pass": "b\nc",
	}})
	set.Add(&secrets.SecretGroup{Name: "cache", Fields: map[string]string{
		"url": "redis://localhost",
	}})
	return set
}

func TestPushExecutesOneCommandPerGroup(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{}
	pusher := NewPusher(exec, testTarget, "secret")

	require.NoError(t, pusher.Push(context.Background(), testSet(t)))
	require.Len(t, exec.calls, 2)

	// Groups are pushed in name order.
	assert.Equal(t, []string{"/bin/sh", "-c", "vault kv put secret/cache url='redis://localhost'"},
		exec.calls[0].command)
	assert.Equal(t, []string{"/bin/sh", "-c", "vault kv put secret/db pass='b\nc' user='a'"},
		exec.calls[1].command)

	assert.Equal(t, "vault", exec.calls[0].namespace)
	assert.Equal(t, "vault-0", exec.calls[0].pod)
	assert.Equal(t, "vault", exec.calls[0].container)
}

func TestPushDryRunNeverExecs(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{}
	var out bytes.Buffer
	pusher := NewPusher(exec, testTarget, "secret", WithDryRun(true), WithOutput(&out))

	require.NoError(t, pusher.Push(context.Background(), testSet(t)))
	assert.Empty(t, exec.calls)

	printed := out.String()
	// One command per group, multi-line value verbatim.
	assert.Contains(t, printed, "vault kv put secret/cache url='redis://localhost'\n")
	assert.Contains(t, printed, "vault kv put secret/db pass='b\nc' user='a'\n")
}

func TestPushPrependsToken(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{}
	pusher := NewPusher(exec, testTarget, "secret", WithToken("root-token"))

	set := secrets.NewSecretSet()
	set.Add(&secrets.SecretGroup{Name: "db", Fields: map[string]string{"user": "a"}})

	require.NoError(t, pusher.Push(context.Background(), set))
	require.Len(t, exec.calls, 1)
	assert.Equal(t, "VAULT_TOKEN='root-token' vault kv put secret/db user='a'",
		exec.calls[0].command[2])
}

func TestPushStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{
		failOn:     "secret/cache",
		failErr:    stderrors.New("command terminated with exit code 2"),
		failStderr: "permission denied\n",
	}
	pusher := NewPusher(exec, testTarget, "secret")

	err := pusher.Push(context.Background(), testSet(t))
	require.Error(t, err)
	assert.True(t, errors.IsExecution(err))
	assert.Contains(t, err.Error(), "group cache")
	assert.Contains(t, err.Error(), "permission denied")

	// cache sorts first, so db was never attempted.
	require.Len(t, exec.calls, 1)
	assert.True(t, strings.Contains(strings.Join(exec.calls[0].command, " "), "secret/cache"))
}

func TestPushMapsDeadlineToTimeout(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{err: context.DeadlineExceeded}
	pusher := NewPusher(exec, testTarget, "secret")

	set := secrets.NewSecretSet()
	set.Add(&secrets.SecretGroup{Name: "db", Fields: map[string]string{"user": "a"}})

	err := pusher.Push(context.Background(), set)
	require.Error(t, err)
	assert.True(t, errors.IsTimeout(err))
	assert.Contains(t, err.Error(), "group db")
}

func TestPushRejectsUnquotableValueBeforeExec(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{}
	pusher := NewPusher(exec, testTarget, "secret")

	set := secrets.NewSecretSet()
	set.Add(&secrets.SecretGroup{Name: "db", Fields: map[string]string{"pass": "a'b"}})

	err := pusher.Push(context.Background(), set)
	require.Error(t, err)
	assert.True(t, errors.IsSchema(err))
	assert.Empty(t, exec.calls)
}

func TestNewPusherDefaultTimeout(t *testing.T) {
	t.Parallel()

	p := NewPusher(&fakeExecutor{}, testTarget, "secret")
	assert.Equal(t, config.DefaultTimeout, p.timeout)
}
