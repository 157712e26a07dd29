// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package vault

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/vaultsync/pkg/errors"
)

func TestParseSealStatus(t *testing.T) {
	t.Parallel()

	status, err := ParseSealStatus(`{"initialized": true, "sealed": false, "version": "1.15.2"}`)
	require.NoError(t, err)
	assert.True(t, status.Initialized)
	assert.False(t, status.Sealed)
	assert.Equal(t, "1.15.2", status.Version)

	_, err = ParseSealStatus("vault: command not found")
	assert.Error(t, err)
}

func TestCheckReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		exec    *fakeExecutor
		check   func(error) bool
		wantErr string
	}{
		{
			name: "ready",
			exec: &fakeExecutor{stdout: `{"initialized": true, "sealed": false}`},
		},
		{
			// `vault status` exits non-zero when sealed but still
			// prints the status JSON.
			name: "sealed",
			exec: &fakeExecutor{
				stdout: `{"initialized": true, "sealed": true}`,
				err:    stderrors.New("command terminated with exit code 2"),
			},
			check:   errors.IsPrecondition,
			wantErr: "is sealed",
		},
		{
			name:    "not initialized",
			exec:    &fakeExecutor{stdout: `{"initialized": false, "sealed": true}`},
			check:   errors.IsPrecondition,
			wantErr: "is not initialized",
		},
		{
			name: "unreachable",
			exec: &fakeExecutor{
				stderr: "error connecting to pod\n",
				err:    stderrors.New("dial tcp: connection refused"),
			},
			check:   errors.IsPrecondition,
			wantErr: "not reachable",
		},
		{
			name:    "garbage output",
			exec:    &fakeExecutor{stdout: "not json"},
			check:   errors.IsPrecondition,
			wantErr: "unable to parse vault status",
		},
		{
			name:    "deadline exceeded",
			exec:    &fakeExecutor{err: context.DeadlineExceeded},
			check:   errors.IsTimeout,
			wantErr: "timed out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := CheckReady(context.Background(), tt.exec, testTarget)
			if tt.check == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error type: %v", err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCheckReadyUsesStatusCommand(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{stdout: `{"initialized": true, "sealed": false}`}
	require.NoError(t, CheckReady(context.Background(), exec, testTarget))
	require.Len(t, exec.calls, 1)
	assert.Equal(t, []string{"vault", "status", "-format=json"}, exec.calls[0].command)
}
