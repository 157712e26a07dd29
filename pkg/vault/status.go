// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package vault

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/stacklok/vaultsync/pkg/errors"
	"github.com/stacklok/vaultsync/pkg/k8s"
)

// SealStatus is the subset of `vault status -format=json` output the
// precheck cares about.
type SealStatus struct {
	Initialized bool   `json:"initialized"`
	Sealed      bool   `json:"sealed"`
	Version     string `json:"version"`
}

// statusCommand reports the seal status in JSON on stdout. Note that
// `vault status` exits non-zero when the server is sealed, so the exec
// error alone does not distinguish "sealed" from "unreachable".
var statusCommand = []string{"vault", "status", "-format=json"}

// CheckReady verifies the Vault server inside the target pod is
// reachable, initialized, and unsealed. Any unmet condition is a
// precondition error; a context deadline maps to a timeout error.
func CheckReady(ctx context.Context, exec k8s.Executor, target Target) error {
	stdout, stderr, execErr := exec.Exec(ctx, target.Namespace, target.Pod, target.Container, statusCommand)
	if stderrors.Is(execErr, context.DeadlineExceeded) {
		return errors.NewTimeoutError(
			fmt.Sprintf("timed out checking vault status in pod %s/%s", target.Namespace, target.Pod), execErr)
	}

	status, parseErr := ParseSealStatus(stdout)
	if parseErr != nil {
		if execErr != nil {
			return errors.NewPreconditionError(
				fmt.Sprintf("vault in pod %s/%s is not reachable: %s", target.Namespace, target.Pod, firstLine(stderr)), execErr)
		}
		return errors.NewPreconditionError(
			fmt.Sprintf("unable to parse vault status from pod %s/%s", target.Namespace, target.Pod), parseErr)
	}

	if !status.Initialized {
		return errors.NewPreconditionError(
			fmt.Sprintf("vault in pod %s/%s is not initialized", target.Namespace, target.Pod), nil)
	}
	if status.Sealed {
		return errors.NewPreconditionError(
			fmt.Sprintf("vault in pod %s/%s is sealed", target.Namespace, target.Pod), nil)
	}

	return nil
}

// ParseSealStatus decodes the JSON emitted by `vault status -format=json`.
func ParseSealStatus(output string) (*SealStatus, error) {
	var status SealStatus
	if err := json.Unmarshal([]byte(output), &status); err != nil {
		return nil, fmt.Errorf("invalid vault status output: %w", err)
	}
	return &status, nil
}

// firstLine trims remote stderr down to something usable in an error
// message.
func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
