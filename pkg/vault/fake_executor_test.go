// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package vault

import (
	"context"
	"strings"
)

// execCall records one invocation of the fake executor.
type execCall struct {
	namespace string
	pod       string
	container string
	command   []string
}

// fakeExecutor is a hand-written k8s.Executor for tests. It records every
// call and can be told to fail when the command contains a substring.
type fakeExecutor struct {
	calls []execCall

	stdout string
	stderr string
	err    error

	// failOn, when non-empty, makes Exec return failErr/failStderr for
	// commands containing the substring.
	failOn     string
	failErr    error
	failStderr string
}

func (f *fakeExecutor) Exec(
	_ context.Context,
	namespace, pod, container string,
	command []string,
) (string, string, error) {
	f.calls = append(f.calls, execCall{
		namespace: namespace,
		pod:       pod,
		container: container,
		command:   command,
	})

	if f.failOn != "" && strings.Contains(strings.Join(command, " "), f.failOn) {
		return "", f.failStderr, f.failErr
	}

	return f.stdout, f.stderr, f.err
}
