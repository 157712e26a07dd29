// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package k8s

import (
	"bytes"
	"context"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/remotecommand"
)

// Executor runs a command inside a pod container and returns its output.
// Implementations must honor the context deadline.
type Executor interface {
	Exec(ctx context.Context, namespace, pod, container string, command []string) (stdout, stderr string, err error)
}

// podExecutor executes commands through the Kubernetes exec subresource
// over a SPDY channel.
type podExecutor struct {
	client kubernetes.Interface
	config *rest.Config
}

// NewPodExecutor creates an Executor backed by the exec subresource of
// the given cluster.
func NewPodExecutor(client kubernetes.Interface, config *rest.Config) Executor {
	return &podExecutor{client: client, config: config}
}

// Exec runs the command in the named pod container, capturing stdout and
// stderr. The returned error is non-nil when the stream could not be set
// up or the remote command exited non-zero; callers classify it.
func (e *podExecutor) Exec(
	ctx context.Context,
	namespace, pod, container string,
	command []string,
) (string, string, error) {
	req := e.client.CoreV1().RESTClient().Post().
		Resource("pods").
		Name(pod).
		Namespace(namespace).
		SubResource("exec").
		VersionedParams(&corev1.PodExecOptions{
			Container: container,
			Command:   command,
			Stdout:    true,
			Stderr:    true,
			TTY:       false,
		}, scheme.ParameterCodec)

	exec, err := remotecommand.NewSPDYExecutor(e.config, "POST", req.URL())
	if err != nil {
		return "", "", err
	}

	var stdout, stderr bytes.Buffer
	err = exec.StreamWithContext(ctx, remotecommand.StreamOptions{
		Stdout: &stdout,
		Stderr: &stderr,
		Tty:    false,
	})

	return stdout.String(), stderr.String(), err
}
