// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package k8s

import (
	"context"
	stderrors "errors"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/stacklok/vaultsync/pkg/errors"
)

// CheckNamespaceExists verifies the target namespace exists.
func CheckNamespaceExists(ctx context.Context, client kubernetes.Interface, namespace string) error {
	_, err := client.CoreV1().Namespaces().Get(ctx, namespace, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return errors.NewPreconditionError(
				fmt.Sprintf("namespace %s does not exist", namespace), err)
		}
		return classifyAPIError(err,
			fmt.Sprintf("unable to verify namespace %s", namespace))
	}
	return nil
}

// CheckPodRunning verifies the target pod exists in the namespace and is
// in phase Running.
func CheckPodRunning(ctx context.Context, client kubernetes.Interface, namespace, pod string) error {
	p, err := client.CoreV1().Pods(namespace).Get(ctx, pod, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return errors.NewPreconditionError(
				fmt.Sprintf("pod %s not found in namespace %s", pod, namespace), err)
		}
		return classifyAPIError(err,
			fmt.Sprintf("unable to verify pod %s in namespace %s", pod, namespace))
	}

	if p.Status.Phase != corev1.PodRunning {
		return errors.NewPreconditionError(
			fmt.Sprintf("pod %s in namespace %s is not running (phase %s)", pod, namespace, p.Status.Phase), nil)
	}

	return nil
}

// classifyAPIError maps a context deadline to a timeout error and wraps
// everything else as a precondition failure.
func classifyAPIError(err error, message string) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewTimeoutError(message, err)
	}
	return errors.NewPreconditionError(message, err)
}
