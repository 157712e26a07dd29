// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package k8s

import (
	"context"
	"fmt"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/stacklok/vaultsync/pkg/errors"
	"github.com/stacklok/vaultsync/pkg/logger"
)

// WaitForPodReady polls until the pod reports the Ready condition or the
// context expires. This is an opt-in convenience before the precheck; the
// sync pipeline itself never retries.
func WaitForPodReady(ctx context.Context, client kubernetes.Interface, namespace, pod string) error {
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.MaxInterval = 10 * time.Second

	operation := func() error {
		p, err := client.CoreV1().Pods(namespace).Get(ctx, pod, metav1.GetOptions{})
		if err != nil {
			return err
		}
		if !podReady(p) {
			return fmt.Errorf("pod %s is not ready (phase %s)", pod, p.Status.Phase)
		}
		return nil
	}

	notify := func(err error, duration time.Duration) {
		logger.Debugf("waiting for pod %s/%s: %v (retrying in %s)", namespace, pod, err, duration)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(expBackoff, ctx), notify); err != nil {
		return errors.NewPreconditionError(
			fmt.Sprintf("pod %s in namespace %s did not become ready", pod, namespace), err)
	}

	return nil
}

// podReady reports whether the pod is running with a true Ready condition.
func podReady(pod *corev1.Pod) bool {
	if pod.Status.Phase != corev1.PodRunning {
		return false
	}
	for _, cond := range pod.Status.Conditions {
		if cond.Type == corev1.PodReady {
			return cond.Status == corev1.ConditionTrue
		}
	}
	return false
}
