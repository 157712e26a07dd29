// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package k8s

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/stacklok/vaultsync/pkg/errors"
)

func namespaceObj(name string) *corev1.Namespace {
	return &corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: name}}
}

func podObj(namespace, name string, phase corev1.PodPhase) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Status:     corev1.PodStatus{Phase: phase},
	}
}

func TestCheckNamespaceExists(t *testing.T) {
	t.Parallel()

	clientset := fake.NewClientset(namespaceObj("vault"))
	assert.NoError(t, CheckNamespaceExists(context.Background(), clientset, "vault"))
}

func TestCheckNamespaceMissing(t *testing.T) {
	t.Parallel()

	clientset := fake.NewClientset()
	err := CheckNamespaceExists(context.Background(), clientset, "vault")
	require.Error(t, err)
	assert.True(t, errors.IsPrecondition(err))
	assert.Contains(t, err.Error(), "namespace vault does not exist")
}

func TestCheckPodRunning(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		objects []*corev1.Pod
		wantErr string
	}{
		{
			name:    "running pod",
			objects: []*corev1.Pod{podObj("vault", "vault-0", corev1.PodRunning)},
		},
		{
			name:    "pod missing",
			objects: nil,
			wantErr: "pod vault-0 not found in namespace vault",
		},
		{
			name:    "pod pending",
			objects: []*corev1.Pod{podObj("vault", "vault-0", corev1.PodPending)},
			wantErr: "is not running (phase Pending)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			clientset := fake.NewClientset()
			for _, pod := range tt.objects {
				_, err := clientset.CoreV1().Pods(pod.Namespace).Create(
					context.Background(), pod, metav1.CreateOptions{})
				require.NoError(t, err)
			}

			err := CheckPodRunning(context.Background(), clientset, "vault", "vault-0")
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, errors.IsPrecondition(err))
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestWaitForPodReady(t *testing.T) {
	t.Parallel()

	readyPod := podObj("vault", "vault-0", corev1.PodRunning)
	readyPod.Status.Conditions = []corev1.PodCondition{
		{Type: corev1.PodReady, Status: corev1.ConditionTrue},
	}

	clientset := fake.NewClientset(readyPod)
	assert.NoError(t, WaitForPodReady(context.Background(), clientset, "vault", "vault-0"))
}

func TestWaitForPodReadyGivesUpOnContext(t *testing.T) {
	t.Parallel()

	clientset := fake.NewClientset(podObj("vault", "vault-0", corev1.PodPending))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WaitForPodReady(ctx, clientset, "vault", "vault-0")
	require.Error(t, err)
	assert.True(t, errors.IsPrecondition(err))
}
