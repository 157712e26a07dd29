// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package vault builds and executes the Vault KV write commands that
// push secret groups into a Vault server running inside a cluster pod.
package vault

import (
	"fmt"
	"strings"

	"github.com/stacklok/vaultsync/pkg/errors"
	"github.com/stacklok/vaultsync/pkg/secrets"
)

// Target addresses the pod hosting the Vault server.
type Target struct {
	// Namespace is the Kubernetes namespace of the Vault pod.
	Namespace string

	// Pod is the name of the Vault pod.
	Pod string

	// Container is the container within the pod to exec into.
	Container string
}

// redactedValue replaces field values in redacted command output.
const redactedValue = "'<redacted>'"

// WriteCommand serializes a secret group into the shell command line that
// writes it to the KV store, e.g.
//
//	vault kv put secret/db pass='b
//	c' user='a'
//
// Fields are emitted in sorted order. Each value is single-quoted so
// embedded newlines survive the shell verbatim. Values containing a
// single quote cannot be represented safely and are rejected with a
// schema error rather than silently re-quoted. Group and field names are
// emitted unquoted, so anything that is not a plain shell word is
// rejected the same way.
func WriteCommand(mount string, group *secrets.SecretGroup) (string, error) {
	if !secrets.ValidName(group.Name) {
		return "", errors.NewSchemaError(
			fmt.Sprintf("group %q: name must contain only letters, digits, and ._-", group.Name), nil)
	}

	var b strings.Builder
	b.WriteString("vault kv put ")
	b.WriteString(kvPath(mount, group.Name))

	for _, name := range group.FieldNames() {
		if !secrets.ValidName(name) {
			return "", errors.NewSchemaError(
				fmt.Sprintf("group %q: field name %q must contain only letters, digits, and ._-",
					group.Name, name), nil)
		}
		quoted, err := quoteValue(group.Fields[name])
		if err != nil {
			return "", errors.NewSchemaError(
				fmt.Sprintf("group %q: value for key %q: %s", group.Name, name, err), nil)
		}
		b.WriteString(" ")
		b.WriteString(name)
		b.WriteString("=")
		b.WriteString(quoted)
	}

	return b.String(), nil
}

// RedactedCommand is WriteCommand with every value replaced by a
// placeholder, for displaying the sync plan without exposing secrets.
func RedactedCommand(mount string, group *secrets.SecretGroup) string {
	var b strings.Builder
	b.WriteString("vault kv put ")
	b.WriteString(kvPath(mount, group.Name))

	for _, name := range group.FieldNames() {
		b.WriteString(" ")
		b.WriteString(name)
		b.WriteString("=")
		b.WriteString(redactedValue)
	}

	return b.String()
}

// kvPath joins the KV mount prefix and the group name into the storage
// path the group is written to.
func kvPath(mount, group string) string {
	return strings.TrimSuffix(mount, "/") + "/" + group
}

// quoteValue wraps a value in single quotes for /bin/sh. Inside single
// quotes the shell performs no interpretation at all, which is exactly
// what keeps multi-line values intact; it also means an embedded single
// quote cannot be escaped and must be rejected.
func quoteValue(value string) (string, error) {
	if strings.Contains(value, "'") {
		return "", fmt.Errorf("single quotes are not supported in secret values")
	}
	return "'" + value + "'", nil
}
