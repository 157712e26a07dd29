// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/vaultsync/pkg/errors"
)

func writeSecretsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secrets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsInputNotFound(err))
	assert.Contains(t, err.Error(), "absent.yaml")
}

func TestLoadFileValid(t *testing.T) {
	t.Parallel()

	path := writeSecretsFile(t, `
secrets:
  db:
    user: a
    pass: b
  cache:
    url: redis://localhost
`)

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path())
	assert.Equal(t, 2, doc.GroupCount())
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		check   func(error) bool
		errMsg  string
	}{
		{
			name:    "malformed yaml",
			content: "secrets: [unclosed",
			check:   errors.IsParse,
		},
		{
			name:    "empty document",
			content: "",
			check:   errors.IsParse,
			errMsg:  "document is empty",
		},
		{
			name:    "top level not a mapping",
			content: "- a\n- b\n",
			check:   errors.IsParse,
			errMsg:  "top level must be a mapping",
		},
		{
			name:    "missing secrets key",
			content: "other: {}\n",
			check:   errors.IsParse,
			errMsg:  `missing top-level "secrets" key`,
		},
		{
			name:    "secrets is not a mapping",
			content: "secrets: just-a-string\n",
			check:   errors.IsParse,
			errMsg:  "must be a mapping of group names",
		},
		{
			name:    "no groups",
			content: "secrets: {}\n",
			check:   errors.IsEmptyInput,
			errMsg:  "contains no secret groups",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := parse("secrets.yaml", []byte(tt.content))
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error type: %v", err)
			if tt.errMsg != "" {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestLoadThenValidateRoundTripsData(t *testing.T) {
	t.Parallel()

	path := writeSecretsFile(t, `
secrets:
  db:
    user: a
    pass: |-
      b
      c
  tls:
    cert: |-
      -----BEGIN CERTIFICATE-----
      MIIB
      -----END CERTIFICATE-----
`)

	doc, err := LoadFile(path)
	require.NoError(t, err)

	set, err := Validate(doc)
	require.NoError(t, err)

	require.Equal(t, []string{"db", "tls"}, set.GroupNames())
	assert.Equal(t, "a", set.Get("db").Fields["user"])
	assert.Equal(t, "b\nc", set.Get("db").Fields["pass"])
	assert.Equal(t,
		"-----BEGIN CERTIFICATE-----\nMIIB\n-----END CERTIFICATE-----",
		set.Get("tls").Fields["cert"])
}
