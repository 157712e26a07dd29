// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package secrets

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stacklok/vaultsync/pkg/errors"
)

// nameRegex constrains group and field names. Both end up unquoted on a
// shell command line (as the KV path segment and the key of a key='value'
// argument), so they must be plain shell words.
var nameRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// ValidName reports whether s is usable as a group or field name.
func ValidName(s string) bool {
	return nameRegex.MatchString(s)
}

// Validate checks the structural invariants of a loaded document and, when
// they all hold, converts it into a strongly typed SecretSet:
//
//   - group names must be non-empty, unique, and plain shell words
//   - every group body must be a mapping with at least one field
//   - every field value must be a YAML scalar; nested mappings and
//     sequences are rejected
//   - field names within a group must be unique and plain shell words
//
// Violations are reported as schema errors carrying the offending
// group/key label. YAML tolerates a mapping key appearing twice, so the
// duplicate checks here are what keeps a repeated group or field from
// silently shadowing an earlier one.
func Validate(doc *Document) (*SecretSet, error) {
	set := NewSecretSet()

	for _, group := range doc.groups {
		if strings.TrimSpace(group.name) == "" {
			return nil, errors.NewSchemaError("secret group with empty name", nil)
		}

		if !ValidName(group.name) {
			return nil, errors.NewSchemaError(
				fmt.Sprintf("group %q: name must contain only letters, digits, and ._-", group.name), nil)
		}

		if set.Get(group.name) != nil {
			return nil, errors.NewSchemaError(
				fmt.Sprintf("duplicate secret group %q", group.name), nil)
		}

		fields, err := validateGroup(group)
		if err != nil {
			return nil, err
		}

		set.Add(&SecretGroup{Name: group.name, Fields: fields})
	}

	return set, nil
}

// validateGroup checks one group's YAML node and extracts its fields.
func validateGroup(group rawGroup) (map[string]string, error) {
	if group.node.Kind != yaml.MappingNode {
		return nil, errors.NewSchemaError(
			fmt.Sprintf("group %q: fields must be a flat key/value mapping", group.name), nil)
	}

	fields := make(map[string]string, len(group.node.Content)/2)
	for i := 0; i+1 < len(group.node.Content); i += 2 {
		key := group.node.Content[i]
		value := group.node.Content[i+1]

		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return nil, errors.NewSchemaError(
				fmt.Sprintf("group %q: field names must be non-empty strings", group.name), nil)
		}

		if !ValidName(key.Value) {
			return nil, errors.NewSchemaError(
				fmt.Sprintf("group %q: field name %q must contain only letters, digits, and ._-",
					group.name, key.Value), nil)
		}

		if value.Kind != yaml.ScalarNode {
			return nil, errors.NewSchemaError(
				fmt.Sprintf("group %q: value for key %q is not a scalar", group.name, key.Value), nil)
		}

		if _, exists := fields[key.Value]; exists {
			return nil, errors.NewSchemaError(
				fmt.Sprintf("group %q: duplicate field %q", group.name, key.Value), nil)
		}

		fields[key.Value] = value.Value
	}

	if len(fields) == 0 {
		return nil, errors.NewSchemaError(
			fmt.Sprintf("group %q has no fields", group.name), nil)
	}

	return fields, nil
}
