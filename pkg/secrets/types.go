// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package secrets contains the secrets file handling logic for vaultsync:
// loading the structured secrets document, validating its shape, and
// synthesizing derived fields before anything is pushed to Vault.
package secrets

import (
	"sort"
)

// SecretGroup is a named collection of flat key/value pairs destined for
// a single Vault KV path. Values may be multi-line (e.g. certificates).
type SecretGroup struct {
	// Name identifies the group; it becomes the last path segment of the
	// Vault KV path the group is written to.
	Name string

	// Fields maps field names to their string values.
	Fields map[string]string
}

// FieldNames returns the group's field names in sorted order.
// Deterministic ordering keeps emitted commands and log output stable.
func (g *SecretGroup) FieldNames() []string {
	names := make([]string, 0, len(g.Fields))
	for name := range g.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SecretSet is the collection of secret groups parsed from one secrets
// file, keyed by group name. YAML mapping keys are not guaranteed unique
// at the node level, so Validate rejects duplicates before they reach
// the set; Add itself is last-wins.
type SecretSet struct {
	groups map[string]*SecretGroup
}

// NewSecretSet creates an empty SecretSet.
func NewSecretSet() *SecretSet {
	return &SecretSet{groups: make(map[string]*SecretGroup)}
}

// Add inserts a group into the set, replacing any group of the same name.
func (s *SecretSet) Add(group *SecretGroup) {
	s.groups[group.Name] = group
}

// Get returns the group with the given name, or nil if absent.
func (s *SecretSet) Get(name string) *SecretGroup {
	return s.groups[name]
}

// Len returns the number of groups in the set.
func (s *SecretSet) Len() int {
	return len(s.groups)
}

// GroupNames returns the group names in sorted order.
func (s *SecretSet) GroupNames() []string {
	names := make([]string, 0, len(s.groups))
	for name := range s.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Groups returns the groups ordered by name.
func (s *SecretSet) Groups() []*SecretGroup {
	groups := make([]*SecretGroup, 0, len(s.groups))
	for _, name := range s.GroupNames() {
		groups = append(groups, s.groups[name])
	}
	return groups
}
