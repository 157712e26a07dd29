// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package secrets

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stacklok/vaultsync/pkg/errors"
)

// documentKey is the required top-level key of the secrets file.
const documentKey = "secrets"

// Document is a parsed but not yet validated secrets file. It keeps the
// raw YAML nodes so the validator can check the shape of every value
// before anything is converted to a string.
type Document struct {
	path   string
	groups []rawGroup
}

// rawGroup pairs a group name with the unvalidated YAML node holding its
// fields.
type rawGroup struct {
	name string
	node *yaml.Node
}

// Path returns the file path the document was loaded from.
func (d *Document) Path() string {
	return d.path
}

// GroupCount returns the number of groups found in the document.
func (d *Document) GroupCount() int {
	return len(d.groups)
}

// LoadFile reads and parses the secrets file at path. It returns an
// input_not_found error if the file does not exist, a parse error if the
// document is malformed or missing the top-level `secrets` mapping, and
// an empty_input error if the mapping contains no groups.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path) // #nosec G304 - the operator chooses the secrets file
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputNotFoundError(
				fmt.Sprintf("secrets file %s does not exist", path), err)
		}
		return nil, errors.NewParseError(
			fmt.Sprintf("unable to read secrets file %s", path), err)
	}

	return parse(path, data)
}

// parse decodes the raw document bytes. Split from LoadFile so the pure
// parsing logic is testable without touching the filesystem.
func parse(path string, data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.NewParseError(
			fmt.Sprintf("unable to parse secrets file %s", path), err)
	}

	secretsNode, err := findSecretsNode(&root)
	if err != nil {
		return nil, errors.NewParseError(
			fmt.Sprintf("secrets file %s: %s", path, err), nil)
	}

	doc := &Document{path: path}
	// Mapping node content alternates key, value.
	for i := 0; i+1 < len(secretsNode.Content); i += 2 {
		doc.groups = append(doc.groups, rawGroup{
			name: secretsNode.Content[i].Value,
			node: secretsNode.Content[i+1],
		})
	}

	if len(doc.groups) == 0 {
		return nil, errors.NewEmptyInputError(
			fmt.Sprintf("secrets file %s contains no secret groups", path), nil)
	}

	return doc, nil
}

// findSecretsNode locates the top-level `secrets` mapping in the document.
func findSecretsNode(root *yaml.Node) (*yaml.Node, error) {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("document is empty")
	}

	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top level must be a mapping with a %q key", documentKey)
	}

	for i := 0; i+1 < len(top.Content); i += 2 {
		if top.Content[i].Value != documentKey {
			continue
		}
		value := top.Content[i+1]
		if value.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%q must be a mapping of group names to key/value pairs", documentKey)
		}
		return value, nil
	}

	return nil, fmt.Errorf("missing top-level %q key", documentKey)
}
