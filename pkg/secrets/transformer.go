// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package secrets

import (
	"encoding/base64"
)

// Field names recognized by the transformer.
const (
	// AccessKeyField is the field holding an access key identifier.
	AccessKeyField = "access_key"

	// SecretKeyField is the field holding the matching secret key.
	SecretKeyField = "secret_key"

	// CredentialsField is the derived field synthesized from the access
	// and secret key pair.
	CredentialsField = "credentials"
)

// SynthesizeDerivedFields walks every group in the set and, where both
// access_key and secret_key are present and credentials is absent, adds a
// credentials field: the base64 encoding of the canonical two-line form
// `<access_key>\n<secret_key>`.
//
// The transform is idempotent: groups that already carry a credentials
// field are left untouched, so running it twice yields the same set.
func SynthesizeDerivedFields(set *SecretSet) {
	for _, group := range set.Groups() {
		access, hasAccess := group.Fields[AccessKeyField]
		secret, hasSecret := group.Fields[SecretKeyField]
		_, hasDerived := group.Fields[CredentialsField]

		if !hasAccess || !hasSecret || hasDerived {
			continue
		}

		group.Fields[CredentialsField] = EncodeCredentials(access, secret)
	}
}

// EncodeCredentials builds the derived credentials value for an
// access/secret key pair.
func EncodeCredentials(accessKey, secretKey string) string {
	return base64.StdEncoding.EncodeToString([]byte(accessKey + "\n" + secretKey))
}
