// Copyright 2025 Meridian Ledger Foundation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package wire

import (
	"bytes"

	"github.com/meridian-ledger/go-meridian/cbor"
)

// SignaturePair is a single signature entry: the public key prefix
// identifying the signing key and the signature over the body bytes
type SignaturePair struct {
	cbor.StructAsArray
	PubKeyPrefix []byte
	Signature    []byte
}

// SignedPayload is the protocol-level signed request structure: the exact
// frozen body bytes plus the ordered signature list. The body is carried as
// opaque bytes so that it round-trips byte-for-byte regardless of how the
// decoder would re-encode it
type SignedPayload struct {
	cbor.StructAsArray
	Body       []byte
	Signatures []SignaturePair
}

// HasSignatureFor reports whether the payload already carries a signature
// entry for the given public key prefix
func (p *SignedPayload) HasSignatureFor(pubKeyPrefix []byte) bool {
	for _, pair := range p.Signatures {
		if bytes.Equal(pair.PubKeyPrefix, pubKeyPrefix) {
			return true
		}
	}
	return false
}

// SignedPayloadsToBytes serializes a list of node-bound signed payloads,
// which is the external serialized form of a frozen transaction
func SignedPayloadsToBytes(payloads []SignedPayload) ([]byte, error) {
	return cbor.Encode(payloads)
}

// SignedPayloadsFromBytes deserializes a list of node-bound signed payloads
func SignedPayloadsFromBytes(data []byte) ([]SignedPayload, error) {
	var payloads []SignedPayload
	if _, err := cbor.Decode(data, &payloads); err != nil {
		return nil, err
	}
	return payloads, nil
}
