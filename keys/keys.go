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

// Package keys implements the Ed25519 signing keys used to authorize
// Meridian requests.
package keys

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
)

// PrivateKey is an Ed25519 private key
type PrivateKey struct {
	key ed25519.PrivateKey
}

// PublicKey is an Ed25519 public key
type PublicKey struct {
	key ed25519.PublicKey
}

// GeneratePrivateKey generates a new random private key
func GeneratePrivateKey() (PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return PrivateKey{}, err
	}
	return PrivateKey{key: priv}, nil
}

// PrivateKeyFromBytes creates a private key from a 32-byte seed or a 64-byte
// expanded key
func PrivateKeyFromBytes(data []byte) (PrivateKey, error) {
	switch len(data) {
	case ed25519.SeedSize:
		return PrivateKey{key: ed25519.NewKeyFromSeed(data)}, nil
	case ed25519.PrivateKeySize:
		key := make(ed25519.PrivateKey, ed25519.PrivateKeySize)
		copy(key, data)
		return PrivateKey{key: key}, nil
	default:
		return PrivateKey{}, fmt.Errorf(
			"invalid private key length: %d",
			len(data),
		)
	}
}

// PrivateKeyFromHex creates a private key from the hex form of a seed or
// expanded key
func PrivateKeyFromHex(s string) (PrivateKey, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return PrivateKey{}, fmt.Errorf("invalid private key hex: %w", err)
	}
	return PrivateKeyFromBytes(data)
}

// Bytes returns the 32-byte seed for the private key
func (k PrivateKey) Bytes() []byte {
	return k.key.Seed()
}

func (k PrivateKey) String() string {
	return hex.EncodeToString(k.Bytes())
}

// IsZero returns whether the private key is unset
func (k PrivateKey) IsZero() bool {
	return len(k.key) == 0
}

// Sign signs the provided message bytes
func (k PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(k.key, message)
}

// PublicKey returns the public key corresponding to the private key
func (k PrivateKey) PublicKey() PublicKey {
	pub, _ := k.key.Public().(ed25519.PublicKey)
	return PublicKey{key: pub}
}

// PublicKeyFromBytes creates a public key from its 32-byte form. The bytes
// are checked to be the canonical encoding of a valid curve point, since a
// malformed public key would otherwise only fail much later during
// verification
func PublicKeyFromBytes(data []byte) (PublicKey, error) {
	if len(data) != ed25519.PublicKeySize {
		return PublicKey{}, fmt.Errorf(
			"invalid public key length: %d",
			len(data),
		)
	}
	point, err := new(edwards25519.Point).SetBytes(data)
	if err != nil {
		return PublicKey{}, fmt.Errorf("invalid public key: %w", err)
	}
	// SetBytes also accepts non-canonical encodings of valid points, so
	// require that the bytes round-trip to the canonical form
	if !bytes.Equal(point.Bytes(), data) {
		return PublicKey{}, errors.New(
			"invalid public key: non-canonical encoding",
		)
	}
	key := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(key, data)
	return PublicKey{key: key}, nil
}

// PublicKeyFromHex creates a public key from its hex form
func PublicKeyFromHex(s string) (PublicKey, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return PublicKey{}, fmt.Errorf("invalid public key hex: %w", err)
	}
	return PublicKeyFromBytes(data)
}

// Bytes returns the 32-byte form of the public key
func (k PublicKey) Bytes() []byte {
	return []byte(k.key)
}

func (k PublicKey) String() string {
	return hex.EncodeToString(k.Bytes())
}

// Verify reports whether the signature is valid for the message under this
// public key
func (k PublicKey) Verify(message []byte, signature []byte) bool {
	return ed25519.Verify(k.key, message, signature)
}
