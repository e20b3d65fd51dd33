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

// Package types provides the value types shared across the Meridian client:
// account and transaction identifiers, status codes, and terminal results.
package types

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/meridian-ledger/go-meridian/cbor"
)

// Bech32Prefix is the human-readable prefix used for the bech32 text form
// of Meridian account identifiers
const Bech32Prefix = "mrd"

// AccountID is the network-level identifier for an account or node,
// expressed as a shard/realm/number triple
type AccountID struct {
	cbor.StructAsArray
	Shard uint64
	Realm uint64
	Num   uint64
}

// NewAccountID returns an AccountID with the given shard, realm, and number
func NewAccountID(shard uint64, realm uint64, num uint64) AccountID {
	return AccountID{
		Shard: shard,
		Realm: realm,
		Num:   num,
	}
}

// ParseAccountID parses an account identifier from its canonical
// "shard.realm.num" text form
func ParseAccountID(s string) (AccountID, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return AccountID{}, fmt.Errorf(
			"invalid account ID format: %q",
			s,
		)
	}
	var vals [3]uint64
	for i, part := range parts {
		val, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return AccountID{}, fmt.Errorf("invalid account ID format: %q", s)
		}
		vals[i] = val
	}
	return AccountID{Shard: vals[0], Realm: vals[1], Num: vals[2]}, nil
}

func (a AccountID) String() string {
	return fmt.Sprintf("%d.%d.%d", a.Shard, a.Realm, a.Num)
}

// IsZero returns whether the account ID is the zero value, which is never a
// valid account on any Meridian network
func (a AccountID) IsZero() bool {
	return a.Shard == 0 && a.Realm == 0 && a.Num == 0
}

// Bech32 returns the bech32 text form of the account ID, as used by mirror
// endpoints and external tooling
func (a AccountID) Bech32() (string, error) {
	data := make([]byte, 24)
	binary.BigEndian.PutUint64(data[0:8], a.Shard)
	binary.BigEndian.PutUint64(data[8:16], a.Realm)
	binary.BigEndian.PutUint64(data[16:24], a.Num)
	conv, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(Bech32Prefix, conv)
}

// AccountIDFromBech32 parses an account ID from its bech32 text form
func AccountIDFromBech32(s string) (AccountID, error) {
	hrp, conv, err := bech32.Decode(s)
	if err != nil {
		return AccountID{}, err
	}
	if hrp != Bech32Prefix {
		return AccountID{}, fmt.Errorf(
			"unexpected bech32 prefix: %q",
			hrp,
		)
	}
	data, err := bech32.ConvertBits(conv, 5, 8, false)
	if err != nil {
		return AccountID{}, err
	}
	if len(data) != 24 {
		return AccountID{}, fmt.Errorf(
			"unexpected bech32 payload length: %d",
			len(data),
		)
	}
	return AccountID{
		Shard: binary.BigEndian.Uint64(data[0:8]),
		Realm: binary.BigEndian.Uint64(data[8:16]),
		Num:   binary.BigEndian.Uint64(data[16:24]),
	}, nil
}
