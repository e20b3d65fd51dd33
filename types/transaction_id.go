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

package types

import (
	"fmt"
	"time"

	"github.com/meridian-ledger/go-meridian/cbor"
)

// TransactionID uniquely identifies a request submission. It pairs the
// paying account with the valid-start instant of the request's validity
// window. The valid-start is carried as seconds/nanos rather than a
// time.Time so that the CBOR encoding is deterministic
type TransactionID struct {
	cbor.StructAsArray
	AccountID         AccountID
	ValidStartSeconds int64
	ValidStartNanos   int32
}

// NewTransactionID generates a transaction ID for the given paying account
// using the current time as the valid-start instant
func NewTransactionID(accountID AccountID) TransactionID {
	now := time.Now()
	return TransactionID{
		AccountID:         accountID,
		ValidStartSeconds: now.Unix(),
		ValidStartNanos:   int32(now.Nanosecond()), // #nosec G115
	}
}

// ValidStart returns the valid-start instant of the transaction's validity
// window
func (t TransactionID) ValidStart() time.Time {
	return time.Unix(t.ValidStartSeconds, int64(t.ValidStartNanos))
}

// IsZero returns whether the transaction ID is unset
func (t TransactionID) IsZero() bool {
	return t.AccountID.IsZero() && t.ValidStartSeconds == 0 && t.ValidStartNanos == 0
}

func (t TransactionID) String() string {
	return fmt.Sprintf(
		"%s@%d.%09d",
		t.AccountID.String(),
		t.ValidStartSeconds,
		t.ValidStartNanos,
	)
}
