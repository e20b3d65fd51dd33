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

import "github.com/meridian-ledger/go-meridian/cbor"

// Transfer is a single balance adjustment within a transfer transaction.
// Amounts are expressed in the smallest currency unit and must sum to zero
// across a transfer list
type Transfer struct {
	cbor.StructAsArray
	AccountID AccountID
	Amount    int64
}

// Receipt is the terminal post-consensus outcome of a transaction. It is
// created only once a node reports a definitive result and is immutable
// after that. AccountID is populated only for account creation operations
type Receipt struct {
	cbor.StructAsArray
	Status    Status
	AccountID *AccountID
}

// AccountInfo is the result of an account info query
type AccountInfo struct {
	cbor.StructAsArray
	AccountID AccountID
	Balance   uint64
	PublicKey []byte
	Deleted   bool
}
