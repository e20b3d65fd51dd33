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

import "fmt"

// Status is the response code returned by a node, both for synchronous
// precheck results and for the post-consensus outcome recorded in a receipt
type Status uint16

const (
	StatusOk                       Status = 0
	StatusBusy                     Status = 1
	StatusPlatformNotActive        Status = 2
	StatusInvalidTransaction       Status = 3
	StatusInvalidSignature         Status = 4
	StatusDuplicateTransaction     Status = 5
	StatusTransactionExpired       Status = 6
	StatusInsufficientPayerBalance Status = 7
	StatusInsufficientTxFee        Status = 8
	StatusInsufficientQueryFee     Status = 9
	StatusInvalidNodeAccount       Status = 10
	StatusAccountNotFound          Status = 11
	StatusInvalidQueryHeader       Status = 12
	StatusUnknown                  Status = 13
)

var statusNames = map[Status]string{
	StatusOk:                       "OK",
	StatusBusy:                     "BUSY",
	StatusPlatformNotActive:        "PLATFORM_NOT_ACTIVE",
	StatusInvalidTransaction:       "INVALID_TRANSACTION",
	StatusInvalidSignature:         "INVALID_SIGNATURE",
	StatusDuplicateTransaction:     "DUPLICATE_TRANSACTION",
	StatusTransactionExpired:       "TRANSACTION_EXPIRED",
	StatusInsufficientPayerBalance: "INSUFFICIENT_PAYER_BALANCE",
	StatusInsufficientTxFee:        "INSUFFICIENT_TX_FEE",
	StatusInsufficientQueryFee:     "INSUFFICIENT_QUERY_FEE",
	StatusInvalidNodeAccount:       "INVALID_NODE_ACCOUNT",
	StatusAccountNotFound:          "ACCOUNT_NOT_FOUND",
	StatusInvalidQueryHeader:       "INVALID_QUERY_HEADER",
	StatusUnknown:                  "UNKNOWN",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STATUS_%d", uint16(s))
}
