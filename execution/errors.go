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

package execution

import (
	"fmt"

	"github.com/meridian-ledger/go-meridian/types"
)

// PrecheckError is returned when a node rejects a request synchronously,
// before it can affect ledger state. It is never retried
type PrecheckError struct {
	Status        types.Status
	TransactionID types.TransactionID
	NodeAccountID types.AccountID
}

func (e *PrecheckError) Error() string {
	return fmt.Sprintf(
		"precheck failed with status %s (transaction %s, node %s)",
		e.Status,
		e.TransactionID,
		e.NodeAccountID,
	)
}

// ReceiptError is returned when a request was processed but the
// post-consensus outcome recorded in the receipt was unsuccessful. The
// receipt is carried so that callers can still inspect created-entity
// fields on partial failure
type ReceiptError struct {
	Status        types.Status
	TransactionID types.TransactionID
	Receipt       *types.Receipt
}

func (e *ReceiptError) Error() string {
	return fmt.Sprintf(
		"receipt status %s (transaction %s)",
		e.Status,
		e.TransactionID,
	)
}

// ExpiredError is returned when a request's validity window elapsed before
// a definitive outcome was obtained. It indicates a timing problem rather
// than node unavailability
type ExpiredError struct {
	TransactionID types.TransactionID
	NodeAccountID types.AccountID
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf(
		"transaction %s expired before a definitive outcome (node %s)",
		e.TransactionID,
		e.NodeAccountID,
	)
}

// MaxAttemptsError is returned when the attempt budget was exhausted
// without a definitive outcome. It carries the last node contacted and the
// last underlying error for diagnosis
type MaxAttemptsError struct {
	Attempts      int
	LastNode      types.AccountID
	LastErr       error
	TransactionID types.TransactionID
}

func (e *MaxAttemptsError) Error() string {
	return fmt.Sprintf(
		"exceeded %d attempts (transaction %s, last node %s): %s",
		e.Attempts,
		e.TransactionID,
		e.LastNode,
		e.LastErr,
	)
}

func (e *MaxAttemptsError) Unwrap() error {
	return e.LastErr
}
