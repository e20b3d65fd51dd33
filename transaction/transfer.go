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

package transaction

import (
	"errors"
	"fmt"

	"github.com/meridian-ledger/go-meridian/types"
	"github.com/meridian-ledger/go-meridian/wire"
)

// TransferTransaction moves currency between accounts. The transfer list
// must balance to zero
type TransferTransaction struct {
	Transaction
	transfers []types.Transfer
}

func NewTransferTransaction() *TransferTransaction {
	t := &TransferTransaction{}
	t.Transaction = newTransaction(t)
	return t
}

// AddTransfer appends a balance adjustment for the given account. Negative
// amounts debit the account, positive amounts credit it
func (t *TransferTransaction) AddTransfer(accountID types.AccountID, amount int64) error {
	if t.frozen {
		return ErrImmutable
	}
	t.transfers = append(t.transfers, types.Transfer{
		AccountID: accountID,
		Amount:    amount,
	})
	return nil
}

// Transfers returns the transfer list
func (t *TransferTransaction) Transfers() []types.Transfer {
	transfers := make([]types.Transfer, len(t.transfers))
	copy(transfers, t.transfers)
	return transfers
}

func (t *TransferTransaction) buildBody(header wire.RequestHeader) (wire.Message, error) {
	if len(t.transfers) == 0 {
		return nil, errors.New("transfer transaction has no transfers")
	}
	var sum int64
	for _, transfer := range t.transfers {
		sum += transfer.Amount
	}
	if sum != 0 {
		return nil, fmt.Errorf("transfers do not balance: sum is %d", sum)
	}
	return wire.NewMsgTransfer(header, t.transfers), nil
}

func (t *TransferTransaction) restoreBody(msg wire.Message) (wire.RequestHeader, error) {
	m, ok := msg.(*wire.MsgTransfer)
	if !ok {
		return wire.RequestHeader{}, fmt.Errorf(
			"unexpected body message type %d",
			msg.Type(),
		)
	}
	t.transfers = m.Transfers
	return m.Header, nil
}
