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

	"github.com/meridian-ledger/go-meridian/keys"
	"github.com/meridian-ledger/go-meridian/wire"
)

// AccountCreateTransaction creates a new account controlled by the given
// key. The receipt for a successful execution carries the newly assigned
// account identifier
type AccountCreateTransaction struct {
	Transaction
	publicKey      []byte
	initialBalance uint64
}

func NewAccountCreateTransaction() *AccountCreateTransaction {
	t := &AccountCreateTransaction{}
	t.Transaction = newTransaction(t)
	return t
}

// SetKey sets the public key that will control the new account
func (t *AccountCreateTransaction) SetKey(key keys.PublicKey) error {
	if t.frozen {
		return ErrImmutable
	}
	t.publicKey = key.Bytes()
	return nil
}

// SetInitialBalance sets the amount transferred from the payer into the new
// account
func (t *AccountCreateTransaction) SetInitialBalance(balance uint64) error {
	if t.frozen {
		return ErrImmutable
	}
	t.initialBalance = balance
	return nil
}

// InitialBalance returns the amount transferred into the new account
func (t *AccountCreateTransaction) InitialBalance() uint64 {
	return t.initialBalance
}

func (t *AccountCreateTransaction) buildBody(header wire.RequestHeader) (wire.Message, error) {
	if len(t.publicKey) == 0 {
		return nil, errors.New("account create transaction has no key")
	}
	return wire.NewMsgAccountCreate(header, t.publicKey, t.initialBalance), nil
}

func (t *AccountCreateTransaction) restoreBody(msg wire.Message) (wire.RequestHeader, error) {
	m, ok := msg.(*wire.MsgAccountCreate)
	if !ok {
		return wire.RequestHeader{}, fmt.Errorf(
			"unexpected body message type %d",
			msg.Type(),
		)
	}
	t.publicKey = m.PublicKey
	t.initialBalance = m.InitialBalance
	return m.Header, nil
}
