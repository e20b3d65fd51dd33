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

package query

import (
	"context"
	"errors"
	"fmt"

	meridian "github.com/meridian-ledger/go-meridian"
	"github.com/meridian-ledger/go-meridian/types"
	"github.com/meridian-ledger/go-meridian/wire"
)

// AccountBalanceQuery fetches an account's current balance. Balance
// queries are answered free of charge
type AccountBalanceQuery struct {
	Query
	accountID types.AccountID
}

func NewAccountBalanceQuery() *AccountBalanceQuery {
	q := &AccountBalanceQuery{}
	q.Query = newQuery(q)
	return q
}

// SetAccountID sets the account whose balance is fetched
func (q *AccountBalanceQuery) SetAccountID(accountID types.AccountID) {
	q.accountID = accountID
}

// AccountID returns the account whose balance is fetched
func (q *AccountBalanceQuery) AccountID() types.AccountID {
	return q.accountID
}

// Execute runs the query against the client's network and returns the
// account balance
func (q *AccountBalanceQuery) Execute(
	ctx context.Context,
	client *meridian.Client,
) (uint64, error) {
	result, err := q.execute(ctx, client)
	if err != nil {
		return 0, err
	}
	balance, ok := result.(uint64)
	if !ok {
		return 0, fmt.Errorf("unexpected execution result type %T", result)
	}
	return balance, nil
}

func (q *AccountBalanceQuery) buildQuery(header wire.QueryHeader) (wire.Message, error) {
	if q.accountID.IsZero() {
		return nil, errors.New("balance query has no account ID")
	}
	return wire.NewMsgBalanceQuery(header, q.accountID), nil
}

func (q *AccountBalanceQuery) isPaymentRequired() bool {
	return false
}

func (q *AccountBalanceQuery) mapAnswer(resp wire.Message) (any, error) {
	m, ok := resp.(*wire.MsgBalanceAnswer)
	if !ok {
		return nil, fmt.Errorf("unexpected answer message type %d", resp.Type())
	}
	return m.Balance, nil
}
