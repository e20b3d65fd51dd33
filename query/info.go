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

// AccountInfoQuery fetches the full record for an account. Info queries
// are paid: unless an explicit payment is set, the cost is negotiated
// with the network before the query is sent
type AccountInfoQuery struct {
	Query
	accountID types.AccountID
}

func NewAccountInfoQuery() *AccountInfoQuery {
	q := &AccountInfoQuery{}
	q.Query = newQuery(q)
	return q
}

// SetAccountID sets the account whose record is fetched
func (q *AccountInfoQuery) SetAccountID(accountID types.AccountID) {
	q.accountID = accountID
}

// AccountID returns the account whose record is fetched
func (q *AccountInfoQuery) AccountID() types.AccountID {
	return q.accountID
}

// Execute runs the query against the client's network and returns the
// account record
func (q *AccountInfoQuery) Execute(
	ctx context.Context,
	client *meridian.Client,
) (*types.AccountInfo, error) {
	result, err := q.execute(ctx, client)
	if err != nil {
		return nil, err
	}
	info, ok := result.(*types.AccountInfo)
	if !ok {
		return nil, fmt.Errorf("unexpected execution result type %T", result)
	}
	return info, nil
}

func (q *AccountInfoQuery) buildQuery(header wire.QueryHeader) (wire.Message, error) {
	if q.accountID.IsZero() {
		return nil, errors.New("info query has no account ID")
	}
	return wire.NewMsgInfoQuery(header, q.accountID), nil
}

func (q *AccountInfoQuery) isPaymentRequired() bool {
	return true
}

func (q *AccountInfoQuery) mapAnswer(resp wire.Message) (any, error) {
	m, ok := resp.(*wire.MsgInfoAnswer)
	if !ok {
		return nil, fmt.Errorf("unexpected answer message type %d", resp.Type())
	}
	if m.Info == nil {
		return nil, errors.New("answer carries no account info")
	}
	return m.Info, nil
}
