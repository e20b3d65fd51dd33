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

package query_test

import (
	"context"
	"errors"
	"testing"
	"time"

	meridian "github.com/meridian-ledger/go-meridian"
	"github.com/meridian-ledger/go-meridian/execution"
	"github.com/meridian-ledger/go-meridian/internal/mocknode"
	"github.com/meridian-ledger/go-meridian/keys"
	"github.com/meridian-ledger/go-meridian/network"
	"github.com/meridian-ledger/go-meridian/query"
	"github.com/meridian-ledger/go-meridian/transaction"
	"github.com/meridian-ledger/go-meridian/types"
	"github.com/meridian-ledger/go-meridian/wire"

	"go.uber.org/goleak"
)

const testQueryCost = 25

var (
	testNodeID    = types.NewAccountID(0, 0, 3)
	testAccountID = types.NewAccountID(0, 0, 2002)
)

// queryHandler answers balance queries for free and info queries for a
// fee. Paid answer requests must carry a payment transfer that pays the
// serving node
func queryHandler(t *testing.T) mocknode.Handler {
	t.Helper()
	return func(method uint16, msg wire.Message) (wire.Message, error) {
		if method != wire.MethodQuery {
			return nil, errors.New("unexpected method")
		}
		switch m := msg.(type) {
		case *wire.MsgBalanceQuery:
			return wire.NewMsgBalanceAnswer(
				wire.ResponseHeader{Status: types.StatusOk},
				12345,
			), nil
		case *wire.MsgInfoQuery:
			if m.Header.ResponseType == wire.ResponseTypeCost {
				return wire.NewMsgInfoAnswer(
					wire.ResponseHeader{
						Status: types.StatusOk,
						Cost:   testQueryCost,
					},
					nil,
				), nil
			}
			if status := verifyPayment(m.Header.Payment); status != types.StatusOk {
				return wire.NewMsgInfoAnswer(
					wire.ResponseHeader{Status: status},
					nil,
				), nil
			}
			return wire.NewMsgInfoAnswer(
				wire.ResponseHeader{Status: types.StatusOk},
				&types.AccountInfo{
					AccountID: m.AccountID,
					Balance:   12345,
				},
			), nil
		}
		return nil, errors.New("unexpected message type")
	}
}

// verifyPayment checks that the payment is a signed transfer crediting the
// serving node
func verifyPayment(payment []byte) types.Status {
	if len(payment) == 0 {
		return types.StatusInsufficientQueryFee
	}
	tx, err := transaction.FromBytes(payment)
	if err != nil {
		return types.StatusInvalidQueryHeader
	}
	transfer, ok := tx.(*transaction.TransferTransaction)
	if !ok {
		return types.StatusInvalidQueryHeader
	}
	var credit int64
	for _, entry := range transfer.Transfers() {
		if entry.AccountID == testNodeID {
			credit += entry.Amount
		}
	}
	if credit <= 0 {
		return types.StatusInsufficientQueryFee
	}
	if len(transfer.SignaturesFor(testNodeID)) == 0 {
		return types.StatusInvalidSignature
	}
	return types.StatusOk
}

func testClient(t *testing.T, handler mocknode.Handler) (*meridian.Client, *mocknode.MockNode) {
	t.Helper()
	mock, err := mocknode.Start(handler)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	net, err := network.NewNetwork(
		[]*network.Node{network.NewNode(testNodeID, mock.Addr())},
		"",
		"test",
	)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	priv, err := keys.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	client, err := meridian.NewClient(
		net,
		meridian.WithOperator(types.NewAccountID(0, 0, 1001), priv),
		meridian.WithMinBackoff(time.Millisecond),
		meridian.WithMaxBackoff(2*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	return client, mock
}

func TestBalanceQueryFree(t *testing.T) {
	defer goleak.VerifyNone(t)
	client, mock := testClient(t, queryHandler(t))
	defer mock.Close()
	defer client.Close()
	q := query.NewAccountBalanceQuery()
	q.SetAccountID(testAccountID)
	balance, err := q.Execute(context.Background(), client)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if balance != 12345 {
		t.Fatalf("unexpected balance: %d", balance)
	}
	// Free queries skip cost negotiation entirely
	if count := mock.RequestCount(); count != 1 {
		t.Fatalf("unexpected request count: %d", count)
	}
}

func TestInfoQueryNegotiatesCost(t *testing.T) {
	defer goleak.VerifyNone(t)
	client, mock := testClient(t, queryHandler(t))
	defer mock.Close()
	defer client.Close()
	q := query.NewAccountInfoQuery()
	q.SetAccountID(testAccountID)
	info, err := q.Execute(context.Background(), client)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if info.AccountID != testAccountID {
		t.Fatalf("unexpected account ID: %s", info.AccountID)
	}
	// Exactly one cost round trip precedes the real request
	if count := mock.RequestCount(); count != 2 {
		t.Fatalf("unexpected request count: %d", count)
	}
}

func TestInfoQueryExplicitPayment(t *testing.T) {
	defer goleak.VerifyNone(t)
	client, mock := testClient(t, queryHandler(t))
	defer mock.Close()
	defer client.Close()
	q := query.NewAccountInfoQuery()
	q.SetAccountID(testAccountID)
	q.SetQueryPayment(30)
	if _, err := q.Execute(context.Background(), client); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	// An explicit payment skips the cost round trip
	if count := mock.RequestCount(); count != 1 {
		t.Fatalf("unexpected request count: %d", count)
	}
}

func TestInfoQueryCost(t *testing.T) {
	defer goleak.VerifyNone(t)
	client, mock := testClient(t, queryHandler(t))
	defer mock.Close()
	defer client.Close()
	q := query.NewAccountInfoQuery()
	q.SetAccountID(testAccountID)
	cost, err := q.Cost(context.Background(), client)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if cost != testQueryCost {
		t.Fatalf("unexpected cost: %d", cost)
	}
}

func TestInfoQueryMaxPaymentExceeded(t *testing.T) {
	defer goleak.VerifyNone(t)
	client, mock := testClient(t, queryHandler(t))
	defer mock.Close()
	defer client.Close()
	q := query.NewAccountInfoQuery()
	q.SetAccountID(testAccountID)
	q.SetMaxQueryPayment(testQueryCost - 1)
	_, err := q.Execute(context.Background(), client)
	var maxErr *query.MaxPaymentExceededError
	if !errors.As(err, &maxErr) {
		t.Fatalf("unexpected error type: %T", err)
	}
	if maxErr.Cost != testQueryCost {
		t.Fatalf("unexpected cost: %d", maxErr.Cost)
	}
	// The cost round trip happened, the paid request did not
	if count := mock.RequestCount(); count != 1 {
		t.Fatalf("unexpected request count: %d", count)
	}
}

func TestInfoQueryNoOperator(t *testing.T) {
	defer goleak.VerifyNone(t)
	client, mock := testClient(t, queryHandler(t))
	defer mock.Close()
	defer client.Close()
	client.SetOperator(types.AccountID{}, keys.PrivateKey{})
	q := query.NewAccountInfoQuery()
	q.SetAccountID(testAccountID)
	if _, err := q.Execute(context.Background(), client); err == nil {
		t.Fatalf("expected error, got none")
	}
}

func TestQueryRetryStatusWidened(t *testing.T) {
	defer goleak.VerifyNone(t)
	var served int
	client, mock := testClient(
		t,
		func(method uint16, msg wire.Message) (wire.Message, error) {
			served++
			if served < 3 {
				// UNKNOWN is terminal by default but retryable here
				return wire.NewMsgBalanceAnswer(
					wire.ResponseHeader{Status: types.StatusUnknown},
					0,
				), nil
			}
			return wire.NewMsgBalanceAnswer(
				wire.ResponseHeader{Status: types.StatusOk},
				777,
			), nil
		},
	)
	defer mock.Close()
	defer client.Close()
	q := query.NewAccountBalanceQuery()
	q.SetAccountID(testAccountID)
	q.SetRetryStatuses([]types.Status{
		types.StatusBusy,
		types.StatusPlatformNotActive,
		types.StatusUnknown,
	})
	balance, err := q.Execute(context.Background(), client)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if balance != 777 {
		t.Fatalf("unexpected balance: %d", balance)
	}
	if count := mock.RequestCount(); count != 3 {
		t.Fatalf("unexpected request count: %d", count)
	}
}

func TestQueryRetryStatusNarrowed(t *testing.T) {
	defer goleak.VerifyNone(t)
	client, mock := testClient(
		t,
		func(method uint16, msg wire.Message) (wire.Message, error) {
			return wire.NewMsgBalanceAnswer(
				wire.ResponseHeader{Status: types.StatusBusy},
				0,
			), nil
		},
	)
	defer mock.Close()
	defer client.Close()
	q := query.NewAccountBalanceQuery()
	q.SetAccountID(testAccountID)
	// With BUSY removed from the retry set, the first response is terminal
	q.SetRetryStatuses(nil)
	_, err := q.Execute(context.Background(), client)
	var precheckErr *execution.PrecheckError
	if !errors.As(err, &precheckErr) {
		t.Fatalf("unexpected error type: %T", err)
	}
	if precheckErr.Status != types.StatusBusy {
		t.Fatalf("unexpected status: %s", precheckErr.Status)
	}
	if count := mock.RequestCount(); count != 1 {
		t.Fatalf("unexpected request count: %d", count)
	}
}
