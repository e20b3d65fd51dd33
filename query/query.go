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

// Package query implements the query request lifecycle. Paid queries
// negotiate their cost with the network first: a cost-only round trip
// obtains the required fee, then a signed transfer to the target node is
// embedded in the real request's header as payment.
package query

import (
	"context"
	"errors"
	"fmt"

	meridian "github.com/meridian-ledger/go-meridian"
	"github.com/meridian-ledger/go-meridian/execution"
	"github.com/meridian-ledger/go-meridian/transaction"
	"github.com/meridian-ledger/go-meridian/types"
	"github.com/meridian-ledger/go-meridian/wire"
)

// MaxPaymentExceededError is returned when the negotiated query cost
// exceeds the caller's configured maximum payment
type MaxPaymentExceededError struct {
	Cost       uint64
	MaxPayment uint64
}

func (e *MaxPaymentExceededError) Error() string {
	return fmt.Sprintf(
		"query cost %d exceeds max payment %d",
		e.Cost,
		e.MaxPayment,
	)
}

// opBuilder is implemented by each concrete query type
type opBuilder interface {
	buildQuery(header wire.QueryHeader) (wire.Message, error)
	isPaymentRequired() bool
	mapAnswer(resp wire.Message) (any, error)
}

// Query is the shared query lifecycle. It is embedded by the concrete
// query types and implements the Executable contract
type Query struct {
	op opBuilder

	nodeAccountIDs []types.AccountID
	payments       map[types.AccountID][]byte
	paymentAmount  *uint64
	maxPayment     uint64
	retryStatuses  []types.Status

	paymentTransactionID types.TransactionID
}

func newQuery(op opBuilder) Query {
	return Query{
		op: op,
		retryStatuses: []types.Status{
			types.StatusBusy,
			types.StatusPlatformNotActive,
		},
	}
}

// SetNodeAccountIDs restricts the query to the given target nodes. By
// default the full client topology is used
func (q *Query) SetNodeAccountIDs(ids []types.AccountID) {
	q.nodeAccountIDs = make([]types.AccountID, len(ids))
	copy(q.nodeAccountIDs, ids)
}

// SetQueryPayment sets an explicit payment amount, skipping cost
// negotiation entirely
func (q *Query) SetQueryPayment(amount uint64) {
	q.paymentAmount = &amount
}

// SetMaxQueryPayment caps the payment the query is allowed to make when
// the cost is negotiated. Zero means no cap
func (q *Query) SetMaxQueryPayment(maxPayment uint64) {
	q.maxPayment = maxPayment
}

// SetRetryStatuses replaces the set of response statuses classified as
// retryable. The replacement may narrow or widen the default set
func (q *Query) SetRetryStatuses(statuses []types.Status) {
	q.retryStatuses = make([]types.Status, len(statuses))
	copy(q.retryStatuses, statuses)
}

// TransactionID returns the payment transaction identifier, or the zero
// value for free queries
func (q *Query) TransactionID() types.TransactionID {
	return q.paymentTransactionID
}

// NodeAccountIDs returns the query's target node bindings
func (q *Query) NodeAccountIDs() []types.AccountID {
	ids := make([]types.AccountID, len(q.nodeAccountIDs))
	copy(ids, q.nodeAccountIDs)
	return ids
}

// Method returns the query transport method
func (q *Query) Method() uint16 {
	return wire.MethodQuery
}

// RequestFor returns the query message bound to the given node, carrying
// that node's payment when one was generated
func (q *Query) RequestFor(nodeAccountID types.AccountID) (wire.Message, error) {
	return q.op.buildQuery(wire.QueryHeader{
		Payment:      q.payments[nodeAccountID],
		ResponseType: wire.ResponseTypeAnswer,
	})
}

// StateFor classifies a query response into an execution state
func (q *Query) StateFor(resp wire.Message) execution.State {
	header, ok := responseHeader(resp)
	if !ok {
		return execution.StateError
	}
	for _, status := range q.retryStatuses {
		if header.Status == status {
			return execution.StateRetry
		}
	}
	switch header.Status {
	case types.StatusOk:
		return execution.StateFinished
	case types.StatusTransactionExpired:
		return execution.StateExpired
	}
	return execution.StateError
}

// ErrorFor maps a failed query response into a typed error
func (q *Query) ErrorFor(resp wire.Message, nodeAccountID types.AccountID) error {
	header, ok := responseHeader(resp)
	if !ok {
		return fmt.Errorf("received unexpected response message type %d", resp.Type())
	}
	return &execution.PrecheckError{
		Status:        header.Status,
		TransactionID: q.paymentTransactionID,
		NodeAccountID: nodeAccountID,
	}
}

// ResultFor maps a successful query response into its answer value
func (q *Query) ResultFor(resp wire.Message, nodeAccountID types.AccountID) (any, error) {
	return q.op.mapAnswer(resp)
}

// Cost asks the network what the query will cost, using a cost-only
// variant of the same request through the execution engine
func (q *Query) Cost(ctx context.Context, client *meridian.Client) (uint64, error) {
	if err := q.bindNodes(client); err != nil {
		return 0, err
	}
	result, err := execution.Execute(ctx, client.ExecutionOptions(), &costQuery{q})
	if err != nil {
		return 0, err
	}
	cost, ok := result.(uint64)
	if !ok {
		return 0, fmt.Errorf("unexpected execution result type %T", result)
	}
	return cost, nil
}

// execute runs the query through the execution engine, negotiating the
// cost and generating per-node payments first when required
func (q *Query) execute(ctx context.Context, client *meridian.Client) (any, error) {
	if err := q.bindNodes(client); err != nil {
		return nil, err
	}
	if q.op.isPaymentRequired() && q.payments == nil {
		amount := q.paymentAmount
		if amount == nil {
			cost, err := q.Cost(ctx, client)
			if err != nil {
				return nil, err
			}
			if q.maxPayment > 0 && cost > q.maxPayment {
				return nil, &MaxPaymentExceededError{
					Cost:       cost,
					MaxPayment: q.maxPayment,
				}
			}
			amount = &cost
		}
		if err := q.generatePayments(client, *amount); err != nil {
			return nil, err
		}
	}
	return execution.Execute(ctx, client.ExecutionOptions(), q)
}

func (q *Query) bindNodes(client *meridian.Client) error {
	if len(q.nodeAccountIDs) > 0 {
		return nil
	}
	q.nodeAccountIDs = client.Network().NodeAccountIDs()
	if len(q.nodeAccountIDs) == 0 {
		return errors.New("client network has no nodes")
	}
	return nil
}

// generatePayments builds one signed payment transfer per target node:
// the operator pays the amount to the node that will answer the query
func (q *Query) generatePayments(client *meridian.Client, amount uint64) error {
	operator := client.OperatorAccountID()
	operatorKey := client.OperatorKey()
	if operator.IsZero() || operatorKey.IsZero() {
		return errors.New("client has no operator to pay for the query")
	}
	q.paymentTransactionID = types.NewTransactionID(operator)
	payments := make(map[types.AccountID][]byte, len(q.nodeAccountIDs))
	for _, nodeAccountID := range q.nodeAccountIDs {
		payment := transaction.NewTransferTransaction()
		if err := payment.SetTransactionID(q.paymentTransactionID); err != nil {
			return err
		}
		if err := payment.SetNodeAccountIDs([]types.AccountID{nodeAccountID}); err != nil {
			return err
		}
		if err := payment.AddTransfer(operator, -int64(amount)); err != nil { // #nosec G115
			return err
		}
		if err := payment.AddTransfer(nodeAccountID, int64(amount)); err != nil { // #nosec G115
			return err
		}
		if err := payment.Freeze(); err != nil {
			return err
		}
		if err := payment.Sign(operatorKey); err != nil {
			return err
		}
		paymentBytes, err := payment.ToBytes()
		if err != nil {
			return err
		}
		payments[nodeAccountID] = paymentBytes
	}
	q.payments = payments
	return nil
}

// costQuery is the cost-only variant of a query: same operation, cost
// response type, no payment attached
type costQuery struct {
	*Query
}

func (c *costQuery) RequestFor(nodeAccountID types.AccountID) (wire.Message, error) {
	return c.op.buildQuery(wire.QueryHeader{
		ResponseType: wire.ResponseTypeCost,
	})
}

func (c *costQuery) ResultFor(resp wire.Message, nodeAccountID types.AccountID) (any, error) {
	header, ok := responseHeader(resp)
	if !ok {
		return nil, fmt.Errorf("received unexpected response message type %d", resp.Type())
	}
	return header.Cost, nil
}

// responseHeader extracts the common response header from any response
// message
func responseHeader(msg wire.Message) (wire.ResponseHeader, bool) {
	switch m := msg.(type) {
	case *wire.MsgAck:
		return m.Header, true
	case *wire.MsgBalanceAnswer:
		return m.Header, true
	case *wire.MsgInfoAnswer:
		return m.Header, true
	}
	return wire.ResponseHeader{}, false
}
