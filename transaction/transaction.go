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

// Package transaction implements the transaction request lifecycle: a
// mutable builder that is frozen into per-node signable bodies, signed any
// number of times, serialized, and executed through the execution engine.
package transaction

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"

	meridian "github.com/meridian-ledger/go-meridian"
	"github.com/meridian-ledger/go-meridian/cbor"
	"github.com/meridian-ledger/go-meridian/execution"
	"github.com/meridian-ledger/go-meridian/keys"
	"github.com/meridian-ledger/go-meridian/types"
	"github.com/meridian-ledger/go-meridian/wire"
)

var (
	// ErrImmutable is returned when mutating or re-freezing a frozen
	// transaction
	ErrImmutable = errors.New("transaction is immutable once frozen")
	// ErrNotFrozen is returned when signing or serializing a transaction
	// that hasn't been frozen
	ErrNotFrozen = errors.New("transaction is not frozen")
	// ErrNoTransactionID is returned when freezing without a transaction ID
	// and without a client operator to derive one from
	ErrNoTransactionID = errors.New("transaction has no transaction ID")
	// ErrNoNodeAccountIDs is returned when freezing without any target node
	ErrNoNodeAccountIDs = errors.New("transaction has no node account IDs")
)

const (
	defaultMaxFee        = 100_000_000
	defaultValidDuration = 120 * time.Second
)

// bodyBuilder is implemented by each concrete transaction type to produce
// its node-bound wire body
type bodyBuilder interface {
	buildBody(header wire.RequestHeader) (wire.Message, error)
	restoreBody(msg wire.Message) (wire.RequestHeader, error)
}

// Transaction is the shared transaction lifecycle. It is embedded by the
// concrete transaction types and implements the Executable contract. A
// transaction is owned by a single caller and is not safe for concurrent
// mutation
type Transaction struct {
	builder bodyBuilder

	transactionID  types.TransactionID
	nodeAccountIDs []types.AccountID
	maxFee         uint64
	validDuration  time.Duration

	frozen     bool
	bodies     map[types.AccountID][]byte
	signatures map[types.AccountID][]wire.SignaturePair
}

func newTransaction(builder bodyBuilder) Transaction {
	return Transaction{
		builder:       builder,
		maxFee:        defaultMaxFee,
		validDuration: defaultValidDuration,
	}
}

// TransactionID returns the transaction's request identifier
func (t *Transaction) TransactionID() types.TransactionID {
	return t.transactionID
}

// SetTransactionID sets the transaction's request identifier explicitly
func (t *Transaction) SetTransactionID(id types.TransactionID) error {
	if t.frozen {
		return ErrImmutable
	}
	t.transactionID = id
	return nil
}

// NodeAccountIDs returns the transaction's target node bindings
func (t *Transaction) NodeAccountIDs() []types.AccountID {
	ids := make([]types.AccountID, len(t.nodeAccountIDs))
	copy(ids, t.nodeAccountIDs)
	return ids
}

// SetNodeAccountIDs sets the target nodes explicitly. A single node allows
// execution without failover; multiple nodes enable the engine to switch
// bodies transparently on retry
func (t *Transaction) SetNodeAccountIDs(ids []types.AccountID) error {
	if t.frozen {
		return ErrImmutable
	}
	t.nodeAccountIDs = make([]types.AccountID, len(ids))
	copy(t.nodeAccountIDs, ids)
	return nil
}

// MaxFee returns the maximum fee the payer is willing to pay
func (t *Transaction) MaxFee() uint64 {
	return t.maxFee
}

// SetMaxFee sets the maximum fee the payer is willing to pay
func (t *Transaction) SetMaxFee(maxFee uint64) error {
	if t.frozen {
		return ErrImmutable
	}
	t.maxFee = maxFee
	return nil
}

// ValidDuration returns the transaction's validity window
func (t *Transaction) ValidDuration() time.Duration {
	return t.validDuration
}

// SetValidDuration sets the transaction's validity window
func (t *Transaction) SetValidDuration(d time.Duration) error {
	if t.frozen {
		return ErrImmutable
	}
	t.validDuration = d
	return nil
}

// IsFrozen returns whether the transaction has been frozen
func (t *Transaction) IsFrozen() bool {
	return t.frozen
}

// Freeze fixes the transaction's bodies using the explicitly provided
// transaction ID and node account IDs. After freezing, any mutation fails
// with ErrImmutable
func (t *Transaction) Freeze() error {
	if t.frozen {
		return ErrImmutable
	}
	if t.transactionID.IsZero() {
		return ErrNoTransactionID
	}
	if len(t.nodeAccountIDs) == 0 {
		return ErrNoNodeAccountIDs
	}
	return t.freeze()
}

// FreezeWith fixes the transaction's bodies against the given client,
// deriving the transaction ID from the client operator and the node
// bindings from the client's topology when they weren't set explicitly.
// Freezing against the full topology enables failover across nodes
func (t *Transaction) FreezeWith(client *meridian.Client) error {
	if t.frozen {
		return ErrImmutable
	}
	if t.transactionID.IsZero() {
		operator := client.OperatorAccountID()
		if operator.IsZero() {
			return ErrNoTransactionID
		}
		t.transactionID = types.NewTransactionID(operator)
	}
	if len(t.nodeAccountIDs) == 0 {
		t.nodeAccountIDs = client.Network().NodeAccountIDs()
		if len(t.nodeAccountIDs) == 0 {
			return ErrNoNodeAccountIDs
		}
	}
	return t.freeze()
}

// freeze encodes one node-bound body per target node. Body bytes are fixed
// here and never re-encoded afterward
func (t *Transaction) freeze() error {
	bodies := make(map[types.AccountID][]byte, len(t.nodeAccountIDs))
	for _, nodeAccountID := range t.nodeAccountIDs {
		header := wire.RequestHeader{
			TransactionID:        t.transactionID,
			NodeAccountID:        nodeAccountID,
			MaxFee:               t.maxFee,
			ValidDurationSeconds: uint64(t.validDuration.Seconds()), // #nosec G115
		}
		msg, err := t.builder.buildBody(header)
		if err != nil {
			return err
		}
		body, err := cbor.Encode(msg)
		if err != nil {
			return err
		}
		bodies[nodeAccountID] = body
	}
	t.bodies = bodies
	t.signatures = make(map[types.AccountID][]wire.SignaturePair)
	t.frozen = true
	return nil
}

// Sign appends a signature entry for the given key over each frozen body.
// Signing is additive and idempotent: signing again with the same key does
// not produce a second entry
func (t *Transaction) Sign(key keys.PrivateKey) error {
	if !t.frozen {
		return ErrNotFrozen
	}
	if key.IsZero() {
		return errors.New("cannot sign with an empty key")
	}
	pubKey := key.PublicKey().Bytes()
	for _, nodeAccountID := range t.nodeAccountIDs {
		if hasSignatureFor(t.signatures[nodeAccountID], pubKey) {
			continue
		}
		t.signatures[nodeAccountID] = append(
			t.signatures[nodeAccountID],
			wire.SignaturePair{
				PubKeyPrefix: pubKey,
				Signature:    key.Sign(t.bodies[nodeAccountID]),
			},
		)
	}
	return nil
}

// SignWithOperator signs the transaction with the client's operator key
func (t *Transaction) SignWithOperator(client *meridian.Client) error {
	key := client.OperatorKey()
	if key.IsZero() {
		return errors.New("client has no operator key")
	}
	return t.Sign(key)
}

func hasSignatureFor(pairs []wire.SignaturePair, pubKeyPrefix []byte) bool {
	for _, pair := range pairs {
		if bytes.Equal(pair.PubKeyPrefix, pubKeyPrefix) {
			return true
		}
	}
	return false
}

// SignaturesFor returns the ordered signature entries for the given node
func (t *Transaction) SignaturesFor(nodeAccountID types.AccountID) []wire.SignaturePair {
	pairs := make([]wire.SignaturePair, len(t.signatures[nodeAccountID]))
	copy(pairs, t.signatures[nodeAccountID])
	return pairs
}

// ToBytes serializes the frozen transaction: one signed payload per node
// binding, each carrying the exact frozen body bytes and the ordered
// signature list. Valid for both signed and unsigned transactions
func (t *Transaction) ToBytes() ([]byte, error) {
	if !t.frozen {
		return nil, ErrNotFrozen
	}
	payloads := make([]wire.SignedPayload, 0, len(t.nodeAccountIDs))
	for _, nodeAccountID := range t.nodeAccountIDs {
		payloads = append(payloads, wire.SignedPayload{
			Body:       t.bodies[nodeAccountID],
			Signatures: t.signatures[nodeAccountID],
		})
	}
	return wire.SignedPayloadsToBytes(payloads)
}

// Hash returns the BLAKE2b-256 hash of the serialized transaction
func (t *Transaction) Hash() ([]byte, error) {
	data, err := t.ToBytes()
	if err != nil {
		return nil, err
	}
	hash := blake2b.Sum256(data)
	return hash[:], nil
}

// Method returns the submit transport method
func (t *Transaction) Method() uint16 {
	return wire.MethodSubmit
}

// RequestFor returns the submission envelope bound to the given node
func (t *Transaction) RequestFor(nodeAccountID types.AccountID) (wire.Message, error) {
	if !t.frozen {
		return nil, ErrNotFrozen
	}
	body, ok := t.bodies[nodeAccountID]
	if !ok {
		return nil, fmt.Errorf("no frozen body for node %s", nodeAccountID)
	}
	return wire.NewMsgSubmit(wire.SignedPayload{
		Body:       body,
		Signatures: t.signatures[nodeAccountID],
	}), nil
}

// StateFor classifies a submission acknowledgment into an execution state
func (t *Transaction) StateFor(resp wire.Message) execution.State {
	ack, ok := resp.(*wire.MsgAck)
	if !ok {
		return execution.StateError
	}
	switch ack.Header.Status {
	case types.StatusBusy, types.StatusPlatformNotActive:
		return execution.StateRetry
	case types.StatusTransactionExpired:
		return execution.StateExpired
	case types.StatusOk:
		if ack.Receipt != nil && ack.Receipt.Status != types.StatusOk {
			return execution.StateError
		}
		return execution.StateFinished
	}
	return execution.StateError
}

// ErrorFor maps a failed submission acknowledgment into a typed error
func (t *Transaction) ErrorFor(resp wire.Message, nodeAccountID types.AccountID) error {
	ack, ok := resp.(*wire.MsgAck)
	if !ok {
		return fmt.Errorf("received unexpected response message type %d", resp.Type())
	}
	if ack.Header.Status != types.StatusOk {
		return &execution.PrecheckError{
			Status:        ack.Header.Status,
			TransactionID: t.transactionID,
			NodeAccountID: nodeAccountID,
		}
	}
	return &execution.ReceiptError{
		Status:        ack.Receipt.Status,
		TransactionID: t.transactionID,
		Receipt:       ack.Receipt,
	}
}

// ResultFor maps a successful submission acknowledgment into its receipt
func (t *Transaction) ResultFor(resp wire.Message, nodeAccountID types.AccountID) (any, error) {
	ack, ok := resp.(*wire.MsgAck)
	if !ok {
		return nil, fmt.Errorf("received unexpected response message type %d", resp.Type())
	}
	if ack.Receipt == nil {
		return &types.Receipt{Status: ack.Header.Status}, nil
	}
	return ack.Receipt, nil
}

// Execute runs the transaction through the execution engine, freezing it
// against the client topology and signing it with the operator key first if
// the caller hasn't already done so. It returns the receipt on a definitive
// successful outcome
func (t *Transaction) Execute(ctx context.Context, client *meridian.Client) (*types.Receipt, error) {
	if !t.frozen {
		if err := t.FreezeWith(client); err != nil {
			return nil, err
		}
	}
	if key := client.OperatorKey(); !key.IsZero() {
		if err := t.Sign(key); err != nil {
			return nil, err
		}
	}
	result, err := execution.Execute(ctx, client.ExecutionOptions(), t)
	if err != nil {
		return nil, err
	}
	receipt, ok := result.(*types.Receipt)
	if !ok {
		return nil, fmt.Errorf("unexpected execution result type %T", result)
	}
	return receipt, nil
}

// base is used by FromBytes to reach the embedded lifecycle state. It also
// seals the Interface type to the transaction types defined here
func (t *Transaction) base() *Transaction {
	return t
}
