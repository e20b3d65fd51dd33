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
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/meridian-ledger/go-meridian/keys"
	"github.com/meridian-ledger/go-meridian/types"
)

var (
	testPayerID = types.NewAccountID(0, 0, 1001)
	testNodeIDs = []types.AccountID{
		types.NewAccountID(0, 0, 3),
		types.NewAccountID(0, 0, 4),
		types.NewAccountID(0, 0, 5),
	}
)

func frozenTransfer(t *testing.T) *TransferTransaction {
	t.Helper()
	tx := NewTransferTransaction()
	if err := tx.SetTransactionID(types.NewTransactionID(testPayerID)); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.SetNodeAccountIDs(testNodeIDs); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.AddTransfer(testPayerID, -100); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.AddTransfer(types.NewAccountID(0, 0, 1002), 100); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.Freeze(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	return tx
}

func TestFreezeMakesImmutable(t *testing.T) {
	tx := frozenTransfer(t)
	if !tx.IsFrozen() {
		t.Fatalf("expected transaction to be frozen")
	}
	if err := tx.SetMaxFee(1); !errors.Is(err, ErrImmutable) {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.SetValidDuration(time.Minute); !errors.Is(err, ErrImmutable) {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.SetTransactionID(types.NewTransactionID(testPayerID)); !errors.Is(err, ErrImmutable) {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.SetNodeAccountIDs(testNodeIDs[:1]); !errors.Is(err, ErrImmutable) {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.AddTransfer(testPayerID, 1); !errors.Is(err, ErrImmutable) {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.Freeze(); !errors.Is(err, ErrImmutable) {
		t.Fatalf("unexpected error: %s", err)
	}
}

func TestFreezeRequiresTransactionID(t *testing.T) {
	tx := NewTransferTransaction()
	if err := tx.SetNodeAccountIDs(testNodeIDs); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.AddTransfer(testPayerID, 0); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.Freeze(); !errors.Is(err, ErrNoTransactionID) {
		t.Fatalf("unexpected error: %s", err)
	}
}

func TestFreezeRequiresNodeAccountIDs(t *testing.T) {
	tx := NewTransferTransaction()
	if err := tx.SetTransactionID(types.NewTransactionID(testPayerID)); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.AddTransfer(testPayerID, 0); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.Freeze(); !errors.Is(err, ErrNoNodeAccountIDs) {
		t.Fatalf("unexpected error: %s", err)
	}
}

func TestFreezeRejectsUnbalancedTransfers(t *testing.T) {
	tx := NewTransferTransaction()
	if err := tx.SetTransactionID(types.NewTransactionID(testPayerID)); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.SetNodeAccountIDs(testNodeIDs); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.AddTransfer(testPayerID, -100); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.Freeze(); err == nil {
		t.Fatalf("expected error, got none")
	}
}

func TestSignRequiresFrozen(t *testing.T) {
	tx := NewTransferTransaction()
	priv, err := keys.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.Sign(priv); !errors.Is(err, ErrNotFrozen) {
		t.Fatalf("unexpected error: %s", err)
	}
	if _, err := tx.ToBytes(); !errors.Is(err, ErrNotFrozen) {
		t.Fatalf("unexpected error: %s", err)
	}
}

func TestSignIdempotent(t *testing.T) {
	tx := frozenTransfer(t)
	priv, err := keys.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.Sign(priv); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.Sign(priv); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	for _, nodeID := range testNodeIDs {
		pairs := tx.SignaturesFor(nodeID)
		if len(pairs) != 1 {
			t.Fatalf("unexpected signature count for node %s: %d", nodeID, len(pairs))
		}
		if !priv.PublicKey().Verify(tx.bodies[nodeID], pairs[0].Signature) {
			t.Fatalf("signature did not verify for node %s", nodeID)
		}
	}
}

func TestSignAdditive(t *testing.T) {
	tx := frozenTransfer(t)
	priv1, err := keys.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	priv2, err := keys.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.Sign(priv1); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.Sign(priv2); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	pairs := tx.SignaturesFor(testNodeIDs[0])
	if len(pairs) != 2 {
		t.Fatalf("unexpected signature count: %d", len(pairs))
	}
	if !bytes.Equal(pairs[0].PubKeyPrefix, priv1.PublicKey().Bytes()) {
		t.Fatalf("unexpected first signature key")
	}
	if !bytes.Equal(pairs[1].PubKeyPrefix, priv2.PublicKey().Bytes()) {
		t.Fatalf("unexpected second signature key")
	}
}

func TestBodiesBoundPerNode(t *testing.T) {
	tx := frozenTransfer(t)
	// Each node binding gets its own body, so a payload signed for one node
	// cannot be replayed through another
	seen := map[string]bool{}
	for _, nodeID := range testNodeIDs {
		body := string(tx.bodies[nodeID])
		if seen[body] {
			t.Fatalf("duplicate body for node %s", nodeID)
		}
		seen[body] = true
	}
}

func TestToBytesFromBytesRoundTrip(t *testing.T) {
	tx := frozenTransfer(t)
	priv, err := keys.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.Sign(priv); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	data, err := tx.ToBytes()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	restored, err := FromBytes(data)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	transfer, ok := restored.(*TransferTransaction)
	if !ok {
		t.Fatalf("unexpected transaction type: %T", restored)
	}
	if !transfer.IsFrozen() {
		t.Fatalf("expected restored transaction to be frozen")
	}
	if transfer.TransactionID() != tx.TransactionID() {
		t.Fatalf("unexpected transaction ID: %s", transfer.TransactionID())
	}
	if transfer.MaxFee() != tx.MaxFee() {
		t.Fatalf("unexpected max fee: %d", transfer.MaxFee())
	}
	if len(transfer.Transfers()) != 2 {
		t.Fatalf("unexpected transfer count: %d", len(transfer.Transfers()))
	}
	// The serialized form must survive the round trip byte-for-byte
	restoredData, err := transfer.ToBytes()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !bytes.Equal(restoredData, data) {
		t.Fatalf("serialized form changed across round trip")
	}
	// Restored signatures still verify against the restored bodies
	for _, nodeID := range testNodeIDs {
		pairs := transfer.SignaturesFor(nodeID)
		if len(pairs) != 1 {
			t.Fatalf("unexpected signature count for node %s: %d", nodeID, len(pairs))
		}
		if !priv.PublicKey().Verify(transfer.bodies[nodeID], pairs[0].Signature) {
			t.Fatalf("restored signature did not verify for node %s", nodeID)
		}
	}
}

func TestFromBytesUnsigned(t *testing.T) {
	tx := frozenTransfer(t)
	data, err := tx.ToBytes()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	restored, err := FromBytes(data)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(restored.base().signatures) != 0 {
		t.Fatalf("unexpected signatures on unsigned transaction")
	}
	restoredData, err := restored.ToBytes()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !bytes.Equal(restoredData, data) {
		t.Fatalf("serialized form changed across round trip")
	}
}

func TestFromBytesGarbage(t *testing.T) {
	if _, err := FromBytes([]byte{0xff, 0x12, 0x34}); err == nil {
		t.Fatalf("expected error, got none")
	}
}

func TestFromBytesAccountCreate(t *testing.T) {
	priv, err := keys.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	tx := NewAccountCreateTransaction()
	if err := tx.SetKey(priv.PublicKey()); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.SetInitialBalance(500); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.SetTransactionID(types.NewTransactionID(testPayerID)); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.SetNodeAccountIDs(testNodeIDs[:1]); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.Freeze(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	data, err := tx.ToBytes()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	restored, err := FromBytes(data)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	create, ok := restored.(*AccountCreateTransaction)
	if !ok {
		t.Fatalf("unexpected transaction type: %T", restored)
	}
	if create.InitialBalance() != 500 {
		t.Fatalf("unexpected initial balance: %d", create.InitialBalance())
	}
	if !bytes.Equal(create.publicKey, priv.PublicKey().Bytes()) {
		t.Fatalf("unexpected public key")
	}
}

func TestHashStableAcrossSignatures(t *testing.T) {
	tx := frozenTransfer(t)
	unsignedHash, err := tx.Hash()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(unsignedHash) != 32 {
		t.Fatalf("unexpected hash length: %d", len(unsignedHash))
	}
	priv, err := keys.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := tx.Sign(priv); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	signedHash, err := tx.Hash()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	// The hash covers the serialized form, so adding a signature changes it
	if bytes.Equal(unsignedHash, signedHash) {
		t.Fatalf("expected hash to change after signing")
	}
}
