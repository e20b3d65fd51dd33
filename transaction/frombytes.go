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
	"time"

	"github.com/meridian-ledger/go-meridian/cbor"
	"github.com/meridian-ledger/go-meridian/execution"
	"github.com/meridian-ledger/go-meridian/types"
	"github.com/meridian-ledger/go-meridian/wire"
)

// Interface is the common surface of the concrete transaction types, as
// returned by FromBytes
type Interface interface {
	execution.Executable
	ToBytes() ([]byte, error)
	Hash() ([]byte, error)
	IsFrozen() bool
	base() *Transaction
}

// FromBytes reconstructs a frozen transaction from bytes previously
// produced by ToBytes, dispatching on the body's operation discriminator.
// Body bytes are kept exactly as serialized so the body portion
// round-trips byte-for-byte, and signature entries are restored in their
// serialized order
func FromBytes(data []byte) (Interface, error) {
	payloads, err := wire.SignedPayloadsFromBytes(data)
	if err != nil {
		return nil, err
	}
	if len(payloads) == 0 {
		return nil, errors.New("serialized transaction contains no payloads")
	}
	msgType, err := cbor.DecodeIdFromList(payloads[0].Body)
	if err != nil {
		return nil, err
	}
	var tx Interface
	switch msgType {
	case wire.MessageTypeTransfer:
		tx = NewTransferTransaction()
	case wire.MessageTypeAccountCreate:
		tx = NewAccountCreateTransaction()
	default:
		return nil, fmt.Errorf("unsupported transaction body type: %d", msgType)
	}
	base := tx.base()
	base.bodies = make(map[types.AccountID][]byte, len(payloads))
	base.signatures = make(map[types.AccountID][]wire.SignaturePair, len(payloads))
	for i, payload := range payloads {
		msg, err := wire.MessageFromFrame(payload.Body)
		if err != nil {
			return nil, err
		}
		header, err := base.builder.restoreBody(msg)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			base.transactionID = header.TransactionID
			base.maxFee = header.MaxFee
			base.validDuration = time.Duration(header.ValidDurationSeconds) * time.Second // #nosec G115
		} else if header.TransactionID != base.transactionID {
			return nil, errors.New("payloads carry mismatched transaction IDs")
		}
		base.nodeAccountIDs = append(base.nodeAccountIDs, header.NodeAccountID)
		base.bodies[header.NodeAccountID] = payload.Body
		if len(payload.Signatures) > 0 {
			base.signatures[header.NodeAccountID] = payload.Signatures
		}
	}
	base.frozen = true
	return tx, nil
}
