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

package wire

import (
	"fmt"

	"github.com/meridian-ledger/go-meridian/cbor"
	"github.com/meridian-ledger/go-meridian/types"
)

// Message types. Exactly one operation is selected per envelope; the
// discriminator is the first element of the CBOR array
const (
	MessageTypeSubmit        = 0
	MessageTypeTransfer      = 1
	MessageTypeAccountCreate = 2
	MessageTypeBalanceQuery  = 3
	MessageTypeInfoQuery     = 4
	MessageTypeAck           = 5
	MessageTypeBalanceAnswer = 6
	MessageTypeInfoAnswer    = 7
)

// Query response types
const (
	ResponseTypeAnswer uint8 = 0
	ResponseTypeCost   uint8 = 1
)

// MessageFromCbor parses a Meridian wire message from CBOR
func MessageFromCbor(msgType uint, data []byte) (Message, error) {
	var ret Message
	switch msgType {
	case MessageTypeSubmit:
		ret = &MsgSubmit{}
	case MessageTypeTransfer:
		ret = &MsgTransfer{}
	case MessageTypeAccountCreate:
		ret = &MsgAccountCreate{}
	case MessageTypeBalanceQuery:
		ret = &MsgBalanceQuery{}
	case MessageTypeInfoQuery:
		ret = &MsgInfoQuery{}
	case MessageTypeAck:
		ret = &MsgAck{}
	case MessageTypeBalanceAnswer:
		ret = &MsgBalanceAnswer{}
	case MessageTypeInfoAnswer:
		ret = &MsgInfoAnswer{}
	}
	if ret == nil {
		return nil, fmt.Errorf("received unknown message type: %d", msgType)
	}
	if _, err := cbor.Decode(data, ret); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}
	// Store the raw message CBOR
	ret.SetCbor(data)
	return ret, nil
}

// MessageFromFrame parses a Meridian wire message from a frame payload,
// determining the message type from the envelope discriminator
func MessageFromFrame(payload []byte) (Message, error) {
	msgType, err := cbor.DecodeIdFromList(payload)
	if err != nil {
		return nil, err
	}
	if msgType < 0 {
		return nil, fmt.Errorf("received invalid message type: %d", msgType)
	}
	return MessageFromCbor(uint(msgType), payload)
}

// RequestHeader is carried by every transaction body. It binds the body to
// a single target node, which prevents a payload signed for one node from
// being replayed through another
type RequestHeader struct {
	cbor.StructAsArray
	TransactionID        types.TransactionID
	NodeAccountID        types.AccountID
	MaxFee               uint64
	ValidDurationSeconds uint64
}

// QueryHeader is carried by every query. Payment holds a serialized signed
// payload for a transfer covering the query cost; it is empty for free
// queries and for cost-only requests
type QueryHeader struct {
	cbor.StructAsArray
	Payment      []byte
	ResponseType uint8
}

// ResponseHeader is carried by every response. Cost is only populated for
// cost-only query responses
type ResponseHeader struct {
	cbor.StructAsArray
	Status types.Status
	Cost   uint64
}

// MsgSubmit is the transaction submission envelope. The operation
// discriminator lives inside the signed payload's body bytes
type MsgSubmit struct {
	MessageBase
	Payload SignedPayload
}

func NewMsgSubmit(payload SignedPayload) *MsgSubmit {
	m := &MsgSubmit{
		MessageBase: MessageBase{
			MessageType: MessageTypeSubmit,
		},
		Payload: payload,
	}
	return m
}

// UnmarshalCBOR captures the original envelope bytes before decoding the
// fields, so a submit envelope keeps its exact wire form however it was
// decoded. The generic decode bypasses this function
func (m *MsgSubmit) UnmarshalCBOR(data []byte) error {
	m.SetCbor(data)
	return cbor.DecodeGeneric(data, m)
}

// MarshalCBOR returns the captured envelope bytes when present, so a decoded
// submit envelope re-encodes byte for byte
func (m *MsgSubmit) MarshalCBOR() ([]byte, error) {
	if m.rawCbor != nil {
		return m.rawCbor, nil
	}
	return cbor.EncodeGeneric(m)
}

type MsgTransfer struct {
	MessageBase
	Header    RequestHeader
	Transfers []types.Transfer
}

func NewMsgTransfer(header RequestHeader, transfers []types.Transfer) *MsgTransfer {
	m := &MsgTransfer{
		MessageBase: MessageBase{
			MessageType: MessageTypeTransfer,
		},
		Header:    header,
		Transfers: transfers,
	}
	return m
}

type MsgAccountCreate struct {
	MessageBase
	Header         RequestHeader
	PublicKey      []byte
	InitialBalance uint64
}

func NewMsgAccountCreate(header RequestHeader, publicKey []byte, initialBalance uint64) *MsgAccountCreate {
	m := &MsgAccountCreate{
		MessageBase: MessageBase{
			MessageType: MessageTypeAccountCreate,
		},
		Header:         header,
		PublicKey:      publicKey,
		InitialBalance: initialBalance,
	}
	return m
}

type MsgBalanceQuery struct {
	MessageBase
	Header    QueryHeader
	AccountID types.AccountID
}

func NewMsgBalanceQuery(header QueryHeader, accountID types.AccountID) *MsgBalanceQuery {
	m := &MsgBalanceQuery{
		MessageBase: MessageBase{
			MessageType: MessageTypeBalanceQuery,
		},
		Header:    header,
		AccountID: accountID,
	}
	return m
}

type MsgInfoQuery struct {
	MessageBase
	Header    QueryHeader
	AccountID types.AccountID
}

func NewMsgInfoQuery(header QueryHeader, accountID types.AccountID) *MsgInfoQuery {
	m := &MsgInfoQuery{
		MessageBase: MessageBase{
			MessageType: MessageTypeInfoQuery,
		},
		Header:    header,
		AccountID: accountID,
	}
	return m
}

// MsgAck acknowledges a transaction submission. Receipt is only populated
// once the node reports a definitive post-consensus outcome
type MsgAck struct {
	MessageBase
	Header  ResponseHeader
	Receipt *types.Receipt
}

func NewMsgAck(header ResponseHeader, receipt *types.Receipt) *MsgAck {
	m := &MsgAck{
		MessageBase: MessageBase{
			MessageType: MessageTypeAck,
		},
		Header:  header,
		Receipt: receipt,
	}
	return m
}

type MsgBalanceAnswer struct {
	MessageBase
	Header  ResponseHeader
	Balance uint64
}

func NewMsgBalanceAnswer(header ResponseHeader, balance uint64) *MsgBalanceAnswer {
	m := &MsgBalanceAnswer{
		MessageBase: MessageBase{
			MessageType: MessageTypeBalanceAnswer,
		},
		Header:  header,
		Balance: balance,
	}
	return m
}

type MsgInfoAnswer struct {
	MessageBase
	Header ResponseHeader
	Info   *types.AccountInfo
}

func NewMsgInfoAnswer(header ResponseHeader, info *types.AccountInfo) *MsgInfoAnswer {
	m := &MsgInfoAnswer{
		MessageBase: MessageBase{
			MessageType: MessageTypeInfoAnswer,
		},
		Header: header,
		Info:   info,
	}
	return m
}
