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

package execution

import (
	"github.com/meridian-ledger/go-meridian/types"
	"github.com/meridian-ledger/go-meridian/wire"
)

// Executable is the contract implemented by transactions and queries. The
// engine holds only this interface; concrete operation types are thin data
// producers behind it. The engine never inspects raw status codes: loop
// decisions are made purely from the State and mapped errors produced here
type Executable interface {
	// TransactionID returns the request identifier, for trace records and
	// error reporting. Queries without a payment return the zero value
	TransactionID() types.TransactionID
	// NodeAccountIDs returns the node bindings fixed when the request was
	// frozen, in binding order
	NodeAccountIDs() []types.AccountID
	// RequestFor returns the wire message bound to the given node
	RequestFor(nodeAccountID types.AccountID) (wire.Message, error)
	// Method returns the transport method used to dispatch the request,
	// either wire.MethodSubmit or wire.MethodQuery
	Method() uint16
	// StateFor classifies a decoded response into an execution state
	StateFor(resp wire.Message) State
	// ErrorFor maps a response classified StateError into a typed error
	ErrorFor(resp wire.Message, nodeAccountID types.AccountID) error
	// ResultFor maps a response classified StateFinished into the terminal
	// success value
	ResultFor(resp wire.Message, nodeAccountID types.AccountID) (any, error)
}
