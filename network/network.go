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

package network

import (
	"errors"
	"sync"

	"github.com/meridian-ledger/go-meridian/types"
)

// ErrEmptyNetwork is returned when a network is constructed with no nodes.
// This is a configuration error and is never retried
var ErrEmptyNetwork = errors.New("network contains no nodes")

// Network is the ordered set of nodes for a Meridian network, along with
// the mirror endpoint and ledger identifier. Node rotation is the only
// mutation after construction and is safe for concurrent callers sharing
// one client
type Network struct {
	mutex         sync.Mutex
	nodes         []*Node
	nodesByID     map[types.AccountID]*Node
	cursor        int
	mirrorAddress string
	ledgerID      string
}

// NewNetwork returns a network over the given nodes. At least one node must
// be provided
func NewNetwork(nodes []*Node, mirrorAddress string, ledgerID string) (*Network, error) {
	if len(nodes) == 0 {
		return nil, ErrEmptyNetwork
	}
	nodesByID := make(map[types.AccountID]*Node, len(nodes))
	for _, node := range nodes {
		nodesByID[node.AccountID()] = node
	}
	n := &Network{
		nodes:         nodes,
		nodesByID:     nodesByID,
		mirrorAddress: mirrorAddress,
		ledgerID:      ledgerID,
	}
	return n, nil
}

// SelectNode returns the next node in round-robin order, advancing the
// rotation cursor. The cursor wraps at the end of the node list
func (n *Network) SelectNode() *Node {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	node := n.nodes[n.cursor]
	n.cursor = (n.cursor + 1) % len(n.nodes)
	return node
}

// NodeForAccountID returns the node with the given account ID, if present
func (n *Network) NodeForAccountID(accountID types.AccountID) (*Node, bool) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	node, ok := n.nodesByID[accountID]
	return node, ok
}

// NodeAccountIDs returns the account IDs of all nodes in topology order
func (n *Network) NodeAccountIDs() []types.AccountID {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	ids := make([]types.AccountID, 0, len(n.nodes))
	for _, node := range n.nodes {
		ids = append(ids, node.AccountID())
	}
	return ids
}

// MirrorAddress returns the mirror service endpoint for the network
func (n *Network) MirrorAddress() string {
	return n.mirrorAddress
}

// LedgerID returns the ledger identifier for the network
func (n *Network) LedgerID() string {
	return n.ledgerID
}

// Close releases the transport channels of all nodes
func (n *Network) Close() error {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	var errs []error
	for _, node := range n.nodes {
		if err := node.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
