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

// Package network provides the node directory and network topology used to
// select target nodes for request execution.
package network

import (
	"sync"
	"time"

	"github.com/meridian-ledger/go-meridian/types"
	"github.com/meridian-ledger/go-meridian/wire"
)

const defaultDialTimeout = 10 * time.Second

// Node is a single server endpoint in the network topology. The transport
// channel is dialed on first use and cached for reuse until Close
type Node struct {
	accountID types.AccountID
	address   string

	channelMutex sync.Mutex
	channel      *wire.Channel
}

// NewNode returns a node for the given account ID and address
func NewNode(accountID types.AccountID, address string) *Node {
	return &Node{
		accountID: accountID,
		address:   address,
	}
}

// AccountID returns the node's network-level account identifier
func (n *Node) AccountID() types.AccountID {
	return n.accountID
}

// Address returns the node's network address
func (n *Node) Address() string {
	return n.address
}

// Channel returns the node's transport channel, dialing it on first use
func (n *Node) Channel() (*wire.Channel, error) {
	n.channelMutex.Lock()
	defer n.channelMutex.Unlock()
	if n.channel != nil {
		return n.channel, nil
	}
	channel, err := wire.Dial(n.address, defaultDialTimeout)
	if err != nil {
		return nil, err
	}
	n.channel = channel
	return n.channel, nil
}

// Close releases the node's transport channel, if one was established
func (n *Node) Close() error {
	n.channelMutex.Lock()
	defer n.channelMutex.Unlock()
	if n.channel == nil {
		return nil
	}
	err := n.channel.Close()
	n.channel = nil
	return err
}
